package biometric

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// OperatingPoint is the verification outcome at one threshold.
type OperatingPoint struct {
	Threshold float64 `json:"threshold"`
	GAR       float64 `json:"gar"`
	FRR       float64 `json:"frr"`
	FAR       float64 `json:"far"`
	GRR       float64 `json:"grr"`
}

// SweepThresholds returns evenly spaced thresholds from min up to and
// including max when max lies on the grid.
func SweepThresholds(min, max, step float64) []float64 {
	if step <= 0 || max < min {
		return nil
	}

	// tolerate accumulated error when max is an exact multiple of step
	n := int(math.Floor((max-min)/step+1e-9)) + 1
	if n == 1 {
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, min+float64(n-1)*step)
}

// Sweep evaluates the verification protocol at every threshold, reusing the
// matrix.
func (m *SimilarityMatrix) Sweep(thresholds []float64) ([]OperatingPoint, error) {
	points := make([]OperatingPoint, 0, len(thresholds))
	for _, t := range thresholds {
		res, err := m.Verify(t)
		if err != nil {
			return nil, err
		}
		points = append(points, OperatingPoint{
			Threshold: t,
			GAR:       res.GAR,
			FRR:       res.FRR,
			FAR:       res.FAR,
			GRR:       res.GRR,
		})
	}
	return points, nil
}

// EqualErrorRate returns the operating point where FAR and FRR are closest.
// Ties go to the earlier point.
func EqualErrorRate(points []OperatingPoint) (OperatingPoint, error) {
	if len(points) == 0 {
		return OperatingPoint{}, ErrNoOperatingPoints
	}

	best := points[0]
	bestGap := math.Abs(best.FAR - best.FRR)
	for _, p := range points[1:] {
		if gap := math.Abs(p.FAR - p.FRR); gap < bestGap {
			best, bestGap = p, gap
		}
	}
	return best, nil
}
