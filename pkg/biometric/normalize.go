package biometric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MinMaxNormalized returns a copy of the matrix whose off-diagonal scores are
// rescaled to [0, 1], so one threshold scale fits unbounded similarity
// functions such as histogram intersection. The mapping is monotone: rankings
// are unchanged. A constant matrix maps to zeros. Scores are assumed finite,
// which both constructors guarantee.
func (m *SimilarityMatrix) MinMaxNormalized() *SimilarityMatrix {
	n := m.Size()

	offDiagonal := make([]float64, 0, n*(n-1))
	for i := range n {
		for j := range n {
			if i != j {
				offDiagonal = append(offDiagonal, m.scores.At(i, j))
			}
		}
	}

	lo := floats.Min(offDiagonal)
	hi := floats.Max(offDiagonal)

	scaled := mat.NewDense(n, n, nil)
	for i := range n {
		for j := range n {
			switch {
			case i == j:
				scaled.Set(i, j, math.NaN())
			case hi != lo:
				scaled.Set(i, j, (m.scores.At(i, j)-lo)/(hi-lo))
			}
		}
	}

	return &SimilarityMatrix{
		Genuine:         m.Genuine,
		Impostor:        m.Impostor,
		scores:          scaled,
		labels:          m.labels,
		genuineByProbe:  m.genuineByProbe,
		impostorByProbe: m.impostorByProbe,
	}
}
