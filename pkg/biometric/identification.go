package biometric

import (
	"context"

	"github.com/rs/zerolog/log"
)

// IdentificationResult holds open-set identification metrics at one
// threshold.
//
// DI, FA and GR are measured in claims: a probe's outcome counts once for
// every genuine (DI) or impostor (FA, GR) claim in its row. DIR, FRR, FAR and
// GRR divide those tallies by the matching claim totals.
type IdentificationResult struct {
	Threshold float64 `json:"threshold"`

	// DIR[k] is the cumulative detection-and-identification rate up to rank
	// k; rank 0 is top-1. len(DIR) equals the number of templates.
	DIR []float64 `json:"dir"`
	FRR float64   `json:"frr"`
	FAR float64   `json:"far"`
	GRR float64   `json:"grr"`

	DI             []int `json:"di"`
	FA             int   `json:"fa"`
	GR             int   `json:"gr"`
	GenuineClaims  int   `json:"genuine_claims"`
	ImpostorClaims int   `json:"impostor_claims"`

	Probes ProbeOutcomes `json:"probes"`
}

// ProbeOutcomes counts probes rather than claims.
type ProbeOutcomes struct {
	// Identified[k] is the number of probes whose identity was recovered at
	// rank k.
	Identified []int `json:"identified"`
	// FalseAlarms is the number of probes for which an impostor at or above
	// threshold was accepted.
	FalseAlarms int `json:"false_alarms"`
	// Rejections is the number of probes for which no impostor was accepted.
	Rejections int `json:"rejections"`
}

// Identify runs the open-set identification protocol over the matrix.
//
// Each probe's row is ranked by descending score. If the top candidate is
// below threshold the probe is rejected. If it is at or above threshold and
// genuine, the probe is identified at rank 0 and the rest of the ranking is
// searched for the first impostor at or above threshold, which makes it a
// false alarm; otherwise a rejection. If the top candidate is an impostor the
// probe is a false alarm, and the first genuine candidate at or above
// threshold, if any, identifies it at its rank.
func (m *SimilarityMatrix) Identify(threshold float64) (*IdentificationResult, error) {
	if err := checkThreshold(threshold); err != nil {
		return nil, err
	}
	if err := m.requireClaims(); err != nil {
		return nil, err
	}

	n := m.Size()
	res := &IdentificationResult{
		Threshold:      threshold,
		DIR:            make([]float64, n),
		DI:             make([]int, n),
		GenuineClaims:  m.Genuine,
		ImpostorClaims: m.Impostor,
		Probes:         ProbeOutcomes{Identified: make([]int, n)},
	}

	for i := range n {
		label := m.labels[i]
		ranked := m.Ranked(i)
		top := ranked[0]

		if top.Score < threshold {
			res.GR += m.impostorByProbe[i]
			res.Probes.Rejections++
			continue
		}

		if top.Label == label {
			res.DI[0] += m.genuineByProbe[i]
			res.Probes.Identified[0]++

			if k := firstAccepted(ranked[1:], threshold, func(c Candidate) bool { return c.Label != label }); k >= 0 {
				res.FA += m.impostorByProbe[i]
				res.Probes.FalseAlarms++
			} else {
				res.GR += m.impostorByProbe[i]
				res.Probes.Rejections++
			}
			continue
		}

		if k := firstAccepted(ranked, threshold, func(c Candidate) bool { return c.Label == label }); k >= 0 {
			res.DI[k] += m.genuineByProbe[i]
			res.Probes.Identified[k]++
		}
		res.FA += m.impostorByProbe[i]
		res.Probes.FalseAlarms++
	}

	genuine := float64(m.Genuine)
	cumulative := 0
	for k, di := range res.DI {
		cumulative += di
		res.DIR[k] = float64(cumulative) / genuine
	}
	res.FRR = 1 - res.DIR[0]
	res.FAR = float64(res.FA) / float64(m.Impostor)
	res.GRR = float64(res.GR) / float64(m.Impostor)

	log.Debug().Float64("threshold", threshold).Ints("di", res.DI).
		Int("fa", res.FA).Int("gr", res.GR).
		Msg("open-set identification tallies")

	return res, nil
}

// firstAccepted returns the position of the first candidate at or above
// threshold that satisfies match, or -1. ranked must be in descending score
// order.
func firstAccepted(ranked []Candidate, threshold float64, match func(Candidate) bool) int {
	for k, c := range ranked {
		if c.Score < threshold {
			break
		}
		if match(c) {
			return k
		}
	}
	return -1
}

// EvaluateIdentification builds the similarity matrix of templates with fn and
// runs the open-set identification protocol at threshold.
func EvaluateIdentification(ctx context.Context, templates []LabeledTemplate, threshold float64, fn SimilarityFunc, opts ...MatrixOption) (*IdentificationResult, error) {
	m, err := ComputeSimilarities(ctx, templates, fn, opts...)
	if err != nil {
		return nil, err
	}
	return m.Identify(threshold)
}
