package biometric

import (
	"context"

	"github.com/rs/zerolog/log"
)

// VerificationResult holds 1:1 verification metrics at one threshold.
type VerificationResult struct {
	Threshold float64 `json:"threshold"`

	GAR float64 `json:"gar"`
	FRR float64 `json:"frr"`
	FAR float64 `json:"far"`
	GRR float64 `json:"grr"`

	// GA and GR split the genuine pairs into accepted and rejected.
	GA int `json:"ga"`
	GR int `json:"gr"`
	// FA and FR split the impostor pairs into accepted and rejected.
	FA int `json:"fa"`
	FR int `json:"fr"`

	GenuineClaims  int `json:"genuine_claims"`
	ImpostorClaims int `json:"impostor_claims"`
}

// Verify compares every ordered pair against threshold. A pair is accepted
// when its score is at or above threshold; whether it is genuine depends only
// on the two labels.
func (m *SimilarityMatrix) Verify(threshold float64) (*VerificationResult, error) {
	if err := checkThreshold(threshold); err != nil {
		return nil, err
	}
	if err := m.requireClaims(); err != nil {
		return nil, err
	}

	res := &VerificationResult{
		Threshold:      threshold,
		GenuineClaims:  m.Genuine,
		ImpostorClaims: m.Impostor,
	}

	n := m.Size()
	for i := range n {
		for j := range n {
			if i == j {
				continue
			}
			accept := m.scores.At(i, j) >= threshold
			genuine := m.labels[i] == m.labels[j]

			switch {
			case genuine && accept:
				res.GA++
			case genuine:
				res.GR++
			case accept:
				res.FA++
			default:
				res.FR++
			}
		}
	}

	res.GAR = float64(res.GA) / float64(m.Genuine)
	res.FRR = float64(res.GR) / float64(m.Genuine)
	res.FAR = float64(res.FA) / float64(m.Impostor)
	res.GRR = float64(res.FR) / float64(m.Impostor)

	log.Debug().Float64("threshold", threshold).
		Int("ga", res.GA).Int("gr", res.GR).Int("fa", res.FA).Int("fr", res.FR).
		Msg("verification tallies")

	return res, nil
}

// EvaluateVerification builds the similarity matrix of templates with fn and
// runs the verification protocol at threshold.
func EvaluateVerification(ctx context.Context, templates []LabeledTemplate, threshold float64, fn SimilarityFunc, opts ...MatrixOption) (*VerificationResult, error) {
	m, err := ComputeSimilarities(ctx, templates, fn, opts...)
	if err != nil {
		return nil, err
	}
	return m.Verify(threshold)
}
