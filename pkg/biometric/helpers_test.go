package biometric

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// identityTemplates encodes each label as a one-element template so
// labelSimilarity can recover it.
func identityTemplates(labels ...string) []LabeledTemplate {
	ids := make(map[string]float64)
	templates := make([]LabeledTemplate, len(labels))
	for i, label := range labels {
		id, ok := ids[label]
		if !ok {
			id = float64(len(ids))
			ids[label] = id
		}
		templates[i] = LabeledTemplate{Label: label, Template: Template{id}}
	}
	return templates
}

// labelSimilarity scores same as the score for templates of the same identity
// and other otherwise.
func labelSimilarity(same, other float64) SimilarityFunc {
	return func(a, b Template) (float64, error) {
		if a[0] == b[0] {
			return same, nil
		}
		return other, nil
	}
}

func constantSimilarity(score float64) SimilarityFunc {
	return func(a, b Template) (float64, error) {
		return score, nil
	}
}

// clusteredTemplates draws perIdentity noisy samples around a random centroid
// for each identity.
func clusteredTemplates(seed uint64, identities, perIdentity, dims int, noise float64) []LabeledTemplate {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var templates []LabeledTemplate
	for id := range identities {
		centroid := make([]float64, dims)
		for d := range centroid {
			centroid[d] = rng.NormFloat64()
		}
		for range perIdentity {
			sample := make(Template, dims)
			for d := range sample {
				sample[d] = centroid[d] + noise*rng.NormFloat64()
			}
			templates = append(templates, LabeledTemplate{Label: string(rune('A' + id)), Template: sample})
		}
	}
	return templates
}

func matrixFromRows(t *testing.T, labels []string, rows [][]float64) *SimilarityMatrix {
	t.Helper()
	data := make([]float64, 0, len(rows)*len(rows))
	for _, row := range rows {
		data = append(data, row...)
	}
	m, err := NewSimilarityMatrix(labels, mat.NewDense(len(rows), len(rows), data))
	require.NoError(t, err)
	return m
}
