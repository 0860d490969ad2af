package biometric

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const (
	SimilarityCosine    = "cosine"
	SimilarityHistogram = "histogram"
	SimilarityEuclidean = "euclidean"
)

// CosineSimilarity returns the cosine of the angle between a and b. A zero
// vector scores 0 against anything.
func CosineSimilarity(a, b Template) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return floats.Dot(a, b) / (normA * normB), nil
}

// HistogramIntersection sums the element-wise minima of two histograms, the
// usual match score for LBP histograms.
func HistogramIntersection(a, b Template) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var sum float64
	for i := range a {
		sum += math.Min(a[i], b[i])
	}
	return sum, nil
}

// EuclideanSimilarity maps the L2 distance d to 1 / (1 + d).
func EuclideanSimilarity(a, b Template) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	return 1 / (1 + floats.Distance(a, b, 2)), nil
}

// SimilarityByName resolves one of the built-in similarity functions.
func SimilarityByName(name string) (SimilarityFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SimilarityCosine:
		return CosineSimilarity, nil
	case SimilarityHistogram:
		return HistogramIntersection, nil
	case SimilarityEuclidean:
		return EuclideanSimilarity, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSimilarity, name)
}
