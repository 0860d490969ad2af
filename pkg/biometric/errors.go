package biometric

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned by the built-in similarity functions
	// when the two templates have different lengths.
	ErrDimensionMismatch = errors.New("biometric: template dimensions differ")

	// ErrNonFiniteScore marks a similarity function that returned NaN or ±Inf.
	ErrNonFiniteScore = errors.New("biometric: similarity score is not finite")

	// ErrUnknownSimilarity is returned by SimilarityByName.
	ErrUnknownSimilarity = errors.New("biometric: unknown similarity function")

	// ErrNoOperatingPoints is returned by EqualErrorRate on an empty sweep.
	ErrNoOperatingPoints = errors.New("biometric: no operating points")

	// ErrInvalidThreshold is returned by the protocols for a NaN or ±Inf
	// threshold.
	ErrInvalidThreshold = errors.New("biometric: threshold is not finite")
)

// ClaimPopulation names one side of the genuine/impostor split.
type ClaimPopulation string

const (
	GenuinePopulation  ClaimPopulation = "genuine"
	ImpostorPopulation ClaimPopulation = "impostor"
)

// InsufficientDataError is returned when a template list has fewer than two
// entries, so no pair can be compared.
type InsufficientDataError struct {
	Templates int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("biometric: need at least 2 templates, got %d", e.Templates)
}

// DegenerateClaimPopulationError is returned when the template list has no
// genuine or no impostor pairs and the rates over that population are
// undefined.
type DegenerateClaimPopulationError struct {
	Population ClaimPopulation
}

func (e *DegenerateClaimPopulationError) Error() string {
	return fmt.Sprintf("biometric: template list has no %s claims", e.Population)
}

// SimilarityFunctionError reports the pair whose similarity could not be
// computed.
type SimilarityFunctionError struct {
	Probe     int
	Candidate int
	Err       error
}

func (e *SimilarityFunctionError) Error() string {
	return fmt.Sprintf("biometric: similarity(%d, %d): %v", e.Probe, e.Candidate, e.Err)
}

func (e *SimilarityFunctionError) Unwrap() error {
	return e.Err
}
