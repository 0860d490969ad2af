// Package biometric evaluates biometric recognisers from labeled feature
// templates. It builds the pairwise similarity matrix of a template list and
// derives open-set identification (DIR, FRR, FAR, GRR) and 1:1 verification
// (GAR, FRR, FAR, GRR) metrics from it.
package biometric

// Template is a fixed-length feature vector produced by an embedder.
type Template []float64

// LabeledTemplate pairs a template with the identity it was enrolled for.
// Several templates may share a label.
type LabeledTemplate struct {
	Label    string
	Template Template
}

// Candidate is one off-diagonal cell of a similarity matrix row: the score of
// the probe against the template at Index, which belongs to Label.
type Candidate struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SimilarityFunc scores two templates; higher means more alike. It must not
// assume the score is symmetric.
type SimilarityFunc func(a, b Template) (float64, error)

// ProgressFunc is invoked once per completed probe row while a similarity
// matrix is built.
type ProgressFunc func(done, total int)
