package biometric

const (
	// DefaultThreshold is the acceptance threshold used for cosine-scored
	// deep embeddings.
	DefaultThreshold = 0.8

	DefaultSweepMin  = 0.0
	DefaultSweepMax  = 1.0
	DefaultSweepStep = 0.05
)
