package biometric

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/faceval/internal/config"
	"github.com/tensorplex-labs/faceval/internal/utils/logger"
)

// Evaluator bundles a threshold, a similarity function and matrix options so
// both protocols can be run over template lists with one configuration.
type Evaluator struct {
	Threshold  float64
	Similarity SimilarityFunc
	SweepMin   float64
	SweepMax   float64
	SweepStep  float64
	// Normalize rescales every matrix to [0, 1] before thresholds apply.
	Normalize bool

	matrixOpts []MatrixOption
}

type EvaluatorOption func(*Evaluator)

func WithThreshold(threshold float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.Threshold = threshold
	}
}

func WithSimilarity(fn SimilarityFunc) EvaluatorOption {
	return func(e *Evaluator) {
		if fn != nil {
			e.Similarity = fn
		}
	}
}

func WithSweep(min, max, step float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.SweepMin, e.SweepMax, e.SweepStep = min, max, step
	}
}

func WithMinMaxNormalization() EvaluatorOption {
	return func(e *Evaluator) {
		e.Normalize = true
	}
}

func WithMatrixOptions(opts ...MatrixOption) EvaluatorOption {
	return func(e *Evaluator) {
		e.matrixOpts = append(e.matrixOpts, opts...)
	}
}

func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		Threshold:  DefaultThreshold,
		Similarity: CosineSimilarity,
		SweepMin:   DefaultSweepMin,
		SweepMax:   DefaultSweepMax,
		SweepStep:  DefaultSweepStep,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// NewEvaluatorFromConfig builds an evaluator from environment configuration.
// Matrix progress is logged at debug level.
func NewEvaluatorFromConfig(cfg *config.EvaluationEnvConfig) (*Evaluator, error) {
	if cfg == nil {
		return nil, errors.New("evaluation config is nil")
	}

	similarity, err := SimilarityByName(cfg.Similarity)
	if err != nil {
		return nil, err
	}

	opts := []EvaluatorOption{
		WithThreshold(cfg.Threshold),
		WithSimilarity(similarity),
		WithSweep(cfg.SweepMin, cfg.SweepMax, cfg.SweepStep),
		WithMatrixOptions(WithWorkers(cfg.Workers), WithProgress(logProgress)),
	}
	if cfg.Normalize {
		opts = append(opts, WithMinMaxNormalization())
	}
	return NewEvaluator(opts...), nil
}

// NewEvaluatorFromEnv loads the configuration from the environment, sets up
// the global logger and builds an evaluator.
func NewEvaluatorFromEnv(dotenvFiles ...string) (*Evaluator, error) {
	cfg, err := config.LoadConfig(dotenvFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Configure(&cfg.LoggerEnvConfig)
	return NewEvaluatorFromConfig(&cfg.EvaluationEnvConfig)
}

// Matrix computes the similarity matrix of templates, normalized when the
// evaluator asks for it.
func (e *Evaluator) Matrix(ctx context.Context, templates []LabeledTemplate) (*SimilarityMatrix, error) {
	m, err := ComputeSimilarities(ctx, templates, e.Similarity, e.matrixOpts...)
	if err != nil {
		return nil, err
	}
	if e.Normalize {
		return m.MinMaxNormalized(), nil
	}
	return m, nil
}

func (e *Evaluator) Identify(ctx context.Context, templates []LabeledTemplate) (*IdentificationResult, error) {
	m, err := e.Matrix(ctx, templates)
	if err != nil {
		return nil, err
	}
	res, err := m.Identify(e.Threshold)
	if err != nil {
		return nil, err
	}
	logSummary("identification", e.Threshold, res)
	return res, nil
}

func (e *Evaluator) Verify(ctx context.Context, templates []LabeledTemplate) (*VerificationResult, error) {
	m, err := e.Matrix(ctx, templates)
	if err != nil {
		return nil, err
	}
	res, err := m.Verify(e.Threshold)
	if err != nil {
		return nil, err
	}
	logSummary("verification", e.Threshold, res)
	return res, nil
}

// SweepResult is a verification sweep and its equal error rate point.
type SweepResult struct {
	Points []OperatingPoint `json:"points"`
	EER    OperatingPoint   `json:"eer"`
}

// Sweep runs verification over the configured threshold grid.
func (e *Evaluator) Sweep(ctx context.Context, templates []LabeledTemplate) (*SweepResult, error) {
	m, err := e.Matrix(ctx, templates)
	if err != nil {
		return nil, err
	}
	points, err := m.Sweep(SweepThresholds(e.SweepMin, e.SweepMax, e.SweepStep))
	if err != nil {
		return nil, err
	}
	eer, err := EqualErrorRate(points)
	if err != nil {
		return nil, err
	}

	res := &SweepResult{Points: points, EER: eer}
	logSummary("sweep", eer.Threshold, res.EER)
	return res, nil
}

func logProgress(done, total int) {
	step := max(total/10, 1)
	if done%step == 0 || done == total {
		log.Debug().Int("rows", done).Int("total", total).
			Msgf("similarity matrix %d%% complete", done*100/total)
	}
}

func logSummary(protocol string, threshold float64, result any) {
	data, err := sonic.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Str("protocol", protocol).Msg("failed to encode evaluation summary")
		return
	}
	log.Info().Str("protocol", protocol).Float64("threshold", threshold).
		RawJSON("result", data).Msg("evaluation finished")
}
