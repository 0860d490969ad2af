package biometric

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// SimilarityMatrix holds the score of every ordered pair (i, j), i != j, of a
// template list together with the label of every column. The diagonal is
// never populated.
type SimilarityMatrix struct {
	// Genuine is the number of ordered pairs sharing a label.
	Genuine int
	// Impostor is the number of ordered pairs with different labels.
	Impostor int

	scores          *mat.Dense
	labels          []string
	genuineByProbe  []int
	impostorByProbe []int
}

type MatrixOption func(*matrixConfig)

type matrixConfig struct {
	workers  int
	progress ProgressFunc
}

func defaultMatrixConfig() matrixConfig {
	return matrixConfig{workers: runtime.NumCPU()}
}

// WithWorkers sets how many probe rows are scored concurrently
// (default: runtime.NumCPU()). Non-positive values are ignored.
func WithWorkers(n int) MatrixOption {
	return func(c *matrixConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithProgress registers a callback run after each completed probe row.
// Calls are serialised and done increases by one each time.
func WithProgress(fn ProgressFunc) MatrixOption {
	return func(c *matrixConfig) {
		c.progress = fn
	}
}

func newSimilarityMatrix(labels []string) *SimilarityMatrix {
	n := len(labels)

	perLabel := make(map[string]int, n)
	for _, label := range labels {
		perLabel[label]++
	}

	m := &SimilarityMatrix{
		scores:          mat.NewDense(n, n, nil),
		labels:          labels,
		genuineByProbe:  make([]int, n),
		impostorByProbe: make([]int, n),
	}
	for i, label := range labels {
		m.genuineByProbe[i] = perLabel[label] - 1
		m.impostorByProbe[i] = n - perLabel[label]
		m.Genuine += m.genuineByProbe[i]
		m.Impostor += m.impostorByProbe[i]
	}
	return m
}

// NewSimilarityMatrix wraps precomputed scores. scores must be square with
// one row per label; its diagonal is ignored. Off-diagonal scores must be
// finite, as with ComputeSimilarities.
func NewSimilarityMatrix(labels []string, scores *mat.Dense) (*SimilarityMatrix, error) {
	if len(labels) < 2 {
		return nil, &InsufficientDataError{Templates: len(labels)}
	}
	if scores == nil {
		return nil, errors.New("biometric: score matrix is nil")
	}
	rows, cols := scores.Dims()
	if rows != len(labels) || cols != len(labels) {
		return nil, fmt.Errorf("biometric: score matrix is %dx%d, want %dx%d", rows, cols, len(labels), len(labels))
	}
	for i := range rows {
		for j := range cols {
			if i == j {
				continue
			}
			if score := scores.At(i, j); math.IsNaN(score) || math.IsInf(score, 0) {
				return nil, &SimilarityFunctionError{Probe: i, Candidate: j, Err: ErrNonFiniteScore}
			}
		}
	}

	m := newSimilarityMatrix(append([]string(nil), labels...))
	m.scores.Copy(scores)
	for i := range labels {
		m.scores.Set(i, i, math.NaN())
	}
	return m, nil
}

// ComputeSimilarities scores every ordered pair of distinct templates with fn
// and tallies genuine and impostor claims. Rows are scored in parallel; each
// worker writes only the rows it owns. The first failing pair aborts the
// build.
func ComputeSimilarities(ctx context.Context, templates []LabeledTemplate, fn SimilarityFunc, opts ...MatrixOption) (*SimilarityMatrix, error) {
	n := len(templates)
	if n < 2 {
		return nil, &InsufficientDataError{Templates: n}
	}
	if fn == nil {
		fn = CosineSimilarity
	}

	cfg := defaultMatrixConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	labels := make([]string, n)
	for i, t := range templates {
		labels[i] = t.Label
	}
	m := newSimilarityMatrix(labels)

	startTime := time.Now()
	workers := min(cfg.workers, n)
	log.Debug().Int("templates", n).Int("workers", workers).
		Int("genuine", m.Genuine).Int("impostor", m.Impostor).
		Msg("computing similarity matrix")

	g, gctx := errgroup.WithContext(ctx)
	rows := make(chan int)

	g.Go(func() error {
		defer close(rows)
		for i := range n {
			select {
			case rows <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var (
		progressMu sync.Mutex
		done       int
	)
	for range workers {
		g.Go(func() error {
			for i := range rows {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := m.scoreRow(i, templates, fn); err != nil {
					return err
				}
				if cfg.progress != nil {
					progressMu.Lock()
					done++
					cfg.progress(done, n)
					progressMu.Unlock()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Msgf("Computed %d similarities in %v", n*(n-1), time.Since(startTime))
	return m, nil
}

func (m *SimilarityMatrix) scoreRow(i int, templates []LabeledTemplate, fn SimilarityFunc) (err error) {
	row := make([]float64, len(templates))
	j := 0

	defer func() {
		if r := recover(); r != nil {
			err = &SimilarityFunctionError{Probe: i, Candidate: j, Err: errors.Errorf("panic: %v", r)}
		}
	}()

	for j = range templates {
		if j == i {
			row[j] = math.NaN()
			continue
		}
		score, ferr := fn(templates[i].Template, templates[j].Template)
		if ferr != nil {
			return &SimilarityFunctionError{Probe: i, Candidate: j, Err: ferr}
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return &SimilarityFunctionError{Probe: i, Candidate: j, Err: ErrNonFiniteScore}
		}
		row[j] = score
	}

	m.scores.SetRow(i, row)
	log.Trace().Int("probe", i).Str("label", m.labels[i]).Msg("scored probe row")
	return nil
}

// Size returns the number of templates N.
func (m *SimilarityMatrix) Size() int {
	return len(m.labels)
}

// Label returns the label of template i.
func (m *SimilarityMatrix) Label(i int) string {
	return m.labels[i]
}

// At returns the score of probe i against template j. ok is false on the
// diagonal and outside the matrix.
func (m *SimilarityMatrix) At(i, j int) (score float64, ok bool) {
	n := m.Size()
	if i == j || i < 0 || j < 0 || i >= n || j >= n {
		return 0, false
	}
	return m.scores.At(i, j), true
}

// Row returns the candidates of probe i in column order, skipping i itself.
func (m *SimilarityMatrix) Row(i int) []Candidate {
	row := make([]Candidate, 0, m.Size()-1)
	for j, label := range m.labels {
		if j == i {
			continue
		}
		row = append(row, Candidate{Index: j, Label: label, Score: m.scores.At(i, j)})
	}
	return row
}

// Ranked returns the candidates of probe i by descending score. Equal scores
// keep column order, so the lowest index ranks first.
func (m *SimilarityMatrix) Ranked(i int) []Candidate {
	row := m.Row(i)
	sort.SliceStable(row, func(a, b int) bool {
		return row[a].Score > row[b].Score
	})
	return row
}

// GenuineClaims returns the number of other templates sharing probe i's label.
func (m *SimilarityMatrix) GenuineClaims(i int) int {
	return m.genuineByProbe[i]
}

// ImpostorClaims returns the number of templates with a label other than
// probe i's.
func (m *SimilarityMatrix) ImpostorClaims(i int) int {
	return m.impostorByProbe[i]
}

func checkThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

func (m *SimilarityMatrix) requireClaims() error {
	if m.Genuine == 0 {
		return &DegenerateClaimPopulationError{Population: GenuinePopulation}
	}
	if m.Impostor == 0 {
		return &DegenerateClaimPopulationError{Population: ImpostorPopulation}
	}
	return nil
}
