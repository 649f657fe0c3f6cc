package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/features"
	"github.com/okian/talentscope/pkg/logger"
)

// Default blend weights.
const (
	DefaultRuleWeight  = 0.6
	DefaultModelWeight = 0.4
	weightTolerance    = 1e-9
)

// Weights are the hybrid blend coefficients.
type Weights struct {
	Rule  float64
	Model float64
}

// DefaultWeights returns the 0.6/0.4 blend.
func DefaultWeights() Weights {
	return Weights{Rule: DefaultRuleWeight, Model: DefaultModelWeight}
}

// Validate reports ErrInvalidWeights unless both weights are non-negative
// and sum to 1.
func (w Weights) Validate() error {
	if w.Rule < 0 || w.Model < 0 || math.IsNaN(w.Rule) || math.IsNaN(w.Model) {
		return fmt.Errorf("%w: rule=%v model=%v must be non-negative", ErrInvalidWeights, w.Rule, w.Model)
	}
	if math.Abs(w.Rule+w.Model-1) > weightTolerance {
		return fmt.Errorf("%w: rule=%v model=%v must sum to 1", ErrInvalidWeights, w.Rule, w.Model)
	}
	return nil
}

// Combine blends rule and model sets domain by domain.
func (w Weights) Combine(c *catalog.Catalog, rule, model Set) Set {
	out := newSet(c)
	for _, id := range c.IDs() {
		out[id] = clamp(w.Rule*rule.Get(id) + w.Model*model.Get(id))
	}
	return out
}

// Result holds the three score sets of one scoring pass.
type Result struct {
	Rule   Set
	Model  Set
	Hybrid Set
	// ModelVersion is the version of the predictor set used.
	ModelVersion string
}

// Option configures a Hybrid scorer.
type Option func(*Hybrid)

// WithWeights overrides the blend weights.
func WithWeights(w Weights) Option {
	return func(h *Hybrid) { h.weights = w }
}

// WithPredictors sets the predictor source for model scoring.
func WithPredictors(src Source) Option {
	return func(h *Hybrid) {
		if src != nil {
			h.source = src
		}
	}
}

// WithLogger sets the logger used to report predictor failures.
func WithLogger(l logger.Logger) Option {
	return func(h *Hybrid) {
		if l != nil {
			h.log = l
		}
	}
}

// Hybrid is the single scoring entry point: rule and model scores blended
// with Weights.
type Hybrid struct {
	catalog *catalog.Catalog
	weights Weights
	source  Source
	log     logger.Logger

	rule  *RuleScorer
	model *ModelScorer
}

// NewHybrid builds a Hybrid scorer over c.
func NewHybrid(c *catalog.Catalog, opts ...Option) (*Hybrid, error) {
	h := &Hybrid{
		catalog: c,
		weights: DefaultWeights(),
		source:  StaticSource{},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.weights.Validate(); err != nil {
		return nil, err
	}
	h.rule = NewRuleScorer(c)
	h.model = NewModelScorer(c, h.source, h.log)
	return h, nil
}

// Weights returns the configured blend.
func (h *Hybrid) Weights() Weights { return h.weights }

// Score computes rule, model and hybrid scores for one summary.
func (h *Hybrid) Score(ctx context.Context, s features.Summary, interests []string) Result {
	set := h.source.Current()
	rule := h.rule.Score(s, interests)
	model := h.model.ScoreWith(ctx, set, s)
	return Result{
		Rule:         rule,
		Model:        model,
		Hybrid:       h.weights.Combine(h.catalog, rule, model),
		ModelVersion: set.Version(),
	}
}
