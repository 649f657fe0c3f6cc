package scoring

import (
	"context"
	"fmt"

	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/features"
	"github.com/okian/talentscope/pkg/logger"
	"github.com/okian/talentscope/pkg/metrics"
)

// baseFeatureCount is the number of summary fields ahead of the per-domain
// category counts in the feature vector.
const baseFeatureCount = 10

// FeatureWidth is the length of FeatureVector for c.
func FeatureWidth(c *catalog.Catalog) int { return baseFeatureCount + c.Len() }

// FeatureVector builds the ordered model input: ten summary fields followed
// by the matched category count of every domain in catalog order.
func FeatureVector(c *catalog.Catalog, s features.Summary) []float64 {
	v := make([]float64, 0, FeatureWidth(c))
	v = append(v,
		float64(s.TotalSessions),
		float64(s.CompletedSessions),
		s.CompletionRate,
		s.TotalPlayTime,
		s.AvgSessionDuration,
		s.AvgScore,
		s.MaxScore,
		s.AvgResponseTime,
		s.AvgAccuracy,
		s.EmotionalEngagement,
	)
	for _, d := range c.Domains() {
		v = append(v, float64(s.CategoryCount(d)))
	}
	return v
}

// ModelScorer scores domains with the predictors of a Source. Domains
// without a predictor, and predictors that fail, score 0.
type ModelScorer struct {
	catalog *catalog.Catalog
	source  Source
	log     logger.Logger
}

// NewModelScorer creates a ModelScorer. A nil source scores every domain 0.
func NewModelScorer(c *catalog.Catalog, src Source, log logger.Logger) *ModelScorer {
	if src == nil {
		src = StaticSource{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ModelScorer{catalog: c, source: src, log: log}
}

// Score runs every predictor of the current set against the summary's
// feature vector.
func (m *ModelScorer) Score(ctx context.Context, s features.Summary) Set {
	return m.ScoreWith(ctx, m.source.Current(), s)
}

// ScoreWith is Score against an explicit predictor set snapshot.
func (m *ModelScorer) ScoreWith(ctx context.Context, set *PredictorSet, s features.Summary) Set {
	out := newSet(m.catalog)
	if set.Len() == 0 {
		return out
	}

	vec := FeatureVector(m.catalog, s)
	for _, id := range m.catalog.IDs() {
		p, ok := set.Get(id)
		if !ok {
			continue
		}
		// each predictor gets its own copy so one cannot corrupt the next
		in := append([]float64(nil), vec...)
		prob, err := safePredict(p, in)
		if err != nil {
			metrics.RecordPredictorFailure(string(id))
			m.log.Warn(ctx, "predictor failed",
				logger.String("domain", string(id)),
				logger.String("model_version", set.Version()),
				logger.Error(err))
			continue
		}
		out[id] = clamp(prob)
	}
	return out
}

func safePredict(p Predictor, in []float64) (prob float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			prob = 0
			err = fmt.Errorf("%w: %v", errPredictorPanic, r)
		}
	}()
	return p.Predict(in)
}
