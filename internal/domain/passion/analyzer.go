// Package passion detects passion domains from game sessions and explains
// them with insights.
package passion

import (
	"context"
	"time"

	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/features"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/scoring"
	"github.com/okian/talentscope/pkg/logger"
	"github.com/okian/talentscope/pkg/metrics"
)

const (
	defaultMaxRecommendations = 5
	recommendFloor            = 0.6
)

// Scorer computes rule, model and hybrid scores for a summary.
type Scorer interface {
	Score(ctx context.Context, s features.Summary, interests []string) scoring.Result
}

// Analysis is the outcome of analyzing one child's sessions.
type Analysis struct {
	ChildID                   string                    `json:"child_id" yaml:"child_id"`
	Domains                   []model.PassionDomain     `json:"passion_domains" yaml:"passion_domains"`
	Insights                  []model.PassionInsight    `json:"insights" yaml:"insights"`
	OverallConfidence         float64                   `json:"overall_confidence" yaml:"overall_confidence"`
	RecommendedNextActivities []string                  `json:"recommended_next_activities" yaml:"recommended_next_activities"`
	DevelopmentTrends         map[catalog.ID]model.Trend `json:"development_trends" yaml:"development_trends"`
	// Scores holds the hybrid score of every catalog domain.
	Scores     scoring.Set `json:"scores" yaml:"scores"`
	AnalyzedAt time.Time   `json:"analyzed_at" yaml:"analyzed_at"`
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the analyzer logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

// WithModelVersion sets the version stamped on records when the predictor
// set carries none.
func WithModelVersion(v string) Option {
	return func(a *Analyzer) { a.modelVersion = v }
}

// WithMaxRecommendations caps the next-activity list.
func WithMaxRecommendations(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxRecommendations = n
		}
	}
}

// Analyzer runs the session pipeline: extract, score, build, explain.
type Analyzer struct {
	catalog            *catalog.Catalog
	scorer             Scorer
	now                func() time.Time
	log                logger.Logger
	modelVersion       string
	maxRecommendations int
}

// NewAnalyzer creates an Analyzer over c using scorer.
func NewAnalyzer(c *catalog.Catalog, scorer Scorer, opts ...Option) *Analyzer {
	a := &Analyzer{
		catalog:            c,
		scorer:             scorer,
		now:                time.Now,
		log:                logger.Nop(),
		maxRecommendations: defaultMaxRecommendations,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeSessions detects passion domains for childID. No sessions yields
// an empty analysis with zero confidence.
func (a *Analyzer) AnalyzeSessions(ctx context.Context, childID string, sessions []model.Session, games []model.Game, interests []string) Analysis {
	now := a.now()
	res := Analysis{
		ChildID:                   childID,
		Domains:                   []model.PassionDomain{},
		Insights:                  []model.PassionInsight{},
		RecommendedNextActivities: []string{},
		DevelopmentTrends:         map[catalog.ID]model.Trend{},
		Scores:                    scoring.Set{},
		AnalyzedAt:                now,
	}
	if len(sessions) == 0 {
		for _, id := range a.catalog.IDs() {
			res.Scores[id] = 0
		}
		a.log.Debug(ctx, "no sessions to analyze", logger.String("child_id", childID))
		return res
	}

	summary := features.Extract(sessions, games)
	scores := a.scorer.Score(ctx, summary, interests)

	version := scores.ModelVersion
	if version == "" {
		version = a.modelVersion
	}

	res.Scores = scores.Hybrid
	res.Domains = BuildDomains(a.catalog, RecordInput{
		ChildID:      childID,
		Scores:       scores.Hybrid,
		Summary:      summary,
		GamesPlayed:  GamesPlayed(sessions, games),
		ModelVersion: version,
		DetectedAt:   now,
	})
	res.Insights = GenerateInsights(a.catalog, childID, res.Domains, summary, now)
	res.OverallConfidence = overallConfidence(res.Domains)
	res.RecommendedNextActivities = nextActivities(res.Domains, a.maxRecommendations)
	for _, d := range res.Domains {
		res.DevelopmentTrends[d.Domain] = d.Trend
		metrics.RecordDomainDetected(string(d.StrengthLevel))
	}
	for _, in := range res.Insights {
		metrics.RecordInsightGenerated(string(in.Type))
	}

	a.log.Debug(ctx, "sessions analyzed",
		logger.String("child_id", childID),
		logger.Int("sessions", summary.TotalSessions),
		logger.Int("domains", len(res.Domains)),
		logger.Int("insights", len(res.Insights)),
		logger.Float64("overall_confidence", res.OverallConfidence))
	return res
}

func overallConfidence(domains []model.PassionDomain) float64 {
	if len(domains) == 0 {
		return 0
	}
	var sum float64
	for _, d := range domains {
		sum += d.ConfidenceScore
	}
	return sum / float64(len(domains))
}

func nextActivities(domains []model.PassionDomain, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]struct{})
	for _, d := range domains {
		if d.ConfidenceScore <= recommendFloor {
			continue
		}
		for _, act := range d.RecommendedActivities {
			if _, dup := seen[act]; dup {
				continue
			}
			seen[act] = struct{}{}
			out = append(out, act)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
