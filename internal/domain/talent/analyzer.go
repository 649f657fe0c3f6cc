// Package talent builds a talent assessment from a child's answers to
// assessment questions.
package talent

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/types"
	"github.com/okian/talentscope/pkg/logger"
)

const (
	defaultDomainScore  = 0.3
	defaultConfidence   = 0.2
	interestFallback    = 0.6
	primaryFloor        = 0.5
	secondaryFloor      = 0.4
	maxSecondaryTalents = 3
	fullResponseCount   = 10
	defaultSelfReported = 5.0
	selfReportedScale   = 10.0
	countWeight         = 0.4
	consistencyWeight   = 0.4
	selfReportedWeight  = 0.2
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock sets the time source used for ages and timestamps.
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

// Analyzer turns question responses into a TalentAssessment.
type Analyzer struct {
	catalog *catalog.Catalog
	now     func() time.Time
	log     logger.Logger
}

// NewAnalyzer creates an Analyzer over c.
func NewAnalyzer(c *catalog.Catalog, opts ...Option) *Analyzer {
	a := &Analyzer{catalog: c, now: time.Now, log: logger.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeResponses assesses responses, which must be ordered oldest first.
// With no responses a default assessment seeded from the profile is
// returned.
func (a *Analyzer) AnalyzeResponses(ctx context.Context, responses []model.QuestionResponse, profile model.ChildProfile) model.TalentAssessment {
	now := a.now()
	age := profile.AgeAt(now)

	childID := profile.ChildID
	if childID == "" && len(responses) > 0 {
		childID = responses[0].ChildID
	}

	if len(responses) == 0 {
		a.log.Debug(ctx, "no responses, using default assessment", logger.String("child_id", childID))
		return a.defaultAssessment(childID, profile, age, now)
	}

	scores := a.domainScores(responses, profile)
	ranked := types.Rank(a.catalog.IDs(), scores)

	var primary *catalog.ID
	if ranked[0].Score > primaryFloor {
		id := ranked[0].Domain
		primary = &id
	}
	secondary := make([]catalog.ID, 0, maxSecondaryTalents)
	for _, e := range ranked[1:] {
		if len(secondary) == maxSecondaryTalents {
			break
		}
		if e.Score > secondaryFloor {
			secondary = append(secondary, e.Domain)
		}
	}

	out := model.TalentAssessment{
		ID:                    uuid.NewString(),
		ChildID:               childID,
		AssessedAt:            now,
		TalentDomains:         scores,
		PrimaryTalent:         primary,
		SecondaryTalents:      secondary,
		ConfidenceScore:       a.confidence(responses, scores),
		BehavioralPatterns:    behavioralPattern(responses),
		ResponsePatterns:      responsePattern(responses),
		InterestIndicators:    a.interestIndicators(scores, profile),
		RecommendedActivities: a.recommendations(primary, secondary, age),
		DevelopmentPath:       a.developmentPath(primary, age),
	}

	a.log.Debug(ctx, "responses analyzed",
		logger.String("child_id", childID),
		logger.Int("responses", len(responses)),
		logger.Any("primary_talent", primary),
		logger.Float64("confidence", out.ConfidenceScore))
	return out
}

func (a *Analyzer) defaultAssessment(childID string, profile model.ChildProfile, age int, now time.Time) model.TalentAssessment {
	scores := make(map[catalog.ID]float64, a.catalog.Len())
	for _, id := range a.catalog.IDs() {
		scores[id] = defaultDomainScore
	}
	return model.TalentAssessment{
		ID:               uuid.NewString(),
		ChildID:          childID,
		AssessedAt:       now,
		TalentDomains:    scores,
		SecondaryTalents: []catalog.ID{},
		ConfidenceScore:  defaultConfidence,
		BehavioralPatterns: model.BehavioralPattern{
			ResponseSpeed:   model.PatternUnknown,
			ConfidenceLevel: model.PatternUnknown,
		},
		ResponsePatterns: model.ResponsePattern{LearningCurve: model.PatternUnknown},
		InterestIndicators: model.InterestIndicators{
			Strong:    appendUnique(nil, profile.InitialInterests...),
			Moderate:  appendUnique(nil, profile.FavoriteActivities...),
			Potential: []string{},
		},
		RecommendedActivities: appendUnique(nil, ageBandActivities(age)...),
		DevelopmentPath:       explorationPath(),
	}
}

// domainScores averages response scores per indicated domain. Domains with
// no scored response fall back to interestFallback when a profile interest
// matches their vocabulary.
func (a *Analyzer) domainScores(responses []model.QuestionResponse, profile model.ChildProfile) map[catalog.ID]float64 {
	sums := make(map[catalog.ID]float64)
	counts := make(map[catalog.ID]int)
	for _, r := range responses {
		if r.Score == nil || !a.catalog.Has(r.TalentIndicator) {
			continue
		}
		sums[r.TalentIndicator] += *r.Score
		counts[r.TalentIndicator]++
	}

	scores := make(map[catalog.ID]float64, a.catalog.Len())
	for _, d := range a.catalog.Domains() {
		if n := counts[d.ID]; n > 0 {
			scores[d.ID] = clamp(sums[d.ID] / float64(n))
			continue
		}
		scores[d.ID] = 0
		for _, interest := range profile.InitialInterests {
			if d.MatchesVocabulary(interest) {
				scores[d.ID] = interestFallback
				break
			}
		}
	}
	return scores
}

func (a *Analyzer) confidence(responses []model.QuestionResponse, scores map[catalog.ID]float64) float64 {
	countFactor := float64(len(responses)) / fullResponseCount
	if countFactor > 1 {
		countFactor = 1
	}

	values := make([]float64, 0, len(scores))
	for _, id := range a.catalog.IDs() {
		values = append(values, scores[id])
	}
	consistency := 1 - variance(values)
	if consistency < 0 {
		consistency = 0
	}

	selfReported := meanOr(selfReportedLevels(responses), defaultSelfReported) / selfReportedScale

	return clamp(countWeight*countFactor + consistencyWeight*consistency + selfReportedWeight*selfReported)
}
