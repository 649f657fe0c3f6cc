package scoring

import (
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/features"
)

// Rule increments and the thresholds that trigger them.
const (
	categoryBonus      = 0.1
	highScoreBonus     = 0.2
	highAccuracyBonus  = 0.15
	engagementBonus    = 0.2
	completionBonus    = 0.15
	playTimeBonus      = 0.1
	interestBonus      = 0.2
	highScoreThreshold = 0.7
	accuracyThreshold  = 0.8
	engagementLimit    = 0.6
	completionLimit    = 0.8
	playTimeMinutes    = 60
)

// RuleScorer scores domains with fixed additive heuristics. Scores saturate
// at 1 and are not normalized across domains.
type RuleScorer struct {
	catalog *catalog.Catalog
}

// NewRuleScorer creates a RuleScorer over c.
func NewRuleScorer(c *catalog.Catalog) *RuleScorer {
	return &RuleScorer{catalog: c}
}

// Score computes the rule score of every catalog domain.
func (r *RuleScorer) Score(s features.Summary, interests []string) Set {
	out := newSet(r.catalog)

	// Performance and engagement bonuses are domain independent.
	var shared float64
	if s.AvgScore > highScoreThreshold {
		shared += highScoreBonus
	}
	if s.AvgAccuracy > accuracyThreshold {
		shared += highAccuracyBonus
	}
	if s.EmotionalEngagement > engagementLimit {
		shared += engagementBonus
	}
	if s.CompletionRate > completionLimit {
		shared += completionBonus
	}
	if s.TotalPlayTime > playTimeMinutes {
		shared += playTimeBonus
	}

	for _, d := range r.catalog.Domains() {
		score := categoryBonus*float64(s.CategoryCount(d)) + shared
		for _, interest := range interests {
			if d.MatchesKeyword(interest) {
				score += interestBonus
			}
		}
		out[d.ID] = clamp(score)
	}
	return out
}
