package passion

import (
	"time"

	"github.com/google/uuid"
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/features"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/scoring"
)

// DetectionThreshold is the hybrid score a domain must exceed to be
// reported.
const DetectionThreshold = 0.3

// recordActivities is the number of catalog activities attached to a record.
const recordActivities = 3

// RecordInput carries everything needed to build domain records for one
// child.
type RecordInput struct {
	ChildID      string
	Scores       scoring.Set
	Summary      features.Summary
	GamesPlayed  []string
	ModelVersion string
	DetectedAt   time.Time
}

// BuildDomains returns a record for every domain scoring above
// DetectionThreshold, in catalog order.
func BuildDomains(c *catalog.Catalog, in RecordInput) []model.PassionDomain {
	out := make([]model.PassionDomain, 0)
	for _, d := range c.Domains() {
		score := in.Scores.Get(d.ID)
		if score <= DetectionThreshold {
			continue
		}
		out = append(out, model.PassionDomain{
			ID:              uuid.NewString(),
			ChildID:         in.ChildID,
			Domain:          d.ID,
			ConfidenceScore: score,
			StrengthLevel:   StrengthFor(score),
			DetectionMethod: model.DetectionHybrid,
			ModelVersion:    in.ModelVersion,
			DataPointsUsed:  in.Summary.TotalSessions,
			SupportingEvidence: model.Evidence{
				TotalSessions:       in.Summary.TotalSessions,
				AvgScore:            in.Summary.AvgScore,
				EmotionalEngagement: in.Summary.EmotionalEngagement,
			},
			GamesPlayed: append([]string(nil), in.GamesPlayed...),
			BehavioralPatterns: model.BehavioralEvidence{
				CompletionRate:      in.Summary.CompletionRate,
				AvgResponseTime:     in.Summary.AvgResponseTime,
				CategoryPreferences: copyCounts(in.Summary.CategoryPreferences),
			},
			RecommendedActivities: d.TopActivities(recordActivities),
			IsActive:              true,
			DetectedAt:            in.DetectedAt,
		})
	}
	return out
}

// GamesPlayed returns the distinct names of games that sessions resolve to,
// in first-played order.
func GamesPlayed(sessions []model.Session, games []model.Game) []string {
	names := make(map[string]string, len(games))
	for _, g := range games {
		names[g.ID] = g.Name
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range sessions {
		name, ok := names[s.GameID]
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
