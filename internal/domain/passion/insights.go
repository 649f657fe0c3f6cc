package passion

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/features"
	"github.com/okian/talentscope/internal/domain/model"
)

// Insight triggers and their importance.
const (
	strongDomainFloor      = 0.7
	strongDomainImportance = 0.9
	engagementFloor        = 0.7
	engagementImportance   = 0.7
	completionFloor        = 0.9
	completionImportance   = 0.8
)

// GenerateInsights derives up to three insights from the detected domains
// and the feature summary. Each trigger fires independently.
func GenerateInsights(c *catalog.Catalog, childID string, domains []model.PassionDomain, s features.Summary, now time.Time) []model.PassionInsight {
	out := make([]model.PassionInsight, 0, 3)

	// strictly greater keeps the earliest domain on ties
	var top *model.PassionDomain
	for i := range domains {
		d := &domains[i]
		if d.ConfidenceScore <= strongDomainFloor {
			continue
		}
		if top == nil || d.ConfidenceScore > top.ConfidenceScore {
			top = d
		}
	}
	if top != nil {
		name := c.Name(top.Domain)
		out = append(out, model.PassionInsight{
			ID:      uuid.NewString(),
			ChildID: childID,
			Type:    model.InsightPattern,
			Title:   fmt.Sprintf("Strong %s Interest Detected", name),
			Description: fmt.Sprintf("Your child shows a strong interest in %s activities with %.1f%% confidence.",
				name, top.ConfidenceScore*100),
			RelatedDomains:  []catalog.ID{top.Domain},
			ImportanceScore: strongDomainImportance,
			IsHighlighted:   true,
			NotifyParent:    true,
			CreatedAt:       now,
		})
	}

	if s.EmotionalEngagement > engagementFloor {
		out = append(out, model.PassionInsight{
			ID:              uuid.NewString(),
			ChildID:         childID,
			Type:            model.InsightPattern,
			Title:           "High Engagement Level",
			Description:     "Your child shows high emotional engagement during activities, indicating strong interest in learning.",
			ImportanceScore: engagementImportance,
			CreatedAt:       now,
		})
	}

	if s.CompletionRate > completionFloor {
		out = append(out, model.PassionInsight{
			ID:              uuid.NewString(),
			ChildID:         childID,
			Type:            model.InsightMilestone,
			Title:           "Excellent Completion Rate",
			Description:     "Your child completes 90%+ of activities, showing strong focus and determination.",
			ImportanceScore: completionImportance,
			CreatedAt:       now,
		})
	}

	return out
}
