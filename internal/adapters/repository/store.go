// Package repository keeps analysis results per child so callers can read
// them back, toggle parent verification, and summarize detections.
package repository

import (
	"context"
	"time"

	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/passion"
	"github.com/okian/talentscope/internal/domain/types"
)

// Thresholds applied to stored detections.
const (
	HighConfidenceThreshold = 0.7
	RecommendThreshold      = 0.6
	TopDomainsLimit         = 3
	RecentInsightsLimit     = 5
)

// Summary condenses the active detections of one child.
type Summary struct {
	ChildID               string                 `json:"child_id" yaml:"child_id"`
	TotalDomainsDetected  int                    `json:"total_domains_detected" yaml:"total_domains_detected"`
	HighConfidenceDomains int                    `json:"high_confidence_domains" yaml:"high_confidence_domains"`
	VerifiedDomains       int                    `json:"verified_domains" yaml:"verified_domains"`
	TopDomains            []types.Entry          `json:"top_domains" yaml:"top_domains"`
	RecentInsights        []model.PassionInsight `json:"recent_insights" yaml:"recent_insights"`
	LastAnalysis          *time.Time             `json:"last_analysis" yaml:"last_analysis"`
}

// Recommendation suggests activities for a strongly detected domain.
type Recommendation struct {
	Domain            catalog.ID `json:"domain" yaml:"domain"`
	Confidence        float64    `json:"confidence" yaml:"confidence"`
	Activities        []string   `json:"activities" yaml:"activities"`
	DifficultyLevel   string     `json:"difficulty_level" yaml:"difficulty_level"`
	EstimatedDuration int        `json:"estimated_duration" yaml:"estimated_duration"`
	Description       string     `json:"description" yaml:"description"`
	WhyRecommended    string     `json:"why_recommended" yaml:"why_recommended"`
}

// Store provides read/write access to analysis results.
type Store interface {
	// SaveAnalysis replaces the child's active domains with those in a and
	// appends its insights. Verification carries over for domains detected
	// again.
	SaveAnalysis(ctx context.Context, a passion.Analysis) error

	// Analysis returns the most recently saved analysis for a child.
	// Returns ErrNotFound if the child is unknown.
	Analysis(ctx context.Context, childID string) (passion.Analysis, error)

	// Domains returns the child's active domains in catalog order.
	Domains(ctx context.Context, childID string) ([]model.PassionDomain, error)

	// Insights returns every retained insight for a child, newest first.
	Insights(ctx context.Context, childID string) ([]model.PassionInsight, error)

	// Verify sets the parent verification flag on a domain record.
	// Returns ErrDomainNotFound if no active record has that id.
	Verify(ctx context.Context, domainID string, verified bool) (model.PassionDomain, error)

	// Summary returns detection statistics for a child.
	Summary(ctx context.Context, childID string) (Summary, error)

	// Recommendations returns suggestions for domains above RecommendThreshold.
	Recommendations(ctx context.Context, childID string) ([]Recommendation, error)

	// SaveAssessment appends a talent assessment to the child's history.
	SaveAssessment(ctx context.Context, a model.TalentAssessment) error

	// Assessments returns the child's assessment history, newest first.
	Assessments(ctx context.Context, childID string) ([]model.TalentAssessment, error)

	// Count returns the number of children with stored results.
	Count(ctx context.Context) int
}
