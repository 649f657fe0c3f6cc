package model

import (
	"time"

	"github.com/okian/talentscope/internal/domain/catalog"
)

// StrengthLevel buckets a domain confidence score.
type StrengthLevel string

// Strength levels, lowest first.
const (
	StrengthLow      StrengthLevel = "low"
	StrengthMedium   StrengthLevel = "medium"
	StrengthHigh     StrengthLevel = "high"
	StrengthVeryHigh StrengthLevel = "very_high"
)

// Trend describes how a domain score moves across runs. The engine never
// computes it; an empty value means unknown.
type Trend string

// Trends.
const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// DetectionHybrid tags records scored by the rule/model blend.
const DetectionHybrid = "hybrid"

// Evidence summarizes the data a domain record was derived from.
type Evidence struct {
	TotalSessions       int     `json:"total_sessions" yaml:"total_sessions"`
	AvgScore            float64 `json:"avg_score" yaml:"avg_score"`
	EmotionalEngagement float64 `json:"emotional_engagement" yaml:"emotional_engagement"`
}

// BehavioralEvidence captures how the child played.
type BehavioralEvidence struct {
	CompletionRate      float64        `json:"completion_rate" yaml:"completion_rate"`
	AvgResponseTime     float64        `json:"avg_response_time" yaml:"avg_response_time"`
	CategoryPreferences map[string]int `json:"category_preferences" yaml:"category_preferences"`
}

// PassionDomain is a detected domain for a child.
type PassionDomain struct {
	ID                    string             `json:"id" yaml:"id"`
	ChildID               string             `json:"child_id" yaml:"child_id"`
	Domain                catalog.ID         `json:"domain" yaml:"domain"`
	ConfidenceScore       float64            `json:"confidence_score" yaml:"confidence_score"`
	StrengthLevel         StrengthLevel      `json:"strength_level" yaml:"strength_level"`
	DetectionMethod       string             `json:"detection_method" yaml:"detection_method"`
	ModelVersion          string             `json:"model_version,omitempty" yaml:"model_version,omitempty"`
	DataPointsUsed        int                `json:"data_points_used" yaml:"data_points_used"`
	SupportingEvidence    Evidence           `json:"supporting_evidence" yaml:"supporting_evidence"`
	GamesPlayed           []string           `json:"games_played" yaml:"games_played"`
	BehavioralPatterns    BehavioralEvidence `json:"behavioral_patterns" yaml:"behavioral_patterns"`
	Trend                 Trend              `json:"trend,omitempty" yaml:"trend,omitempty"`
	RecommendedActivities []string           `json:"recommended_activities" yaml:"recommended_activities"`
	IsActive              bool               `json:"is_active" yaml:"is_active"`
	IsVerified            bool               `json:"is_verified" yaml:"is_verified"`
	DetectedAt            time.Time          `json:"detected_at" yaml:"detected_at"`
}

// InsightType classifies a PassionInsight.
type InsightType string

// Insight types.
const (
	InsightPattern        InsightType = "pattern"
	InsightTrend          InsightType = "trend"
	InsightRecommendation InsightType = "recommendation"
	InsightMilestone      InsightType = "milestone"
)

// PassionInsight is a human-readable observation about a child.
type PassionInsight struct {
	ID              string       `json:"id" yaml:"id"`
	ChildID         string       `json:"child_id" yaml:"child_id"`
	Type            InsightType  `json:"insight_type" yaml:"insight_type"`
	Title           string       `json:"title" yaml:"title"`
	Description     string       `json:"description" yaml:"description"`
	RelatedDomains  []catalog.ID `json:"related_domains,omitempty" yaml:"related_domains,omitempty"`
	ImportanceScore float64      `json:"importance_score" yaml:"importance_score"`
	IsHighlighted   bool         `json:"is_highlighted" yaml:"is_highlighted"`
	NotifyParent    bool         `json:"notify_parent" yaml:"notify_parent"`
	CreatedAt       time.Time    `json:"created_at" yaml:"created_at"`
}

// Pattern labels shared by the talent analyzer.
const (
	PatternUnknown        = "unknown"
	SpeedFast             = "fast"
	SpeedNormal           = "normal"
	SpeedSlow             = "slow"
	ConfidenceHigh        = "high"
	ConfidenceModerate    = "moderate"
	ConfidenceLow         = "low"
	CurveImproving        = "improving"
	CurveDeclining        = "declining"
	CurveStable           = "stable"
	CurveInsufficientData = "insufficient_data"
	StageExploration      = "exploration"
	StageDiscovery        = "discovery"
	StageDevelopment      = "development"
	StageRefinement       = "refinement"
)

// BehavioralPattern classifies how a child answers.
type BehavioralPattern struct {
	ResponseSpeed      string  `json:"response_speed" yaml:"response_speed"`
	ConfidenceLevel    string  `json:"confidence_level" yaml:"confidence_level"`
	AvgResponseTime    float64 `json:"avg_response_time" yaml:"avg_response_time"`
	AvgConfidenceLevel float64 `json:"avg_confidence_level" yaml:"avg_confidence_level"`
}

// ResponsePattern describes how scores move over the response history.
type ResponsePattern struct {
	LearningCurve string  `json:"learning_curve" yaml:"learning_curve"`
	EarlyAverage  float64 `json:"early_average" yaml:"early_average"`
	RecentAverage float64 `json:"recent_average" yaml:"recent_average"`
	ResponseCount int     `json:"response_count" yaml:"response_count"`
}

// InterestIndicators groups interests by strength.
type InterestIndicators struct {
	Strong    []string `json:"strong" yaml:"strong"`
	Moderate  []string `json:"moderate" yaml:"moderate"`
	Potential []string `json:"potential" yaml:"potential"`
}

// DevelopmentPath is the suggested next stage for a child.
type DevelopmentPath struct {
	Stage         string   `json:"stage" yaml:"stage"`
	Focus         string   `json:"focus" yaml:"focus"`
	PrimaryTalent string   `json:"primary_talent,omitempty" yaml:"primary_talent,omitempty"`
	Careers       []string `json:"careers,omitempty" yaml:"careers,omitempty"`
	NextSteps     []string `json:"next_steps" yaml:"next_steps"`
}

// TalentAssessment is the result of analyzing question responses.
type TalentAssessment struct {
	ID                    string                 `json:"id" yaml:"id"`
	ChildID               string                 `json:"child_id" yaml:"child_id"`
	AssessedAt            time.Time              `json:"assessed_at" yaml:"assessed_at"`
	TalentDomains         map[catalog.ID]float64 `json:"talent_domains" yaml:"talent_domains"`
	PrimaryTalent         *catalog.ID            `json:"primary_talent" yaml:"primary_talent"`
	SecondaryTalents      []catalog.ID           `json:"secondary_talents" yaml:"secondary_talents"`
	ConfidenceScore       float64                `json:"confidence_score" yaml:"confidence_score"`
	BehavioralPatterns    BehavioralPattern      `json:"behavioral_patterns" yaml:"behavioral_patterns"`
	ResponsePatterns      ResponsePattern        `json:"response_patterns" yaml:"response_patterns"`
	InterestIndicators    InterestIndicators     `json:"interest_indicators" yaml:"interest_indicators"`
	RecommendedActivities []string               `json:"recommended_activities" yaml:"recommended_activities"`
	DevelopmentPath       DevelopmentPath        `json:"development_path" yaml:"development_path"`
}
