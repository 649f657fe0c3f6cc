// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/talentscope/internal/domain/catalog"
)

// SessionStatus is the lifecycle state of a game session.
type SessionStatus string

// Session statuses.
const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
	SessionError     SessionStatus = "error"
)

// SpeedMetrics carries timing telemetry recorded during a session.
type SpeedMetrics struct {
	ResponseTimes []float64 `json:"response_times,omitempty" yaml:"response_times"`
}

// Session is one play-through of a mini-game. Optional measurements are
// pointers; nil means the game did not report them.
type Session struct {
	ID              string        `json:"id" yaml:"id"`
	ChildID         string        `json:"child_id" yaml:"child_id"`
	GameID          string        `json:"game_id" yaml:"game_id"`
	Status          SessionStatus `json:"status" yaml:"status"`
	DurationSeconds *float64      `json:"duration_seconds,omitempty" yaml:"duration_seconds"`
	Score           *float64      `json:"score,omitempty" yaml:"score"`
	Accuracy        *float64      `json:"accuracy,omitempty" yaml:"accuracy"`
	SpeedMetrics    *SpeedMetrics `json:"speed_metrics,omitempty" yaml:"speed_metrics"`
	// EmotionalReactions maps emotion class to intensity; "positive" feeds
	// the engagement feature.
	EmotionalReactions map[string]float64 `json:"emotional_reactions,omitempty" yaml:"emotional_reactions"`
	StartedAt          time.Time          `json:"started_at,omitempty" yaml:"started_at"`
	CompletedAt        time.Time          `json:"completed_at,omitempty" yaml:"completed_at"`
}

// Completed reports whether the session finished.
func (s Session) Completed() bool { return s.Status == SessionCompleted }

// Game is the subset of game metadata the engine reads.
type Game struct {
	ID       string `json:"id" yaml:"id"`
	Category string `json:"category" yaml:"category"`
	Name     string `json:"name" yaml:"name"`
}

// QuestionResponse is a child's answer to an assessment question.
type QuestionResponse struct {
	ID         string `json:"id" yaml:"id"`
	ChildID    string `json:"child_id" yaml:"child_id"`
	QuestionID string `json:"question_id" yaml:"question_id"`
	Answer     string `json:"answer" yaml:"answer"`
	// ResponseTime is in seconds.
	ResponseTime *float64 `json:"response_time,omitempty" yaml:"response_time"`
	// ConfidenceLevel is self-reported on a 1-10 scale.
	ConfidenceLevel *float64 `json:"confidence_level,omitempty" yaml:"confidence_level"`
	Score           *float64 `json:"score,omitempty" yaml:"score"`
	// TalentIndicator names the domain the question targets.
	TalentIndicator catalog.ID `json:"talent_indicator" yaml:"talent_indicator"`
	CreatedAt       time.Time  `json:"created_at,omitempty" yaml:"created_at"`
}

// ChildProfile holds the parent-reported facts the talent analyzer reads.
type ChildProfile struct {
	ChildID            string    `json:"child_id" yaml:"child_id"`
	DateOfBirth        time.Time `json:"date_of_birth" yaml:"date_of_birth"`
	InitialInterests   []string  `json:"initial_interests,omitempty" yaml:"initial_interests"`
	FavoriteActivities []string  `json:"favorite_activities,omitempty" yaml:"favorite_activities"`
}

// AgeAt returns the child's age in whole years at t. A zero birth date
// yields 0.
func (p ChildProfile) AgeAt(t time.Time) int {
	if p.DateOfBirth.IsZero() || t.Before(p.DateOfBirth) {
		return 0
	}
	age := t.Year() - p.DateOfBirth.Year()
	if t.Month() < p.DateOfBirth.Month() ||
		(t.Month() == p.DateOfBirth.Month() && t.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}

// Float returns a pointer to v. Handy for optional measurements.
func Float(v float64) *float64 { return &v }
