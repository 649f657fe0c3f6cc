// Package features reduces raw game sessions to a fixed-shape summary the
// scorers consume.
package features

import (
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
)

const (
	secondsPerMinute = 60
	positiveEmotion  = "positive"
)

// Summary is the feature set extracted from a child's sessions. Every
// numeric field is zero when the underlying data is absent.
type Summary struct {
	TotalSessions     int
	CompletedSessions int
	CompletionRate    float64
	// TotalPlayTime is in minutes.
	TotalPlayTime float64
	// AvgSessionDuration is in seconds.
	AvgSessionDuration  float64
	AvgScore            float64
	MaxScore            float64
	CategoryPreferences map[string]int
	AvgResponseTime     float64
	AvgAccuracy         float64
	EmotionalEngagement float64
}

// Extract computes the Summary for sessions. Sessions whose game id does not
// resolve in games still count toward every feature except category
// preferences.
func Extract(sessions []model.Session, games []model.Game) Summary {
	s := Summary{CategoryPreferences: make(map[string]int)}
	if len(sessions) == 0 {
		return s
	}

	byID := make(map[string]model.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	var (
		totalDuration float64
		scores        mean
		responseTimes mean
		accuracy      mean
		emotion       mean
	)

	s.TotalSessions = len(sessions)
	for i := range sessions {
		sess := &sessions[i]

		if sess.Completed() {
			s.CompletedSessions++
		}
		if sess.DurationSeconds != nil {
			totalDuration += *sess.DurationSeconds
		}
		if sess.Score != nil {
			scores.add(*sess.Score)
			if scores.n == 1 || *sess.Score > s.MaxScore {
				s.MaxScore = *sess.Score
			}
		}
		if g, ok := byID[sess.GameID]; ok {
			s.CategoryPreferences[g.Category]++
		}
		if sess.SpeedMetrics != nil {
			for _, rt := range sess.SpeedMetrics.ResponseTimes {
				responseTimes.add(rt)
			}
		}
		if sess.Accuracy != nil {
			accuracy.add(*sess.Accuracy)
		}
		if v, ok := sess.EmotionalReactions[positiveEmotion]; ok {
			emotion.add(v)
		}
	}

	s.CompletionRate = float64(s.CompletedSessions) / float64(s.TotalSessions)
	s.TotalPlayTime = totalDuration / secondsPerMinute
	s.AvgSessionDuration = totalDuration / float64(s.TotalSessions)
	s.AvgScore = scores.value()
	s.AvgResponseTime = responseTimes.value()
	s.AvgAccuracy = accuracy.value()
	s.EmotionalEngagement = emotion.value()
	return s
}

// CategoryCount returns the number of sessions played in categories that
// match any of the domain's keywords.
func (s Summary) CategoryCount(d catalog.Domain) int {
	total := 0
	for category, count := range s.CategoryPreferences {
		if d.MatchesKeyword(category) {
			total += count
		}
	}
	return total
}

// mean is a running arithmetic mean; zero observations yield 0.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}
