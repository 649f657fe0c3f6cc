package talent

import (
	"math"

	"github.com/okian/talentscope/internal/domain/model"
)

const (
	fastResponseSeconds = 10
	slowResponseSeconds = 30
	highConfidenceLevel = 7
	lowConfidenceLevel  = 4
	curveWindow         = 5
	improvingRatio      = 1.2
	decliningRatio      = 0.8
)

func behavioralPattern(responses []model.QuestionResponse) model.BehavioralPattern {
	var p model.BehavioralPattern

	var times []float64
	for _, r := range responses {
		if r.ResponseTime != nil {
			times = append(times, *r.ResponseTime)
		}
	}
	if len(times) == 0 {
		p.ResponseSpeed = model.PatternUnknown
	} else {
		p.AvgResponseTime = mean(times)
		switch {
		case p.AvgResponseTime < fastResponseSeconds:
			p.ResponseSpeed = model.SpeedFast
		case p.AvgResponseTime > slowResponseSeconds:
			p.ResponseSpeed = model.SpeedSlow
		default:
			p.ResponseSpeed = model.SpeedNormal
		}
	}

	p.AvgConfidenceLevel = meanOr(selfReportedLevels(responses), defaultSelfReported)
	switch {
	case p.AvgConfidenceLevel > highConfidenceLevel:
		p.ConfidenceLevel = model.ConfidenceHigh
	case p.AvgConfidenceLevel < lowConfidenceLevel:
		p.ConfidenceLevel = model.ConfidenceLow
	default:
		p.ConfidenceLevel = model.ConfidenceModerate
	}
	return p
}

// responsePattern compares the earliest and the most recent scored
// responses.
func responsePattern(responses []model.QuestionResponse) model.ResponsePattern {
	p := model.ResponsePattern{ResponseCount: len(responses)}

	var scores []float64
	for _, r := range responses {
		if r.Score != nil {
			scores = append(scores, *r.Score)
		}
	}
	if len(scores) < curveWindow {
		p.LearningCurve = model.CurveInsufficientData
		return p
	}

	p.EarlyAverage = mean(scores[:curveWindow])
	p.RecentAverage = mean(scores[len(scores)-curveWindow:])
	switch {
	case p.RecentAverage > improvingRatio*p.EarlyAverage:
		p.LearningCurve = model.CurveImproving
	case p.RecentAverage < decliningRatio*p.EarlyAverage:
		p.LearningCurve = model.CurveDeclining
	default:
		p.LearningCurve = model.CurveStable
	}
	return p
}

func selfReportedLevels(responses []model.QuestionResponse) []float64 {
	var out []float64
	for _, r := range responses {
		if r.ConfidenceLevel != nil {
			out = append(out, *r.ConfidenceLevel)
		}
	}
	return out
}

func mean(v []float64) float64 {
	return meanOr(v, 0)
}

func meanOr(v []float64, fallback float64) float64 {
	if len(v) == 0 {
		return fallback
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// variance is the population variance of v.
func variance(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := mean(v)
	var sq float64
	for _, x := range v {
		sq += (x - m) * (x - m)
	}
	return sq / float64(len(v))
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
