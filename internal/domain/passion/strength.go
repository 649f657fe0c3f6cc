package passion

import "github.com/okian/talentscope/internal/domain/model"

// Strength bucket lower bounds, inclusive, evaluated top-down.
const (
	veryHighFloor = 0.8
	highFloor     = 0.6
	mediumFloor   = 0.4
)

// StrengthFor buckets a confidence score.
func StrengthFor(score float64) model.StrengthLevel {
	switch {
	case score >= veryHighFloor:
		return model.StrengthVeryHigh
	case score >= highFloor:
		return model.StrengthHigh
	case score >= mediumFloor:
		return model.StrengthMedium
	default:
		return model.StrengthLow
	}
}
