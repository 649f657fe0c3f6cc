// Package predictor loads per-domain statistical models from disk and
// publishes them as immutable predictor sets.
package predictor

import (
	"fmt"
	"math"

	"github.com/okian/talentscope/internal/domain/catalog"
)

// Logistic is a binary logistic regression over the model feature vector.
type Logistic struct {
	Domain  catalog.ID `koanf:"domain"`
	Version string     `koanf:"version"`
	Bias    float64    `koanf:"bias"`
	Weights []float64  `koanf:"weights"`
}

// Predict returns sigmoid(bias + weights·features).
func (l *Logistic) Predict(features []float64) (float64, error) {
	if len(features) != len(l.Weights) {
		return 0, fmt.Errorf("%w: %s expects %d features, got %d",
			ErrFeatureMismatch, l.Domain, len(l.Weights), len(features))
	}
	z := l.Bias
	for i, w := range l.Weights {
		z += w * features[i]
	}
	return 1 / (1 + math.Exp(-z)), nil
}
