package scoring

import (
	"sort"

	"github.com/okian/talentscope/internal/domain/catalog"
)

// Predictor produces the probability that a child has a passion for one
// domain given the model feature vector.
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(features []float64) (float64, error)

// Predict calls f.
func (f PredictorFunc) Predict(features []float64) (float64, error) { return f(features) }

// PredictorSet is an immutable domain to predictor mapping. A nil set is
// valid and empty.
type PredictorSet struct {
	version    string
	predictors map[catalog.ID]Predictor
}

// NewPredictorSet copies predictors into a new set. Nil predictors are
// skipped.
func NewPredictorSet(version string, predictors map[catalog.ID]Predictor) *PredictorSet {
	m := make(map[catalog.ID]Predictor, len(predictors))
	for id, p := range predictors {
		if p != nil {
			m[id] = p
		}
	}
	return &PredictorSet{version: version, predictors: m}
}

// Get returns the predictor for id.
func (s *PredictorSet) Get(id catalog.ID) (Predictor, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.predictors[id]
	return p, ok
}

// Len returns the number of predictors.
func (s *PredictorSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.predictors)
}

// Version returns the model version the set was built for.
func (s *PredictorSet) Version() string {
	if s == nil {
		return ""
	}
	return s.version
}

// Domains returns the covered domain ids in lexical order.
func (s *PredictorSet) Domains() []catalog.ID {
	if s == nil {
		return nil
	}
	ids := make([]catalog.ID, 0, len(s.predictors))
	for id := range s.predictors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Source supplies the predictor set current at call time.
type Source interface {
	Current() *PredictorSet
}

// StaticSource is a Source that always returns the same set.
type StaticSource struct {
	Set *PredictorSet
}

// Current returns s.Set.
func (s StaticSource) Current() *PredictorSet { return s.Set }
