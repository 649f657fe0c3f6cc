package scoring

import "errors"

// ErrInvalidWeights is returned when hybrid weights are negative or do not sum to 1.
var ErrInvalidWeights = errors.New("invalid hybrid weights")

// errPredictorPanic wraps a recovered predictor panic.
var errPredictorPanic = errors.New("predictor panicked")
