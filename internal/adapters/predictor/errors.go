package predictor

import "errors"

// Sentinel error kinds for this package.
var (
	ErrModelFile       = errors.New("predictor model file")
	ErrUnknownDomain   = errors.New("model for unknown domain")
	ErrFeatureMismatch = errors.New("feature vector length mismatch")
	ErrWatcherRunning  = errors.New("watcher already running")
)
