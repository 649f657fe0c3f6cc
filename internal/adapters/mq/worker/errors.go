package worker

import "errors"

// Sentinel errors for worker failures.
var (
	ErrJobPanic        = errors.New("job panicked")
	ErrShutdownTimeout = errors.New("shutdown timed out")
)
