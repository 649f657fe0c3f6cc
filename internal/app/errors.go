package service

import "errors"

// Sentinel errors for service lifecycle failures.
var (
	ErrNotStarted = errors.New("service not started")
	ErrStart      = errors.New("service start failed")
)
