package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("child not found")
	ErrDomainNotFound = errors.New("passion domain not found")
	ErrMissingChildID = errors.New("missing child id")
)
