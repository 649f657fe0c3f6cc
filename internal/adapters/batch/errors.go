package batch

import "errors"

// Sentinel errors for batch codec failures.
var (
	ErrDecodeBatch   = errors.New("decode batch")
	ErrEncodeReport  = errors.New("encode report")
	ErrUnknownFormat = errors.New("unknown format")
)
