package bridge

import "errors"

var (
	// ErrUnavailable means the bridge binary could not be located or started.
	ErrUnavailable = errors.New("device bridge unavailable")
	// ErrPropertyQuery covers spawn failures, non-zero exits and empty output
	// of a single property read.
	ErrPropertyQuery = errors.New("property query failed")
)
