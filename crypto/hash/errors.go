package hash

import "errors"

// Errors.
var (
	ErrUnknownAlgorithm = errors.New("hash: unknown algorithm")
	ErrSelfTestFailed   = errors.New("hash: self test failed")
	ErrMalformed        = errors.New("hash: malformed")
)
