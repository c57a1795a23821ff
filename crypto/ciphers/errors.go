package ciphers

import (
	"errors"
	"fmt"

	"github.com/safing/portcrypt/registry"
)

// Errors.
var (
	ErrUnknownAlgorithm = errors.New("ciphers: unknown algorithm")
	ErrSelfTestFailed   = errors.New("ciphers: self test failed")
	ErrInvalidKeySize   = fmt.Errorf("%w: ciphers: invalid key size", registry.ErrInvalidArgument)
)
