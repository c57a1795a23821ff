package random

import (
	"errors"
	"fmt"

	"github.com/safing/portcrypt/registry"
)

// Errors.
var (
	ErrNotSeeded      = errors.New("random: generator not seeded")
	ErrTerminated     = errors.New("random: generator terminated")
	ErrReadFailed     = errors.New("random: failed to read random data")
	ErrUnsuitable     = errors.New("random: unsuitable cipher")
	ErrSeedTooShort   = fmt.Errorf("%w: random: seed too short", registry.ErrInvalidArgument)
	ErrSelfTestFailed = errors.New("random: self test failed")
)
