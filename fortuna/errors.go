package fortuna

import (
	"errors"
	"fmt"

	"github.com/safing/portcrypt/registry"
)

// Errors.
var (
	ErrNotStarted     = errors.New("fortuna: not started")
	ErrNotReady       = errors.New("fortuna: not ready")
	ErrBufferTooSmall = errors.New("fortuna: buffer too small")
	ErrFinalized      = errors.New("fortuna: pool already finalized")
	ErrInvalidConfig  = errors.New("fortuna: invalid config")

	ErrSeedTooShort = fmt.Errorf("%w: fortuna: seed too short", registry.ErrInvalidArgument)
	ErrInvalidPool  = fmt.Errorf("%w: fortuna: invalid pool", registry.ErrInvalidArgument)
	ErrEmptyEvent   = fmt.Errorf("%w: fortuna: empty event", registry.ErrInvalidArgument)

	ErrUnsuitableHash   = fmt.Errorf("%w: unsuitable hash", ErrInvalidConfig)
	ErrUnsuitableCipher = fmt.Errorf("%w: unsuitable cipher", ErrInvalidConfig)
)
