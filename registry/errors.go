package registry

import (
	"errors"
	"fmt"
)

// Errors returned by the descriptor tables.
var (
	// ErrInvalidArgument is returned for nil descriptors, empty names and
	// other malformed input.
	ErrInvalidArgument = errors.New("registry: invalid argument")

	// ErrInvalidIndex is returned when an index is out of range or points to
	// an empty slot.
	ErrInvalidIndex = fmt.Errorf("%w: invalid index", ErrInvalidArgument)

	// ErrNotFound is returned when a lookup does not match any registered
	// descriptor. It is a normal negative result, not a failure of the table.
	ErrNotFound = errors.New("registry: not found")

	// ErrFull is returned when a table has no empty slot left.
	ErrFull = errors.New("registry: table full")
)
