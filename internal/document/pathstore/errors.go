package pathstore

import "errors"

var (
	// ErrEmptyPath indicates an operation addressed with a zero-segment path.
	ErrEmptyPath = errors.New("empty path")

	// ErrInvalidPath indicates a strict-mode operation on a path that holds
	// no value.
	ErrInvalidPath = errors.New("invalid path")
)
