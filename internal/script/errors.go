package script

import "errors"

// Errors for script engine operations.
var (
	// ErrEngineClosed is returned when running on a closed engine.
	ErrEngineClosed = errors.New("script engine is closed")

	// ErrTimeout is returned when a script exceeds the run timeout.
	ErrTimeout = errors.New("script execution timeout")
)
