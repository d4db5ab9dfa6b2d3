package node

import "errors"

var (
	// ErrOffsetOutOfRange indicates a rune offset outside the valid range
	// of a text value.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates a rune range whose start exceeds its end.
	ErrRangeInvalid = errors.New("invalid range")
)
