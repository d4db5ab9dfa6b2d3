package node

import (
	"fmt"
	"unicode/utf8"
)

// TextLen returns the length of a text value in runes.
func TextLen(s string) int {
	return utf8.RuneCountInString(s)
}

// SpliceInsert inserts text at the given rune offset and returns the new
// value. The offset must lie in [0, TextLen(s)].
func SpliceInsert(s string, offset int, text string) (string, error) {
	b, err := byteOffset(s, offset)
	if err != nil {
		return "", err
	}
	return s[:b] + text + s[b:], nil
}

// SpliceDelete removes the rune range [start, end) and returns the
// remaining value together with the removed text.
func SpliceDelete(s string, start, end int) (remaining, removed string, err error) {
	if start > end {
		return "", "", fmt.Errorf("%w: start %d > end %d", ErrRangeInvalid, start, end)
	}
	bs, err := byteOffset(s, start)
	if err != nil {
		return "", "", err
	}
	be, err := byteOffset(s, end)
	if err != nil {
		return "", "", err
	}
	return s[:bs] + s[be:], s[bs:be], nil
}

// SliceText returns the rune range [start, end) of a text value.
func SliceText(s string, start, end int) (string, error) {
	_, removed, err := SpliceDelete(s, start, end)
	return removed, err
}

// byteOffset maps a rune offset to the byte offset of that rune.
func byteOffset(s string, offset int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("%w: offset %d", ErrOffsetOutOfRange, offset)
	}
	count := 0
	for b := range s {
		if count == offset {
			return b, nil
		}
		count++
	}
	if count == offset {
		return len(s), nil
	}
	return 0, fmt.Errorf("%w: offset %d exceeds length %d", ErrOffsetOutOfRange, offset, count)
}
