package transform

import "fmt"

// Span is a rune range [Start, End) on a single text property.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }

// SpanAfterInsert returns the span after length runes were inserted at
// pos. A span anchored at or after pos shifts right as a whole, a span
// containing pos grows, and a span strictly before pos is untouched.
// Text inserted at the exclusive end of a span is not absorbed.
func SpanAfterInsert(s Span, pos, length int) Span {
	switch {
	case s.Start >= pos:
		return Span{s.Start + length, s.End + length}
	case s.End > pos:
		return Span{s.Start, s.End + length}
	default:
		return s
	}
}

// SpanAfterDelete returns the span after the rune range [from, to) was
// deleted, and whether the span was consumed by the deletion. The six
// positions a span can take relative to the deleted range resolve as
// follows:
//
//	fully before:        unchanged
//	fully after:         both offsets shift left
//	ends inside:         end clamps to from
//	starts inside:       start clamps to from, end shifts left
//	fully contained:     consumed
//	spans the deletion:  end shifts left, start unchanged
//
// A span that was already collapsed is never consumed; it relocates to
// from when it sat inside the deleted range.
func SpanAfterDelete(s Span, from, to int) (Span, bool) {
	length := to - from
	if s.End <= from {
		return s, false
	}
	if s.Start >= to {
		return Span{s.Start - length, s.End - length}, false
	}
	out := s
	if s.Start >= from {
		out.Start = s.Start - min(length, s.Start-from)
	}
	if s.End >= from {
		out.End = s.End - min(length, s.End-from)
	}
	if s.Start != s.End && out.Start == out.End {
		return out, true
	}
	return out, false
}

// StartAfterInsert shifts a start coordinate for an insertion of length
// runes at pos. Start coordinates sitting exactly at the insertion
// point move right, so the inserted text lands outside the range.
func StartAfterInsert(off, pos, length int) int {
	if off >= pos {
		return off + length
	}
	return off
}

// EndAfterInsert shifts an end coordinate for an insertion of length
// runes at pos. End coordinates sitting exactly at the insertion point
// stay, so text typed at the exclusive end of a range is not absorbed.
func EndAfterInsert(off, pos, length int) int {
	if off > pos {
		return off + length
	}
	return off
}

// CoordAfterDelete maps a coordinate through the deletion of [from, to).
// Coordinates inside the deleted range collapse onto from.
func CoordAfterDelete(off, from, to int) int {
	switch {
	case off <= from:
		return off
	case off >= to:
		return off - (to - from)
	default:
		return from
	}
}
