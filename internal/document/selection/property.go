package selection

import (
	"fmt"

	"github.com/archivist/substance/internal/document/node"
)

// Property selects a rune range inside one text property. Offsets may be
// given in either order; Range normalizes them.
type Property struct {
	Path        node.Path
	StartOffset int
	EndOffset   int
}

// NewProperty builds a property selection over [start, end) at the given
// property path.
func NewProperty(p node.Path, start, end int) Property {
	return Property{Path: p.Clone(), StartOffset: start, EndOffset: end}
}

// Collapsed builds a collapsed property selection at one offset.
func Collapsed(p node.Path, offset int) Property {
	return NewProperty(p, offset, offset)
}

// IsNull reports false.
func (Property) IsNull() bool { return false }

// IsCollapsed reports whether the selection covers no runes.
func (s Property) IsCollapsed() bool { return s.StartOffset == s.EndOffset }

// IsPropertySelection reports true.
func (Property) IsPropertySelection() bool { return true }

// IsContainerSelection reports false.
func (Property) IsContainerSelection() bool { return false }

// IsTableSelection reports false.
func (Property) IsTableSelection() bool { return false }

// IsReverse reports whether the anchor comes after the focus.
func (s Property) IsReverse() bool { return s.StartOffset > s.EndOffset }

// Range returns the normalized form.
func (s Property) Range() Range {
	start, end := s.StartOffset, s.EndOffset
	if start > end {
		start, end = end, start
	}
	return Range{
		Start: Coordinate{Path: s.Path, Offset: start},
		End:   Coordinate{Path: s.Path, Offset: end},
	}
}

// Collapse returns a collapsed selection at the start or end of the
// normalized range.
func (s Property) Collapse(toStart bool) Property {
	r := s.Range()
	if toStart {
		return Collapsed(s.Path, r.Start.Offset)
	}
	return Collapsed(s.Path, r.End.Offset)
}

// Contains reports whether the normalized range contains the offset,
// start inclusive and end exclusive.
func (s Property) Contains(offset int) bool {
	r := s.Range()
	return offset >= r.Start.Offset && offset < r.End.Offset
}

// Overlaps reports whether two selections on the same property share at
// least one rune.
func (s Property) Overlaps(other Property) bool {
	if !s.Path.Equal(other.Path) {
		return false
	}
	a, b := s.Range(), other.Range()
	return a.Start.Offset < b.End.Offset && b.Start.Offset < a.End.Offset
}

// String implements fmt.Stringer.
func (s Property) String() string {
	return fmt.Sprintf("property(%s, %d..%d)", s.Path, s.StartOffset, s.EndOffset)
}
