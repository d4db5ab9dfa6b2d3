package node

import "strings"

// Path addresses a node or a node property within a document. The first
// segment is a node id; subsequent segments descend into properties. A
// two-segment path like ["p1", "content"] addresses the "content" property
// of node "p1".
//
// Paths are value-like: methods never mutate the receiver. Callers that
// store a path they do not own should Clone it first.
type Path []string

// NewPath builds a path from individual segments.
func NewPath(segments ...string) Path {
	p := make(Path, len(segments))
	copy(p, segments)
	return p
}

// ParsePath parses a dotted path expression such as "p1.content".
// An empty string yields a nil path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// String renders the path in dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Equal reports whether two paths have identical segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// NodeID returns the leading segment, the id of the addressed node.
// It returns "" for an empty path.
func (p Path) NodeID() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Property returns the trailing segment when the path addresses a
// property, or "" when the path addresses a bare node.
func (p Path) Property() string {
	if len(p) < 2 {
		return ""
	}
	return p[len(p)-1]
}
