package selection

import (
	"fmt"

	"github.com/archivist/substance/internal/document/node"
)

// Container selects a span across the nodes of one container, from a
// coordinate on one text property to a coordinate on another. Endpoints
// may be given in either document order; Range normalizes them against
// the container.
type Container struct {
	ContainerID string
	StartPath   node.Path
	StartOffset int
	EndPath     node.Path
	EndOffset   int
}

// NewContainer builds a container selection.
func NewContainer(containerID string, startPath node.Path, startOffset int, endPath node.Path, endOffset int) Container {
	return Container{
		ContainerID: containerID,
		StartPath:   startPath.Clone(),
		StartOffset: startOffset,
		EndPath:     endPath.Clone(),
		EndOffset:   endOffset,
	}
}

// IsNull reports false.
func (Container) IsNull() bool { return false }

// IsCollapsed reports whether both endpoints address the same point.
func (s Container) IsCollapsed() bool {
	return s.StartPath.Equal(s.EndPath) && s.StartOffset == s.EndOffset
}

// IsPropertySelection reports false.
func (Container) IsPropertySelection() bool { return false }

// IsContainerSelection reports true.
func (Container) IsContainerSelection() bool { return true }

// IsTableSelection reports false.
func (Container) IsTableSelection() bool { return false }

// Start returns the start coordinate as given, without normalization.
func (s Container) Start() Coordinate {
	return Coordinate{Path: s.StartPath, Offset: s.StartOffset}
}

// End returns the end coordinate as given, without normalization.
func (s Container) End() Coordinate {
	return Coordinate{Path: s.EndPath, Offset: s.EndOffset}
}

// Range returns the normalized form, ordering endpoints by container
// position and then by offset.
func (s Container) Range(res Resolver) (Range, error) {
	start, end := s.Start(), s.End()
	if s.StartPath.Equal(s.EndPath) {
		if s.StartOffset > s.EndOffset {
			start, end = end, start
		}
		return Range{Start: start, End: end}, nil
	}
	posStart, err := res.Position(s.ContainerID, s.StartPath.NodeID())
	if err != nil {
		return Range{}, err
	}
	posEnd, err := res.Position(s.ContainerID, s.EndPath.NodeID())
	if err != nil {
		return Range{}, err
	}
	if posStart > posEnd {
		start, end = end, start
	}
	return Range{Start: start, End: end}, nil
}

// Collapse returns a collapsed container selection at the start or end
// coordinate as given.
func (s Container) Collapse(toStart bool) Container {
	c := s.End()
	if toStart {
		c = s.Start()
	}
	return NewContainer(s.ContainerID, c.Path, c.Offset, c.Path, c.Offset)
}

// String implements fmt.Stringer.
func (s Container) String() string {
	return fmt.Sprintf("container(%s, %s@%d..%s@%d)",
		s.ContainerID, s.StartPath, s.StartOffset, s.EndPath, s.EndOffset)
}
