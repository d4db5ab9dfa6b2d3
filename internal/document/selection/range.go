package selection

import (
	"fmt"

	"github.com/archivist/substance/internal/document/node"
)

// Coordinate is one endpoint of a selection: a text property path and a
// rune offset inside it.
type Coordinate struct {
	Path   node.Path
	Offset int
}

// Equal reports whether two coordinates address the same point.
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Path.Equal(other.Path) && c.Offset == other.Offset
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return fmt.Sprintf("%s@%d", c.Path, c.Offset)
}

// Range is a normalized selection: Start never comes after End.
type Range struct {
	Start Coordinate
	End   Coordinate
}

// IsCollapsed reports whether the range covers nothing.
func (r Range) IsCollapsed() bool {
	return r.Start.Equal(r.End)
}

// Resolver supplies container order for normalizing selections whose
// endpoints live on different nodes. Documents implement it.
type Resolver interface {
	// Position returns the index of a node inside a container.
	Position(containerID, nodeID string) (int, error)
}
