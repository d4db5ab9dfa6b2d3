package selection

import (
	"errors"
	"fmt"

	"github.com/archivist/substance/internal/document/node"
)

// Selection type names used in descriptors and serialized forms.
const (
	TypeNull      = "null"
	TypeProperty  = "property"
	TypeContainer = "container"
)

// ErrInvalidDescriptor indicates a descriptor whose shape cannot produce
// a selection.
var ErrInvalidDescriptor = errors.New("invalid selection descriptor")

// Descriptor is the loosely-typed form selections arrive in from
// fixtures, scripts and callers. FromDescriptor turns it into a value;
// semantic checks against a document happen separately.
type Descriptor struct {
	Type        string
	Path        node.Path
	StartPath   node.Path
	EndPath     node.Path
	StartOffset int
	EndOffset   int
	ContainerID string
}

// FromDescriptor builds a selection value from a descriptor, checking
// shape only: required paths present and offsets non-negative.
func FromDescriptor(d Descriptor) (Selection, error) {
	switch d.Type {
	case TypeNull, "":
		return Null{}, nil
	case TypeProperty:
		if len(d.Path) < 2 {
			return nil, fmt.Errorf("%w: property selection needs a property path, got %q", ErrInvalidDescriptor, d.Path)
		}
		if d.StartOffset < 0 || d.EndOffset < 0 {
			return nil, fmt.Errorf("%w: negative offset", ErrInvalidDescriptor)
		}
		return NewProperty(d.Path, d.StartOffset, d.EndOffset), nil
	case TypeContainer:
		if len(d.StartPath) < 2 || len(d.EndPath) < 2 {
			return nil, fmt.Errorf("%w: container selection needs start and end property paths", ErrInvalidDescriptor)
		}
		if d.StartOffset < 0 || d.EndOffset < 0 {
			return nil, fmt.Errorf("%w: negative offset", ErrInvalidDescriptor)
		}
		return NewContainer(d.ContainerID, d.StartPath, d.StartOffset, d.EndPath, d.EndOffset), nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidDescriptor, d.Type)
	}
}
