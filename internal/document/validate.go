package document

import (
	"fmt"

	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/schema"
	"github.com/archivist/substance/internal/document/selection"
)

// selectionReader is the view validateSelection needs; both Document and
// Transaction satisfy it, so selections validate against committed or
// staged state alike.
type selectionReader interface {
	Node(id string) *node.Node
	Text(p Path) string
	Position(containerID, nodeID string) (int, error)
	Schema() *schema.Schema
}

// validateSelection checks that a selection resolves: nodes exist, the
// addressed properties are the schema text properties of their types, and
// offsets lie within the text. Container endpoints must belong to the
// named container.
func validateSelection(r selectionReader, sel selection.Selection) error {
	switch s := sel.(type) {
	case nil, selection.Null:
		return nil
	case selection.Property:
		if err := validateCoordinate(r, s.Path, s.StartOffset); err != nil {
			return err
		}
		return validateCoordinate(r, s.Path, s.EndOffset)
	case selection.Container:
		if s.ContainerID == "" {
			return ErrMissingContainer
		}
		for _, c := range []selection.Coordinate{s.Start(), s.End()} {
			if err := validateCoordinate(r, c.Path, c.Offset); err != nil {
				return err
			}
			if _, err := r.Position(s.ContainerID, c.Path.NodeID()); err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidSelection, err)
			}
		}
		return nil
	default:
		if sel.IsNull() {
			return nil
		}
		return fmt.Errorf("%w: unsupported selection %s", ErrInvalidSelection, sel)
	}
}

func validateCoordinate(r selectionReader, p Path, offset int) error {
	if len(p) < 2 {
		return fmt.Errorf("%w: %q is not a property path", ErrInvalidSelection, p)
	}
	n := r.Node(p.NodeID())
	if n == nil {
		return fmt.Errorf("%w: node %q not found", ErrInvalidSelection, p.NodeID())
	}
	prop, ok := r.Schema().TextProperty(n.Type())
	if !ok || prop != p.Property() {
		return fmt.Errorf("%w: %s is not a text property", ErrInvalidSelection, p)
	}
	if length := node.TextLen(r.Text(p)); offset < 0 || offset > length {
		return fmt.Errorf("%w: offset %d outside %s of length %d", ErrInvalidSelection, offset, p, length)
	}
	return nil
}
