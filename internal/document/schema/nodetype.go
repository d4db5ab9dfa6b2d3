package schema

import (
	"fmt"

	"github.com/archivist/substance/internal/document/node"
)

// PropKind identifies the value shape of a declared property.
type PropKind int

const (
	// KindString holds an opaque string.
	KindString PropKind = iota
	// KindText holds editable text addressed by rune offsets.
	KindText
	// KindNumber holds an integer.
	KindNumber
	// KindBoolean holds a bool.
	KindBoolean
	// KindID holds a reference to another node by id.
	KindID
	// KindIDList holds an ordered list of node references.
	KindIDList
	// KindStringList holds an ordered list of strings.
	KindStringList
	// KindPath holds a path addressing a node or property.
	KindPath
)

var kindNames = map[PropKind]string{
	KindString:     "string",
	KindText:       "text",
	KindNumber:     "number",
	KindBoolean:    "boolean",
	KindID:         "id",
	KindIDList:     "id-list",
	KindStringList: "string-list",
	KindPath:       "path",
}

// String returns the kind name used in error messages.
func (k PropKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// PropSpec declares a single property of a node type.
type PropSpec struct {
	Kind    PropKind
	Default any
}

// NodeType describes one node type: its name, declared properties and
// capabilities. Annotation types additionally report whether their anchor
// spans a single text property or two coordinates inside a container.
type NodeType struct {
	Name       string
	Properties map[string]PropSpec

	// TextProperty names the editable text property of text types,
	// conventionally "content".
	TextProperty string

	Text            bool
	Block           bool
	Container       bool
	Annotation      bool
	ContainerScoped bool
}

func (t *NodeType) validate() error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidType)
	}
	if t.Text {
		if t.TextProperty == "" {
			return fmt.Errorf("%w: %s: text type without text property", ErrInvalidType, t.Name)
		}
		spec, ok := t.Properties[t.TextProperty]
		if !ok || spec.Kind != KindText {
			return fmt.Errorf("%w: %s: text property %q not declared as text", ErrInvalidType, t.Name, t.TextProperty)
		}
	}
	if t.ContainerScoped && !t.Annotation {
		return fmt.Errorf("%w: %s: container scope requires annotation capability", ErrInvalidType, t.Name)
	}
	if t.Annotation {
		if t.ContainerScoped {
			for _, name := range []string{node.PropStartP, node.PropEndP, node.PropStart, node.PropEnd} {
				if _, ok := t.Properties[name]; !ok {
					return fmt.Errorf("%w: %s: missing anchor property %q", ErrInvalidType, t.Name, name)
				}
			}
		} else {
			for _, name := range []string{node.PropPath, node.PropStart, node.PropEnd} {
				if _, ok := t.Properties[name]; !ok {
					return fmt.Errorf("%w: %s: missing anchor property %q", ErrInvalidType, t.Name, name)
				}
			}
		}
	}
	if t.Container {
		spec, ok := t.Properties[node.PropNodes]
		if !ok || spec.Kind != KindIDList {
			return fmt.Errorf("%w: %s: container without %q id list", ErrInvalidType, t.Name, node.PropNodes)
		}
	}
	return nil
}

// checkValue normalizes a raw property value against a kind. JSON-decoded
// numbers arrive as float64 and are narrowed to int.
func checkValue(kind PropKind, value any) (any, bool) {
	switch kind {
	case KindString, KindText:
		v, ok := value.(string)
		return v, ok
	case KindNumber:
		switch v := value.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case float64:
			return int(v), true
		}
		return nil, false
	case KindBoolean:
		v, ok := value.(bool)
		return v, ok
	case KindID:
		v, ok := value.(string)
		return v, ok
	case KindIDList, KindStringList:
		switch v := value.(type) {
		case []string:
			out := make([]string, len(v))
			copy(out, v)
			return out, true
		case []any:
			out := make([]string, 0, len(v))
			for _, e := range v {
				s, ok := e.(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			}
			return out, true
		}
		return nil, false
	case KindPath:
		switch v := value.(type) {
		case node.Path:
			return v.Clone(), true
		case []string:
			return node.NewPath(v...), true
		case []any:
			out := make(node.Path, 0, len(v))
			for _, e := range v {
				s, ok := e.(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			}
			return out, true
		case string:
			return node.ParsePath(v), true
		}
		return nil, false
	}
	return nil, false
}
