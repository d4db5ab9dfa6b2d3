package schema

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/archivist/substance/internal/document/node"
)

// Schema is a registry of node types for one document class. It is
// immutable after setup: register all types with AddNodes before handing
// the schema to a document.
type Schema struct {
	name            string
	version         string
	defaultTextType string
	types           map[string]*NodeType
}

// New creates a schema. The default text type names the type synthesized
// when edits leave a container without content; it must be registered via
// AddNodes before the schema is used.
func New(name, version, defaultTextType string) *Schema {
	return &Schema{
		name:            name,
		version:         version,
		defaultTextType: defaultTextType,
		types:           make(map[string]*NodeType),
	}
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Version returns the schema version string.
func (s *Schema) Version() string { return s.version }

// DefaultTextType returns the type name used for synthesized empty text
// nodes.
func (s *Schema) DefaultTextType() string { return s.defaultTextType }

// AddNodes registers node types. Registration fails with ErrDuplicateType
// when a name is already taken and with ErrInvalidType when a descriptor
// is malformed; on failure no type from the call is registered.
func (s *Schema) AddNodes(types ...*NodeType) error {
	seen := make(map[string]bool, len(types))
	for _, t := range types {
		if err := t.validate(); err != nil {
			return err
		}
		if seen[t.Name] || s.types[t.Name] != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
		}
		seen[t.Name] = true
	}
	for _, t := range types {
		s.types[t.Name] = t
	}
	return nil
}

// Validate checks that the schema is usable, in particular that the
// default text type is registered and carries the text capability.
func (s *Schema) Validate() error {
	if s.defaultTextType == "" {
		return fmt.Errorf("%w: schema %s has no default text type", ErrInvalidType, s.name)
	}
	t, ok := s.types[s.defaultTextType]
	if !ok {
		return fmt.Errorf("%w: default text type %s", ErrUnknownType, s.defaultTextType)
	}
	if !t.Text {
		return fmt.Errorf("%w: default text type %s lacks text capability", ErrInvalidType, s.defaultTextType)
	}
	return nil
}

// Type returns the descriptor for a type name.
func (s *Schema) Type(name string) (*NodeType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Has reports whether a type name is registered.
func (s *Schema) Has(name string) bool {
	_, ok := s.types[name]
	return ok
}

// Types returns all registered type names, sorted.
func (s *Schema) Types() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsText reports whether the named type carries the text capability.
func (s *Schema) IsText(name string) bool {
	t, ok := s.types[name]
	return ok && t.Text
}

// IsContainer reports whether the named type carries the container
// capability.
func (s *Schema) IsContainer(name string) bool {
	t, ok := s.types[name]
	return ok && t.Container
}

// IsAnnotation reports whether the named type carries the annotation
// capability.
func (s *Schema) IsAnnotation(name string) bool {
	t, ok := s.types[name]
	return ok && t.Annotation
}

// IsContainerAnnotation reports whether the named type is an annotation
// anchored across a container rather than on a single property.
func (s *Schema) IsContainerAnnotation(name string) bool {
	t, ok := s.types[name]
	return ok && t.Annotation && t.ContainerScoped
}

// TextProperty returns the editable text property of the named type.
func (s *Schema) TextProperty(name string) (string, bool) {
	t, ok := s.types[name]
	if !ok || !t.Text {
		return "", false
	}
	return t.TextProperty, true
}

// CheckProperty validates a single property value against the named
// type's declaration and returns its normalized form. A nil value is
// valid and means unset.
func (s *Schema) CheckProperty(typ, name string, value any) (any, error) {
	t, ok := s.types[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}
	spec, declared := t.Properties[name]
	if !declared {
		return nil, fmt.Errorf("%w: %s has no property %q", ErrInvalidProperty, typ, name)
	}
	if value == nil {
		return nil, nil
	}
	normalized, ok := checkValue(spec.Kind, value)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s expects %s, got %T", ErrInvalidProperty, typ, name, spec.Kind, value)
	}
	return normalized, nil
}

// NewNode builds a node of the named type. Declared properties missing
// from props receive their defaults; given values are checked against the
// declared kinds. Properties the type does not declare are rejected. When
// props carries no id, a fresh one is generated.
func (s *Schema) NewNode(typ string, props map[string]any) (*node.Node, error) {
	t, ok := s.types[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}

	id, _ := props[node.PropID].(string)
	if id == "" {
		id = uuid.NewString()
	}

	resolved := make(map[string]any, len(t.Properties))
	for name, spec := range t.Properties {
		if spec.Default != nil {
			resolved[name] = spec.Default
		}
	}
	for name, value := range props {
		if name == node.PropID || name == node.PropType {
			continue
		}
		spec, declared := t.Properties[name]
		if !declared {
			return nil, fmt.Errorf("%w: %s has no property %q", ErrInvalidProperty, typ, name)
		}
		if value == nil {
			delete(resolved, name)
			continue
		}
		normalized, ok := checkValue(spec.Kind, value)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s expects %s, got %T", ErrInvalidProperty, typ, name, spec.Kind, value)
		}
		resolved[name] = normalized
	}
	return node.New(id, typ, resolved), nil
}
