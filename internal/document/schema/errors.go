package schema

import "errors"

var (
	// ErrUnknownType indicates a node type name not registered in the schema.
	ErrUnknownType = errors.New("unknown node type")

	// ErrDuplicateType indicates a node type registered twice.
	ErrDuplicateType = errors.New("duplicate node type")

	// ErrInvalidType indicates a node type descriptor that cannot be
	// registered, such as one without a name or with conflicting
	// capabilities.
	ErrInvalidType = errors.New("invalid node type")

	// ErrInvalidProperty indicates a property value that does not match its
	// declared kind, or a property the type does not declare.
	ErrInvalidProperty = errors.New("invalid property")
)
