package document

import "errors"

var (
	// ErrInvalidArgument indicates a malformed argument such as an empty
	// path, a nil value where one is required, or a write to an immutable
	// property.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidSelection indicates a selection that does not resolve
	// against the document: wrong shape, unknown node, non-text property
	// or an offset outside the text.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrMissingContainer indicates an operation that needs a container id
	// but received none.
	ErrMissingContainer = errors.New("missing container")

	// ErrNodeExists indicates a create with an id already in use.
	ErrNodeExists = errors.New("node exists")

	// ErrNodeNotFound indicates an id or path that resolves to no node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrTransactionActive indicates a Begin while another transaction is
	// open; transactions do not nest.
	ErrTransactionActive = errors.New("transaction active")

	// ErrTransactionClosed indicates use of a transaction after Commit or
	// Discard.
	ErrTransactionClosed = errors.New("transaction closed")
)
