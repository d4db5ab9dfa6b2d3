package document

import (
	"github.com/google/uuid"

	"github.com/archivist/substance/internal/document/selection"
	"github.com/archivist/substance/internal/event"
)

// TopicChange is the bus topic committed changes are published on.
const TopicChange event.Topic = "document.change"

// State captures selection context on one side of a change.
type State struct {
	Selection selection.Selection
	Surface   string
}

// ChangeEvent describes one committed transaction. It is published on
// TopicChange after the document store reflects every op, and it carries
// enough information to be inverted and replayed for undo and redo.
type ChangeEvent struct {
	// ID uniquely identifies this change.
	ID string

	// Seq is the document-local commit counter.
	Seq uint64

	// Before and After capture the selection around the change.
	Before State
	After  State

	// Ops are the primitive operations in application order.
	Ops []Op

	// Replay marks changes produced by ApplyChange rather than a fresh
	// transaction, letting history observers skip their own echoes.
	Replay bool
}

// Invert returns a change that undoes this one: ops inverted in reverse
// order, with the before and after states swapped. The result carries the
// Replay flag so observers do not record it as new work.
func (c *ChangeEvent) Invert() *ChangeEvent {
	ops := make([]Op, len(c.Ops))
	for i, op := range c.Ops {
		ops[len(c.Ops)-1-i] = op.Invert()
	}
	return &ChangeEvent{
		ID:     uuid.NewString(),
		Before: c.After,
		After:  c.Before,
		Ops:    ops,
		Replay: true,
	}
}
