// Package document implements a schema-governed node graph with
// transactional mutation and change notification. It is the core of the
// editing model: flat nodes addressed by id and path, a default container
// ordering the block-level nodes, annotations anchoring rune spans onto
// text properties, and indexes answering structural queries without
// scans.
//
// # Architecture
//
// The package composes the subpackages:
//
//	node      - nodes, paths, container and annotation views, rune splicing
//	schema    - node type registry and capability flags
//	pathstore - tree storage behind the indexes
//	nodeindex - derived lookup structures (type, annotations, custom)
//	selection - immutable selection values
//
// together with the event bus in internal/event. Reads go straight to
// the document; writes only happen inside a Transaction:
//
//	tx, err := doc.Begin()
//	if err != nil { ... }
//	n, err := tx.Create("paragraph", map[string]any{"content": "hello"})
//	if err != nil {
//		tx.Discard()
//		return err
//	}
//	change, err := tx.Commit()
//
// Commit replays the recorded ops onto the committed store, then
// publishes exactly one ChangeEvent on "document.change". The built-in
// indexes subscribe at event.PriorityIndex, so by the time observer
// handlers (or the committing caller) run, index queries reflect the
// change. Discard drops the stage without a trace.
//
// # Ops, undo and redo
//
// Transactions record four primitive ops: create, delete, set and
// update (incremental text or id-list diffs). Each op captures what it
// destroyed, so ChangeEvent.Invert produces the exact inverse and
// Document.ApplyChange replays it; history stacks are a thin layer over
// these two calls. Replayed commits carry ChangeEvent.Replay so a
// history observer can ignore its own echoes.
//
// # Concurrency
//
// A document and its open transaction belong to one goroutine at a time;
// nothing here locks. The bus is safe for concurrent subscription
// management, but Publish always runs handlers on the committing
// goroutine.
package document
