package transform

import (
	"testing"

	"github.com/archivist/substance/internal/document"
	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/schema"
)

type textNode struct {
	typ     string
	id      string
	content string
}

// buildDoc creates a document holding the given text nodes in container
// order.
func buildDoc(t *testing.T, nodes ...textNode) *document.Document {
	t.Helper()
	s := schema.New("article", "1.0", "paragraph")
	if err := s.AddNodes(schema.Builtins()...); err != nil {
		t.Fatalf("AddNodes failed: %v", err)
	}
	d, err := document.New(s)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tx, err := d.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	order := make([]string, 0, len(nodes))
	for _, n := range nodes {
		props := map[string]any{node.PropID: n.id, node.PropContent: n.content}
		if _, err := tx.Create(n.typ, props); err != nil {
			t.Fatalf("Create %s failed: %v", n.id, err)
		}
		order = append(order, n.id)
	}
	if err := tx.Set(document.Path{d.ContainerID(), node.PropNodes}, order); err != nil {
		t.Fatalf("Set order failed: %v", err)
	}
	if _, err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	return d
}

func addEmphasis(t *testing.T, d *document.Document, id string, p document.Path, start, end int) {
	t.Helper()
	tx, _ := d.Begin()
	_, err := tx.Create("emphasis", map[string]any{
		node.PropID:    id,
		node.PropPath:  p,
		node.PropStart: start,
		node.PropEnd:   end,
	})
	if err != nil {
		t.Fatalf("Create emphasis failed: %v", err)
	}
	if _, err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}

func addComment(t *testing.T, d *document.Document, id string, startP document.Path, start int, endP document.Path, end int) {
	t.Helper()
	tx, _ := d.Begin()
	_, err := tx.Create("comment", map[string]any{
		node.PropID:     id,
		node.PropScope:  d.ContainerID(),
		node.PropStartP: startP,
		node.PropStart:  start,
		node.PropEndP:   endP,
		node.PropEnd:    end,
	})
	if err != nil {
		t.Fatalf("Create comment failed: %v", err)
	}
	if _, err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}

// anchorOf returns a committed annotation's anchor state.
func anchorOf(t *testing.T, d *document.Document, id string) (startP document.Path, start int, endP document.Path, end int) {
	t.Helper()
	n := d.Node(id)
	if n == nil {
		t.Fatalf("annotation %s missing", id)
	}
	a := node.AsAnnotation(n)
	return a.StartPath(), a.Start(), a.EndPath(), a.End()
}

// apply runs fn inside a transaction and commits.
func apply(t *testing.T, d *document.Document, fn func(tx *document.Transaction) error) {
	t.Helper()
	tx, err := d.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := fn(tx); err != nil {
		tx.Discard()
		t.Fatalf("transform failed: %v", err)
	}
	if _, err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}
