package document

import (
	"errors"
	"testing"

	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/nodeindex"
	"github.com/archivist/substance/internal/document/schema"
	"github.com/archivist/substance/internal/document/selection"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := schema.New("article", "1.0", "paragraph")
	if err := s.AddNodes(schema.Builtins()...); err != nil {
		t.Fatalf("AddNodes failed: %v", err)
	}
	return s
}

func newTestDoc(t *testing.T, opts ...Option) *Document {
	t.Helper()
	d, err := New(testSchema(t), opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return d
}

// seed creates a heading and two paragraphs inside the default container
// and commits.
func seed(t *testing.T, d *Document) {
	t.Helper()
	tx, err := d.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	nodes := []struct {
		typ   string
		props map[string]any
	}{
		{"heading", map[string]any{node.PropID: "h1", node.PropContent: "Title", "level": 1}},
		{"paragraph", map[string]any{node.PropID: "p1", node.PropContent: "first paragraph"}},
		{"paragraph", map[string]any{node.PropID: "p2", node.PropContent: "second paragraph"}},
	}
	order := make([]string, 0, len(nodes))
	for _, spec := range nodes {
		if _, err := tx.Create(spec.typ, spec.props); err != nil {
			t.Fatalf("Create %s failed: %v", spec.typ, err)
		}
		order = append(order, spec.props[node.PropID].(string))
	}
	if err := tx.Set(Path{d.ContainerID(), node.PropNodes}, order); err != nil {
		t.Fatalf("Set container order failed: %v", err)
	}
	if _, err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}

func TestNewCreatesDefaultContainer(t *testing.T) {
	d := newTestDoc(t)
	c, err := d.Container(DefaultContainerID)
	if err != nil {
		t.Fatalf("expected default container, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty container, got %d children", c.Len())
	}
}

func TestNewWithContainerID(t *testing.T) {
	d := newTestDoc(t, WithContainerID("main"))
	if d.ContainerID() != "main" {
		t.Errorf("expected container id main, got %q", d.ContainerID())
	}
	if !d.Has("main") {
		t.Error("expected container node main to exist")
	}
}

func TestNewRequiresSchema(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	bad := schema.New("article", "1.0", "paragraph")
	if _, err := New(bad); !errors.Is(err, schema.ErrUnknownType) {
		t.Errorf("expected schema validation error, got %v", err)
	}
}

func TestNewRequiresContainerType(t *testing.T) {
	s := schema.New("article", "1.0", "paragraph")
	err := s.AddNodes(&schema.NodeType{
		Name:         "paragraph",
		Text:         true,
		TextProperty: node.PropContent,
		Properties: map[string]schema.PropSpec{
			node.PropContent: {Kind: schema.KindText, Default: ""},
		},
	})
	if err != nil {
		t.Fatalf("AddNodes failed: %v", err)
	}
	if _, err := New(s); !errors.Is(err, ErrMissingContainer) {
		t.Errorf("expected ErrMissingContainer, got %v", err)
	}
}

func TestGetResolvesPaths(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)

	if n, ok := d.Get(Path{"p1"}).(*node.Node); !ok || n.ID() != "p1" {
		t.Errorf("expected node p1, got %v", d.Get(Path{"p1"}))
	}
	if got := d.Text(Path{"p1", node.PropContent}); got != "first paragraph" {
		t.Errorf("unexpected text %q", got)
	}
	if got := d.Get(Path{"ghost", node.PropContent}); got != nil {
		t.Errorf("expected nil for missing node, got %v", got)
	}
	if got := d.Get(Path{"p1", "content", "deeper"}); got != nil {
		t.Errorf("expected nil for over-deep path, got %v", got)
	}
	if got := d.TextLen(Path{"h1", node.PropContent}); got != 5 {
		t.Errorf("expected 5 runes, got %d", got)
	}
}

func TestContainerErrors(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	if _, err := d.Container("ghost"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if _, err := d.Container("p1"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for non-container, got %v", err)
	}
}

func TestPosition(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	pos, err := d.Position(DefaultContainerID, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos != 1 {
		t.Errorf("expected position 1, got %d", pos)
	}
	if _, err := d.Position(DefaultContainerID, "ghost"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestTypeIndexMaintained(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	if got := len(d.NodesByType("paragraph")); got != 2 {
		t.Errorf("expected 2 paragraphs indexed, got %d", got)
	}
	if got := len(d.NodesByType("container")); got != 1 {
		t.Errorf("expected default container indexed, got %d", got)
	}
}

func TestAnnotationsQuery(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	tx, _ := d.Begin()
	if _, err := tx.Create("emphasis", map[string]any{
		node.PropID:    "a1",
		node.PropPath:  Path{"p1", node.PropContent},
		node.PropStart: 0,
		node.PropEnd:   5,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	annos := d.Annotations(Path{"p1", node.PropContent})
	if len(annos) != 1 || annos[0].ID() != "a1" {
		t.Fatalf("expected [a1], got %v", annos)
	}
	if got := d.Annotations(Path{"p2", node.PropContent}); len(got) != 0 {
		t.Errorf("expected no annotations on p2, got %d", len(got))
	}
}

func TestCreateSelectionProperty(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	sel, err := d.CreateSelection(selection.Descriptor{
		Type:        selection.TypeProperty,
		Path:        Path{"p1", node.PropContent},
		StartOffset: 0,
		EndOffset:   5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sel.IsPropertySelection() {
		t.Errorf("expected property selection, got %v", sel)
	}
}

func TestCreateSelectionValidation(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	tests := []struct {
		name string
		desc selection.Descriptor
	}{
		{"missing node", selection.Descriptor{
			Type: selection.TypeProperty, Path: Path{"ghost", node.PropContent}, EndOffset: 1,
		}},
		{"non-text property", selection.Descriptor{
			Type: selection.TypeProperty, Path: Path{"h1", "level"}, EndOffset: 1,
		}},
		{"offset out of bounds", selection.Descriptor{
			Type: selection.TypeProperty, Path: Path{"h1", node.PropContent}, EndOffset: 99,
		}},
		{"container endpoint outside container", selection.Descriptor{
			Type:      selection.TypeContainer,
			StartPath: Path{DefaultContainerID, node.PropContent},
			EndPath:   Path{"p1", node.PropContent},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.CreateSelection(tt.desc); !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("expected ErrInvalidSelection, got %v", err)
			}
		})
	}
}

func TestCreateSelectionDefaultsContainer(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	sel, err := d.CreateSelection(selection.Descriptor{
		Type:        selection.TypeContainer,
		StartPath:   Path{"h1", node.PropContent},
		StartOffset: 0,
		EndPath:     Path{"p2", node.PropContent},
		EndOffset:   3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs, ok := sel.(selection.Container)
	if !ok || cs.ContainerID != DefaultContainerID {
		t.Errorf("expected default container id, got %v", sel)
	}
}

func TestValidateCatchesDanglingReference(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	if err := d.Validate(); err != nil {
		t.Fatalf("fresh document must validate, got %v", err)
	}

	tx, _ := d.Begin()
	if err := tx.Delete("p2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	// p2 is gone but still listed in the container.
	if err := d.Validate(); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestValidateCatchesAnnotationOutOfBounds(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	tx, _ := d.Begin()
	tx.Create("emphasis", map[string]any{
		node.PropID:    "a1",
		node.PropPath:  Path{"h1", node.PropContent},
		node.PropStart: 0,
		node.PropEnd:   2,
	})
	tx.Commit()
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tx, _ = d.Begin()
	if err := tx.Set(Path{"a1", node.PropEnd}, 99); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	tx.Commit()
	if err := d.Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	clone := d.Clone()

	tx, _ := d.Begin()
	tx.Update(Path{"p1", node.PropContent}, Diff{Insert: &InsertDiff{Offset: 0, Value: "x"}})
	tx.Commit()

	if clone.Text(Path{"p1", node.PropContent}) != "first paragraph" {
		t.Error("clone must not see source mutations")
	}
	if got := len(clone.NodesByType("paragraph")); got != 2 {
		t.Errorf("expected clone indexes rebuilt, got %d paragraphs", got)
	}

	tx2, err := clone.Begin()
	if err != nil {
		t.Fatalf("clone Begin failed: %v", err)
	}
	tx2.Update(Path{"p1", node.PropContent}, Diff{Delete: &DeleteDiff{Start: 0, End: 5}})
	if _, err := tx2.Commit(); err != nil {
		t.Fatalf("clone Commit failed: %v", err)
	}
	if d.Text(Path{"p1", node.PropContent}) != "xfirst paragraph" {
		t.Error("source must not see clone mutations")
	}
}

func TestAddIndex(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	ix := nodeindex.New(nodeindex.WithProperty("level"))
	if err := d.AddIndex("levels", ix); err != nil {
		t.Fatalf("AddIndex failed: %v", err)
	}
	if _, ok := ix.Get(Path{"1"})["h1"]; !ok {
		t.Error("expected existing heading indexed on registration")
	}

	tx, _ := d.Begin()
	tx.Create("heading", map[string]any{node.PropID: "h2", node.PropContent: "Sub", "level": 2})
	tx.Commit()
	if _, ok := ix.Get(Path{"2"})["h2"]; !ok {
		t.Error("expected custom index maintained on commit")
	}

	if err := d.AddIndex("levels", nodeindex.New()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for duplicate name, got %v", err)
	}
}

func TestApplyChangeUndoRedo(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)
	contentPath := Path{"p1", node.PropContent}

	tx, _ := d.Begin()
	tx.Update(contentPath, Diff{Insert: &InsertDiff{Offset: 5, Value: " shiny"}})
	tx.SetSelection(selection.Collapsed(contentPath, 11))
	change, err := tx.Commit()
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if d.Text(contentPath) != "first shiny paragraph" {
		t.Fatalf("unexpected text %q", d.Text(contentPath))
	}

	undo, err := d.ApplyChange(change.Invert())
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if d.Text(contentPath) != "first paragraph" {
		t.Errorf("undo left %q", d.Text(contentPath))
	}
	if !undo.Replay {
		t.Error("expected replay flag on undo commit")
	}

	if _, err := d.ApplyChange(undo.Invert()); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if d.Text(contentPath) != "first shiny paragraph" {
		t.Errorf("redo left %q", d.Text(contentPath))
	}
	if !selection.Equal(d.Selection(), selection.Collapsed(contentPath, 11)) {
		t.Errorf("redo selection %v", d.Selection())
	}
}

func TestApplyChangeUndoDelete(t *testing.T) {
	d := newTestDoc(t)
	seed(t, d)

	tx, _ := d.Begin()
	if err := tx.Update(Path{DefaultContainerID, node.PropNodes}, Diff{Delete: &DeleteDiff{Start: 1, End: 2}}); err != nil {
		t.Fatalf("container update failed: %v", err)
	}
	if err := tx.Delete("p1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	change, err := tx.Commit()
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if d.Has("p1") {
		t.Fatal("expected p1 deleted")
	}

	if _, err := d.ApplyChange(change.Invert()); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if !d.Has("p1") {
		t.Fatal("expected p1 restored")
	}
	if d.Text(Path{"p1", node.PropContent}) != "first paragraph" {
		t.Errorf("restored content %q", d.Text(Path{"p1", node.PropContent}))
	}
	pos, err := d.Position(DefaultContainerID, "p1")
	if err != nil || pos != 1 {
		t.Errorf("expected p1 back at position 1, got %d (%v)", pos, err)
	}
	if got := len(d.NodesByType("paragraph")); got != 2 {
		t.Errorf("expected indexes restored, got %d paragraphs", got)
	}
}
