package document

import (
	"testing"

	"github.com/archivist/substance/internal/document/node"
)

func TestOpInvertCreateDelete(t *testing.T) {
	op := Op{
		Kind: OpCreate,
		Path: Path{"n1"},
		Node: map[string]any{node.PropID: "n1", node.PropType: "paragraph", node.PropContent: "hi"},
	}
	inv := op.Invert()
	if inv.Kind != OpDelete {
		t.Fatalf("expected delete, got %v", inv.Kind)
	}
	if inv.Node[node.PropID] != "n1" {
		t.Errorf("inverse must carry node data, got %v", inv.Node)
	}
	back := inv.Invert()
	if back.Kind != OpCreate || back.Node[node.PropContent] != "hi" {
		t.Errorf("double inversion lost data: %+v", back)
	}
}

func TestOpInvertSet(t *testing.T) {
	op := Op{
		Kind:     OpSet,
		Path:     Path{"n1", "level"},
		Value:    2,
		OldValue: 1,
	}
	inv := op.Invert()
	if inv.Kind != OpSet || inv.Value != 1 || inv.OldValue != 2 {
		t.Errorf("unexpected inverse %+v", inv)
	}
}

func TestOpInvertTextInsert(t *testing.T) {
	op := Op{
		Kind:     OpUpdate,
		Path:     Path{"n1", node.PropContent},
		Value:    "héllo",
		OldValue: "hllo",
		Diff:     &Diff{Insert: &InsertDiff{Offset: 1, Value: "é"}},
	}
	inv := op.Invert()
	if inv.Diff == nil || inv.Diff.Delete == nil {
		t.Fatalf("expected delete diff, got %+v", inv.Diff)
	}
	if inv.Diff.Delete.Start != 1 || inv.Diff.Delete.End != 2 {
		t.Errorf("expected rune span [1,2), got [%d,%d)", inv.Diff.Delete.Start, inv.Diff.Delete.End)
	}
	if inv.Removed != "é" {
		t.Errorf("expected removed %q, got %v", "é", inv.Removed)
	}
	if inv.Value != "hllo" || inv.OldValue != "héllo" {
		t.Errorf("expected values swapped, got %+v", inv)
	}
}

func TestOpInvertTextDelete(t *testing.T) {
	op := Op{
		Kind:     OpUpdate,
		Path:     Path{"n1", node.PropContent},
		Value:    "hllo",
		OldValue: "héllo",
		Diff:     &Diff{Delete: &DeleteDiff{Start: 1, End: 2}},
		Removed:  "é",
	}
	inv := op.Invert()
	if inv.Diff == nil || inv.Diff.Insert == nil {
		t.Fatalf("expected insert diff, got %+v", inv.Diff)
	}
	if inv.Diff.Insert.Offset != 1 || inv.Diff.Insert.Value != "é" {
		t.Errorf("unexpected insert %+v", inv.Diff.Insert)
	}
}

func TestOpInvertListInsert(t *testing.T) {
	op := Op{
		Kind:     OpUpdate,
		Path:     Path{"body", node.PropNodes},
		Value:    []string{"a", "b"},
		OldValue: []string{"a"},
		Diff:     &Diff{Insert: &InsertDiff{Offset: 1, Value: "b"}},
	}
	inv := op.Invert()
	if inv.Diff == nil || inv.Diff.Delete == nil {
		t.Fatalf("expected delete diff, got %+v", inv.Diff)
	}
	// List inversion is closed because list deletes are single-element.
	if inv.Diff.Delete.Start != 1 || inv.Diff.Delete.End != 2 {
		t.Errorf("expected [1,2), got [%d,%d)", inv.Diff.Delete.Start, inv.Diff.Delete.End)
	}
}

func TestDiffValidate(t *testing.T) {
	if err := (Diff{}).validate(); err == nil {
		t.Error("empty diff must be rejected")
	}
	both := Diff{Insert: &InsertDiff{}, Delete: &DeleteDiff{}}
	if err := both.validate(); err == nil {
		t.Error("insert+delete diff must be rejected")
	}
	if err := (Diff{Insert: &InsertDiff{Offset: 0, Value: "x"}}).validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
