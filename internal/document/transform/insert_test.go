package transform

import (
	"errors"
	"testing"

	"github.com/archivist/substance/internal/document"
	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/selection"
)

func TestInsertTextCollapsed(t *testing.T) {
	d := buildDoc(t, textNode{"paragraph", "p1", "first paragraph"})
	p := document.Path{"p1", node.PropContent}
	addEmphasis(t, d, "head", p, 0, 5)
	addEmphasis(t, d, "tail", p, 6, 15)

	var out selection.Selection
	apply(t, d, func(tx *document.Transaction) error {
		var err error
		out, err = InsertText(tx, selection.Collapsed(p, 5), " tiny")
		return err
	})

	if got := d.Text(p); got != "first tiny paragraph" {
		t.Errorf("expected %q, got %q", "first tiny paragraph", got)
	}
	if !selection.Equal(out, selection.Collapsed(p, 10)) {
		t.Errorf("expected collapsed at 10, got %v", out)
	}
	if !selection.Equal(d.Selection(), out) {
		t.Errorf("document selection %v", d.Selection())
	}
	_, start, _, end := anchorOf(t, d, "head")
	if start != 0 || end != 5 {
		t.Errorf("annotation ending at insertion point must stay, got [%d,%d)", start, end)
	}
	_, start, _, end = anchorOf(t, d, "tail")
	if start != 11 || end != 20 {
		t.Errorf("annotation after insertion point must shift, got [%d,%d)", start, end)
	}
}

func TestInsertTextGrowsSpanningAnnotation(t *testing.T) {
	d := buildDoc(t, textNode{"paragraph", "p1", "abcdefghij"})
	p := document.Path{"p1", node.PropContent}
	addEmphasis(t, d, "a1", p, 3, 9)

	apply(t, d, func(tx *document.Transaction) error {
		_, err := InsertText(tx, selection.Collapsed(p, 5), "xy")
		return err
	})
	_, start, _, end := anchorOf(t, d, "a1")
	if start != 3 || end != 11 {
		t.Errorf("expected [3,11), got [%d,%d)", start, end)
	}
}

func TestInsertTextRuneOffsets(t *testing.T) {
	d := buildDoc(t, textNode{"paragraph", "p1", "héllo"})
	p := document.Path{"p1", node.PropContent}

	var out selection.Selection
	apply(t, d, func(tx *document.Transaction) error {
		var err error
		out, err = InsertText(tx, selection.Collapsed(p, 2), "ö")
		return err
	})
	if got := d.Text(p); got != "héöllo" {
		t.Errorf("expected %q, got %q", "héöllo", got)
	}
	if !selection.Equal(out, selection.Collapsed(p, 3)) {
		t.Errorf("expected collapsed at rune 3, got %v", out)
	}
}

func TestInsertTextInitializesProperty(t *testing.T) {
	d := buildDoc(t, textNode{"paragraph", "p1", "x"})
	p := document.Path{"p1", node.PropContent}

	apply(t, d, func(tx *document.Transaction) error {
		if err := tx.Set(p, nil); err != nil {
			return err
		}
		_, err := InsertText(tx, selection.Collapsed(p, 0), "hi")
		return err
	})
	if got := d.Text(p); got != "hi" {
		t.Errorf("expected %q, got %q", "hi", got)
	}
}

func TestInsertTextReplacesPropertySelection(t *testing.T) {
	d := buildDoc(t, textNode{"paragraph", "p1", "first paragraph"})
	p := document.Path{"p1", node.PropContent}
	addEmphasis(t, d, "a1", p, 6, 15)

	var out selection.Selection
	apply(t, d, func(tx *document.Transaction) error {
		var err error
		out, err = InsertText(tx, selection.NewProperty(p, 0, 5), "best")
		return err
	})
	if got := d.Text(p); got != "best paragraph" {
		t.Errorf("expected %q, got %q", "best paragraph", got)
	}
	if !selection.Equal(out, selection.Collapsed(p, 4)) {
		t.Errorf("expected collapsed at 4, got %v", out)
	}
	_, start, _, end := anchorOf(t, d, "a1")
	if start != 5 || end != 14 {
		t.Errorf("expected [5,14), got [%d,%d)", start, end)
	}
}

func TestInsertTextReplacesContainerSelection(t *testing.T) {
	d := buildDoc(t,
		textNode{"paragraph", "p1", "first paragraph"},
		textNode{"paragraph", "p2", "second paragraph"},
	)
	p1 := document.Path{"p1", node.PropContent}
	sel := selection.NewContainer(d.ContainerID(), p1, 5, document.Path{"p2", node.PropContent}, 6)

	var out selection.Selection
	apply(t, d, func(tx *document.Transaction) error {
		var err error
		out, err = InsertText(tx, sel, "-")
		return err
	})
	if got := d.Text(p1); got != "first- paragraph" {
		t.Errorf("expected %q, got %q", "first- paragraph", got)
	}
	if d.Has("p2") {
		t.Error("expected second node merged away")
	}
	if !selection.Equal(out, selection.Collapsed(p1, 6)) {
		t.Errorf("expected collapsed at 6, got %v", out)
	}
}

func TestInsertTextIntoCollapsedContainerSelection(t *testing.T) {
	d := buildDoc(t, textNode{"paragraph", "p1", "abc"})
	p := document.Path{"p1", node.PropContent}
	sel := selection.NewContainer(d.ContainerID(), p, 1, p, 1)

	apply(t, d, func(tx *document.Transaction) error {
		_, err := InsertText(tx, sel, "Z")
		return err
	})
	if got := d.Text(p); got != "aZbc" {
		t.Errorf("expected %q, got %q", "aZbc", got)
	}
}

func TestInsertTextArguments(t *testing.T) {
	d := buildDoc(t, textNode{"paragraph", "p1", "abc"})
	p := document.Path{"p1", node.PropContent}
	tx, _ := d.Begin()
	defer tx.Discard()

	if _, err := InsertText(tx, nil, "x"); !errors.Is(err, document.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for nil selection, got %v", err)
	}
	if _, err := InsertText(tx, selection.Null{}, "x"); !errors.Is(err, document.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for null selection, got %v", err)
	}
	if _, err := InsertText(tx, selection.Collapsed(p, 0), ""); !errors.Is(err, document.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty text, got %v", err)
	}
}
