package transform

import (
	"fmt"

	"github.com/archivist/substance/internal/document"
	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/selection"
)

// InsertText splices text into the text property addressed by sel. A
// non-collapsed selection is deleted first, so typing over a range
// replaces it. Annotations on the target property shift per
// InsertedText, and the transaction selection collapses after the
// inserted text.
func InsertText(tx *document.Transaction, sel selection.Selection, text string) (selection.Selection, error) {
	if sel == nil || sel.IsNull() {
		return nil, fmt.Errorf("%w: insert without selection", document.ErrInvalidArgument)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: insert of empty text", document.ErrInvalidArgument)
	}
	if !sel.IsCollapsed() {
		collapsed, err := DeleteSelection(tx, sel, DirectionRight)
		if err != nil {
			return nil, err
		}
		sel = collapsed
	}

	var p document.Path
	var offset int
	switch s := sel.(type) {
	case selection.Property:
		p, offset = s.Path, s.StartOffset
	case selection.Container:
		p, offset = s.StartPath, s.StartOffset
	default:
		return nil, fmt.Errorf("%w: cannot insert into %s", document.ErrInvalidSelection, sel)
	}

	if tx.Get(p) == nil {
		if err := tx.Set(p, ""); err != nil {
			return nil, err
		}
	}
	if err := tx.Update(p, document.Diff{Insert: &document.InsertDiff{Offset: offset, Value: text}}); err != nil {
		return nil, err
	}
	length := node.TextLen(text)
	if err := InsertedText(tx, p, offset, length); err != nil {
		return nil, err
	}

	out := selection.Collapsed(p, offset+length)
	if err := tx.SetSelection(out); err != nil {
		return nil, err
	}
	return out, nil
}
