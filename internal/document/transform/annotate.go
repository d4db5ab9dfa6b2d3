package transform

import (
	"github.com/archivist/substance/internal/document"
	"github.com/archivist/substance/internal/document/node"
)

// InsertedText adjusts every annotation anchored on the text property p
// for an insertion of length runes at offset pos. Property-scoped
// annotations follow SpanAfterInsert; endpoints of container-scoped
// annotations shift independently.
func InsertedText(tx *document.Transaction, p document.Path, pos, length int) error {
	if length == 0 {
		return nil
	}
	for _, a := range tx.Annotations(p) {
		if a.IsContainerScoped() && !(a.StartPath().Equal(p) && a.EndPath().Equal(p)) {
			if err := shiftEndpoints(tx, a, p, pos, length); err != nil {
				return err
			}
			continue
		}
		before := Span{a.Start(), a.End()}
		after := SpanAfterInsert(before, pos, length)
		if err := setSpan(tx, a.ID(), before, after); err != nil {
			return err
		}
	}
	return nil
}

// DeletedText adjusts every annotation anchored on the text property p
// for the deletion of the rune range [from, to). Property-scoped
// annotations follow SpanAfterDelete and are removed when the deletion
// consumes them. Container-scoped annotations are treated the same way
// when both endpoints anchor on p, and endpoint by endpoint otherwise.
func DeletedText(tx *document.Transaction, p document.Path, from, to int) error {
	if from >= to {
		return nil
	}
	for _, a := range tx.Annotations(p) {
		if a.IsContainerScoped() && !(a.StartPath().Equal(p) && a.EndPath().Equal(p)) {
			if err := relocateEndpoints(tx, a, p, from, to); err != nil {
				return err
			}
			continue
		}
		before := Span{a.Start(), a.End()}
		after, consumed := SpanAfterDelete(before, from, to)
		if consumed {
			if err := tx.Delete(a.ID()); err != nil {
				return err
			}
			continue
		}
		if err := setSpan(tx, a.ID(), before, after); err != nil {
			return err
		}
	}
	return nil
}

func setSpan(tx *document.Transaction, id string, before, after Span) error {
	if after.Start != before.Start {
		if err := tx.Set(document.Path{id, node.PropStart}, after.Start); err != nil {
			return err
		}
	}
	if after.End != before.End {
		if err := tx.Set(document.Path{id, node.PropEnd}, after.End); err != nil {
			return err
		}
	}
	return nil
}

func shiftEndpoints(tx *document.Transaction, a node.Annotation, p document.Path, pos, length int) error {
	if a.StartPath().Equal(p) {
		if off := StartAfterInsert(a.Start(), pos, length); off != a.Start() {
			if err := tx.Set(document.Path{a.ID(), node.PropStart}, off); err != nil {
				return err
			}
		}
	}
	if a.EndPath().Equal(p) {
		if off := EndAfterInsert(a.End(), pos, length); off != a.End() {
			if err := tx.Set(document.Path{a.ID(), node.PropEnd}, off); err != nil {
				return err
			}
		}
	}
	return nil
}

func relocateEndpoints(tx *document.Transaction, a node.Annotation, p document.Path, from, to int) error {
	if a.StartPath().Equal(p) {
		if off := CoordAfterDelete(a.Start(), from, to); off != a.Start() {
			if err := tx.Set(document.Path{a.ID(), node.PropStart}, off); err != nil {
				return err
			}
		}
	}
	if a.EndPath().Equal(p) {
		if off := CoordAfterDelete(a.End(), from, to); off != a.End() {
			if err := tx.Set(document.Path{a.ID(), node.PropEnd}, off); err != nil {
				return err
			}
		}
	}
	return nil
}
