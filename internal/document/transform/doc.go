// Package transform implements the editing transformations that rewrite
// document content while keeping annotations and the selection
// consistent.
//
// The two entry points are InsertText and DeleteSelection. Both operate
// on an open transaction, never on the document directly, so a failed
// transformation leaves no partial state behind once the caller
// discards the transaction:
//
//	tx, _ := doc.Begin()
//	sel, err := transform.InsertText(tx, doc.Selection(), "hello")
//	if err != nil {
//		tx.Discard()
//		return err
//	}
//	_, err = tx.Commit()
//
// Offset arithmetic lives in pure helpers (SpanAfterInsert,
// SpanAfterDelete, CoordAfterDelete and friends) so that other
// transformations can reuse the exact shift and clamp semantics.
// InsertedText and DeletedText apply those helpers to every annotation
// anchored on a text property through the transaction.
//
// All offsets are rune offsets.
package transform
