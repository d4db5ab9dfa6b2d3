package document

import (
	"fmt"

	"github.com/archivist/substance/internal/document/node"
)

// OpKind identifies the four primitive operations a transaction records.
type OpKind int

const (
	// OpCreate adds a node.
	OpCreate OpKind = iota
	// OpDelete removes a node.
	OpDelete
	// OpSet replaces a property value.
	OpSet
	// OpUpdate applies an incremental diff to a text or id-list property.
	OpUpdate
)

// String returns the operation name used in logs.
func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	case OpSet:
		return "set"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// InsertDiff inserts text at a rune offset, or a single id at a list
// index.
type InsertDiff struct {
	Offset int
	Value  string
}

// DeleteDiff removes the rune range [Start, End) from text. On id lists
// it removes one element, so End must equal Start+1.
type DeleteDiff struct {
	Start int
	End   int
}

// Diff is an incremental update; exactly one of Insert or Delete is set.
type Diff struct {
	Insert *InsertDiff
	Delete *DeleteDiff
}

func (d Diff) validate() error {
	switch {
	case d.Insert == nil && d.Delete == nil:
		return fmt.Errorf("%w: empty diff", ErrInvalidArgument)
	case d.Insert != nil && d.Delete != nil:
		return fmt.Errorf("%w: diff with both insert and delete", ErrInvalidArgument)
	case d.Insert != nil && d.Insert.Offset < 0:
		return fmt.Errorf("%w: negative diff offset", ErrInvalidArgument)
	case d.Delete != nil && (d.Delete.Start < 0 || d.Delete.End < d.Delete.Start):
		return fmt.Errorf("%w: bad diff range [%d,%d)", ErrInvalidArgument, d.Delete.Start, d.Delete.End)
	}
	return nil
}

// Op is one recorded primitive operation. Ops are pure data: they carry
// enough state to be replayed onto a store and inverted for undo.
//
// Field use by kind:
//
//	OpCreate: Path is the node id, Node the full node data.
//	OpDelete: Path is the node id, Node the data captured at deletion.
//	OpSet:    Path addresses the property; Value and OldValue hold the
//	          new and previous values.
//	OpUpdate: Path addresses the property; Diff holds the increment,
//	          Removed what a delete diff took out, and Value/OldValue the
//	          resulting and prior full values.
type Op struct {
	Kind     OpKind
	Path     Path
	Node     map[string]any
	Value    any
	OldValue any
	Diff     *Diff
	Removed  any
}

// Invert returns the operation that undoes this one. Inverting an op
// twice yields an op equivalent to the original.
func (op Op) Invert() Op {
	switch op.Kind {
	case OpCreate:
		return Op{Kind: OpDelete, Path: op.Path.Clone(), Node: op.Node}
	case OpDelete:
		return Op{Kind: OpCreate, Path: op.Path.Clone(), Node: op.Node}
	case OpSet:
		return Op{Kind: OpSet, Path: op.Path.Clone(), Value: op.OldValue, OldValue: op.Value}
	case OpUpdate:
		inv := Op{Kind: OpUpdate, Path: op.Path.Clone(), Value: op.OldValue, OldValue: op.Value}
		if op.Diff.Insert != nil {
			ins := op.Diff.Insert
			width := 1
			if _, isList := op.Value.([]string); !isList {
				width = node.TextLen(ins.Value)
			}
			inv.Diff = &Diff{Delete: &DeleteDiff{Start: ins.Offset, End: ins.Offset + width}}
			inv.Removed = ins.Value
		} else {
			del := op.Diff.Delete
			removed, _ := op.Removed.(string)
			inv.Diff = &Diff{Insert: &InsertDiff{Offset: del.Start, Value: removed}}
		}
		return inv
	default:
		return op
	}
}

// String returns a compact description for logs.
func (op Op) String() string {
	switch op.Kind {
	case OpCreate, OpDelete:
		return fmt.Sprintf("%s %s", op.Kind, op.Path)
	case OpSet:
		return fmt.Sprintf("set %s", op.Path)
	case OpUpdate:
		if op.Diff != nil && op.Diff.Insert != nil {
			return fmt.Sprintf("update %s insert@%d", op.Path, op.Diff.Insert.Offset)
		}
		if op.Diff != nil && op.Diff.Delete != nil {
			return fmt.Sprintf("update %s delete[%d,%d)", op.Path, op.Diff.Delete.Start, op.Diff.Delete.End)
		}
		return fmt.Sprintf("update %s", op.Path)
	default:
		return "op"
	}
}

// applyDiff produces the new value of a property after a diff. Text
// values splice by rune offsets; []string values insert or remove one
// element. A nil current value is treated as empty text, or as an empty
// list when the diff inserts into one.
func applyDiff(current any, diff Diff, removedOut *any) (any, error) {
	if err := diff.validate(); err != nil {
		return nil, err
	}
	switch v := current.(type) {
	case []string:
		return applyListDiff(v, diff, removedOut)
	case string:
		return applyTextDiff(v, diff, removedOut)
	case nil:
		return applyTextDiff("", diff, removedOut)
	default:
		return nil, fmt.Errorf("%w: diff on %T value", ErrInvalidArgument, current)
	}
}

func applyTextDiff(text string, diff Diff, removedOut *any) (any, error) {
	if diff.Insert != nil {
		return node.SpliceInsert(text, diff.Insert.Offset, diff.Insert.Value)
	}
	remaining, removed, err := node.SpliceDelete(text, diff.Delete.Start, diff.Delete.End)
	if err != nil {
		return nil, err
	}
	if removedOut != nil {
		*removedOut = removed
	}
	return remaining, nil
}

func applyListDiff(list []string, diff Diff, removedOut *any) (any, error) {
	if diff.Insert != nil {
		pos := diff.Insert.Offset
		if pos > len(list) {
			return nil, fmt.Errorf("%w: list index %d exceeds length %d", node.ErrOffsetOutOfRange, pos, len(list))
		}
		out := make([]string, 0, len(list)+1)
		out = append(out, list[:pos]...)
		out = append(out, diff.Insert.Value)
		out = append(out, list[pos:]...)
		return out, nil
	}
	if diff.Delete.End != diff.Delete.Start+1 {
		return nil, fmt.Errorf("%w: list diffs remove one element at a time", ErrInvalidArgument)
	}
	pos := diff.Delete.Start
	if pos >= len(list) {
		return nil, fmt.Errorf("%w: list index %d exceeds length %d", node.ErrOffsetOutOfRange, pos, len(list))
	}
	if removedOut != nil {
		*removedOut = list[pos]
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:pos]...)
	out = append(out, list[pos+1:]...)
	return out, nil
}
