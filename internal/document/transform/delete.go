package transform

import (
	"fmt"

	"github.com/archivist/substance/internal/document"
	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/selection"
)

// Direction distinguishes backward from forward deletion. Range
// deletions always collapse to the range start; the direction matters
// to callers deciding where a collapsed selection should delete next.
type Direction int

const (
	DirectionLeft  Direction = -1
	DirectionRight Direction = 1
)

func (d Direction) String() string {
	if d == DirectionLeft {
		return "left"
	}
	return "right"
}

// DeleteSelection removes the content covered by sel. A collapsed
// selection is a no-op and returns unchanged. Property selections
// delete a slice of one text property; container selections delete
// across nodes, merging the surviving head of the first node with the
// surviving tail of the last. Annotations are clamped, shifted,
// re-anchored or removed per the rules in SpanAfterDelete. The
// resulting collapsed selection is set on the transaction and
// returned.
func DeleteSelection(tx *document.Transaction, sel selection.Selection, dir Direction) (selection.Selection, error) {
	if sel == nil || sel.IsNull() {
		return nil, fmt.Errorf("%w: delete without selection", document.ErrInvalidSelection)
	}
	if sel.IsCollapsed() {
		return sel, nil
	}
	switch s := sel.(type) {
	case selection.Property:
		r := s.Range()
		return deletePropertyRange(tx, s.Path, r.Start.Offset, r.End.Offset)
	case selection.Container:
		return deleteContainerRange(tx, s)
	default:
		return nil, fmt.Errorf("%w: cannot delete %s", document.ErrInvalidSelection, sel)
	}
}

func deletePropertyRange(tx *document.Transaction, p document.Path, from, to int) (selection.Selection, error) {
	if from < to {
		if err := tx.Update(p, document.Diff{Delete: &document.DeleteDiff{Start: from, End: to}}); err != nil {
			return nil, err
		}
		if err := DeletedText(tx, p, from, to); err != nil {
			return nil, err
		}
	}
	out := selection.Collapsed(p, from)
	if err := tx.SetSelection(out); err != nil {
		return nil, err
	}
	return out, nil
}

func deleteContainerRange(tx *document.Transaction, s selection.Container) (selection.Selection, error) {
	if s.ContainerID == "" {
		return nil, fmt.Errorf("%w: container selection without container id", document.ErrMissingContainer)
	}
	r, err := s.Range(tx)
	if err != nil {
		return nil, err
	}
	if r.Start.Path.Equal(r.End.Path) {
		return deletePropertyRange(tx, r.Start.Path, r.Start.Offset, r.End.Offset)
	}

	c, err := tx.Container(s.ContainerID)
	if err != nil {
		return nil, err
	}
	posStart, err := tx.Position(s.ContainerID, r.Start.Path.NodeID())
	if err != nil {
		return nil, err
	}
	posEnd, err := tx.Position(s.ContainerID, r.End.Path.NodeID())
	if err != nil {
		return nil, err
	}
	selected := c.NodeIDs()[posStart : posEnd+1]

	startPath, endPath := r.Start.Path, r.End.Path
	from, upto := r.Start.Offset, r.End.Offset
	n1Len := tx.TextLen(startPath)
	nkLen := tx.TextLen(endPath)
	containerPath := document.Path{s.ContainerID, node.PropNodes}

	if err := dropContainedAnnotations(tx, s.ContainerID, selected, posStart, posEnd, from, upto); err != nil {
		return nil, err
	}

	if from == 0 && upto == nkLen {
		return collapseFullSpan(tx, containerPath, selected, posStart)
	}

	// Tail of the first node, then head of the last. Annotations on each
	// follow the single-property deletion rules.
	if from < n1Len {
		if err := tx.Update(startPath, document.Diff{Delete: &document.DeleteDiff{Start: from, End: n1Len}}); err != nil {
			return nil, err
		}
		if err := DeletedText(tx, startPath, from, n1Len); err != nil {
			return nil, err
		}
	}
	if upto > 0 {
		if err := tx.Update(endPath, document.Diff{Delete: &document.DeleteDiff{Start: 0, End: upto}}); err != nil {
			return nil, err
		}
		if err := DeletedText(tx, endPath, 0, upto); err != nil {
			return nil, err
		}
	}

	// Interior nodes vanish. Container-annotation endpoints reaching
	// into them collapse onto the merge point.
	for _, id := range selected[1 : len(selected)-1] {
		if tp, err := tx.TextPath(id); err == nil {
			if err := clearAnnotations(tx, tp, startPath, from); err != nil {
				return nil, err
			}
		}
		if err := removeFromContainer(tx, containerPath, posStart+1); err != nil {
			return nil, err
		}
		if err := tx.Delete(id); err != nil {
			return nil, err
		}
	}

	// Merge the surviving tail of the last node into the first. The
	// tail's annotations keep their adjusted offsets and move with it.
	if tail := tx.Text(endPath); tail != "" {
		if err := tx.Update(startPath, document.Diff{Insert: &document.InsertDiff{Offset: from, Value: tail}}); err != nil {
			return nil, err
		}
	}
	if err := reanchor(tx, endPath, startPath, from); err != nil {
		return nil, err
	}
	if err := removeFromContainer(tx, containerPath, posStart+1); err != nil {
		return nil, err
	}
	if err := tx.Delete(endPath.NodeID()); err != nil {
		return nil, err
	}

	out := selection.Collapsed(startPath, from)
	if err := tx.SetSelection(out); err != nil {
		return nil, err
	}
	return out, nil
}

// collapseFullSpan handles a selection that fully covers every selected
// node: all of them are removed and replaced by one empty node of the
// schema's default text type.
func collapseFullSpan(tx *document.Transaction, containerPath document.Path, selected []string, posStart int) (selection.Selection, error) {
	fresh, err := tx.Create(tx.Schema().DefaultTextType(), nil)
	if err != nil {
		return nil, err
	}
	freshPath, err := tx.TextPath(fresh.ID())
	if err != nil {
		return nil, err
	}
	for _, id := range selected {
		if tp, err := tx.TextPath(id); err == nil {
			if err := clearAnnotations(tx, tp, freshPath, 0); err != nil {
				return nil, err
			}
		}
		if err := removeFromContainer(tx, containerPath, posStart); err != nil {
			return nil, err
		}
		if err := tx.Delete(id); err != nil {
			return nil, err
		}
	}
	if err := tx.Update(containerPath, document.Diff{Insert: &document.InsertDiff{Offset: posStart, Value: fresh.ID()}}); err != nil {
		return nil, err
	}
	out := selection.Collapsed(freshPath, 0)
	if err := tx.SetSelection(out); err != nil {
		return nil, err
	}
	return out, nil
}

// dropContainedAnnotations removes container annotations whose both
// endpoints lie inside the selected span. Annotations with a surviving
// endpoint outside the span are left for relocation.
func dropContainedAnnotations(tx *document.Transaction, containerID string, selected []string, posStart, posEnd, from, upto int) error {
	inSpan := func(p document.Path, off int) bool {
		pos, err := tx.Position(containerID, p.NodeID())
		if err != nil || pos < posStart || pos > posEnd {
			return false
		}
		switch pos {
		case posStart:
			return off >= from
		case posEnd:
			return off <= upto
		default:
			return true
		}
	}
	seen := make(map[string]bool)
	for _, id := range selected {
		tp, err := tx.TextPath(id)
		if err != nil {
			continue
		}
		for _, a := range tx.Annotations(tp) {
			if !a.IsContainerScoped() || seen[a.ID()] {
				continue
			}
			seen[a.ID()] = true
			if inSpan(a.StartPath(), a.Start()) && inSpan(a.EndPath(), a.End()) {
				if err := tx.Delete(a.ID()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// clearAnnotations removes property annotations anchored on p and
// relocates container-annotation endpoints anchored there to the given
// coordinate. Used when the node owning p is about to be deleted.
func clearAnnotations(tx *document.Transaction, p, relocateTo document.Path, relocateOff int) error {
	for _, a := range tx.Annotations(p) {
		if !a.IsContainerScoped() {
			if err := tx.Delete(a.ID()); err != nil {
				return err
			}
			continue
		}
		if a.StartPath().Equal(p) {
			if err := setEndpoint(tx, a.ID(), node.PropStartP, node.PropStart, relocateTo, relocateOff); err != nil {
				return err
			}
		}
		if a.EndPath().Equal(p) {
			if err := setEndpoint(tx, a.ID(), node.PropEndP, node.PropEnd, relocateTo, relocateOff); err != nil {
				return err
			}
		}
	}
	return nil
}

// reanchor moves annotations anchored on src onto dst, shifting offsets
// by base runes. Offsets were already adjusted for the head deletion,
// so the shift places them inside the merged text.
func reanchor(tx *document.Transaction, src, dst document.Path, base int) error {
	for _, a := range tx.Annotations(src) {
		if !a.IsContainerScoped() {
			if err := tx.Set(document.Path{a.ID(), node.PropPath}, dst.Clone()); err != nil {
				return err
			}
			if err := tx.Set(document.Path{a.ID(), node.PropStart}, a.Start()+base); err != nil {
				return err
			}
			if err := tx.Set(document.Path{a.ID(), node.PropEnd}, a.End()+base); err != nil {
				return err
			}
			continue
		}
		if a.StartPath().Equal(src) {
			if err := setEndpoint(tx, a.ID(), node.PropStartP, node.PropStart, dst, a.Start()+base); err != nil {
				return err
			}
		}
		if a.EndPath().Equal(src) {
			if err := setEndpoint(tx, a.ID(), node.PropEndP, node.PropEnd, dst, a.End()+base); err != nil {
				return err
			}
		}
	}
	return nil
}

func removeFromContainer(tx *document.Transaction, containerPath document.Path, pos int) error {
	return tx.Update(containerPath, document.Diff{Delete: &document.DeleteDiff{Start: pos, End: pos + 1}})
}

func setEndpoint(tx *document.Transaction, id, pathProp, offsetProp string, p document.Path, off int) error {
	if err := tx.Set(document.Path{id, pathProp}, p.Clone()); err != nil {
		return err
	}
	return tx.Set(document.Path{id, offsetProp}, off)
}
