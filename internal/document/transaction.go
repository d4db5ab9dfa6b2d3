package document

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/schema"
	"github.com/archivist/substance/internal/document/selection"
)

// Transaction stages mutations against a copy-on-write view of the
// document. Reads see the staged state; the committed document and its
// indexes stay untouched until Commit, and Discard drops everything.
//
// Operations fail without poisoning the transaction: a rejected op
// records nothing, so the caller may recover and continue.
type Transaction struct {
	doc     *Document
	stage   map[string]*node.Node
	dirty   map[string]bool
	ops     []Op
	before  selection.Selection
	after   selection.Selection
	surface string
	replay  bool
	closed  bool
}

func newTransaction(d *Document) *Transaction {
	stage := make(map[string]*node.Node, len(d.nodes))
	for id, n := range d.nodes {
		stage[id] = n
	}
	return &Transaction{
		doc:    d,
		stage:  stage,
		dirty:  make(map[string]bool),
		before: d.sel,
	}
}

// Document returns the owning document.
func (tx *Transaction) Document() *Document { return tx.doc }

// Schema returns the document schema.
func (tx *Transaction) Schema() *schema.Schema { return tx.doc.schema }

// ContainerID returns the id of the default container.
func (tx *Transaction) ContainerID() string { return tx.doc.containerID }

// Has reports whether a node id exists in the staged state.
func (tx *Transaction) Has(id string) bool {
	_, ok := tx.stage[id]
	return ok
}

// Node returns the staged node with the given id, or nil. The result
// must be treated as read-only; mutations go through Set and Update.
func (tx *Transaction) Node(id string) *node.Node {
	return tx.stage[id]
}

// Get resolves a path against the staged state: one segment yields the
// node, two the property value.
func (tx *Transaction) Get(p Path) any {
	return resolvePath(tx.stage, p)
}

// Text returns the staged text at a property path, or "".
func (tx *Transaction) Text(p Path) string {
	s, _ := tx.Get(p).(string)
	return s
}

// TextLen returns the rune length of the staged text at a property path.
func (tx *Transaction) TextLen(p Path) int {
	return node.TextLen(tx.Text(p))
}

// Container returns a container view over a staged node.
func (tx *Transaction) Container(id string) (node.Container, error) {
	return containerView(tx.stage, tx.doc.schema, id)
}

// Position returns the index of a node inside a staged container,
// implementing selection.Resolver.
func (tx *Transaction) Position(containerID, nodeID string) (int, error) {
	return position(tx.stage, tx.doc.schema, containerID, nodeID)
}

// TextPath returns the path of the editable text property of a staged
// text node.
func (tx *Transaction) TextPath(id string) (Path, error) {
	return textPath(tx.stage, tx.doc.schema, id)
}

// Annotations returns the staged annotations touching a property path,
// sorted by id: property-scoped ones anchored on it and container-scoped
// ones with an endpoint on it. The scan runs over the stage rather than
// the committed index so a transaction sees its own writes.
func (tx *Transaction) Annotations(p Path) []node.Annotation {
	var out []node.Annotation
	for _, n := range tx.stage {
		if !tx.doc.schema.IsAnnotation(n.Type()) {
			continue
		}
		a := node.AsAnnotation(n)
		if a.StartPath().Equal(p) || a.EndPath().Equal(p) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Selection returns the staged selection: the value set in this
// transaction, or the one the transaction started from.
func (tx *Transaction) Selection() selection.Selection {
	if tx.after != nil {
		return tx.after
	}
	return tx.before
}

// Ops returns a copy of the operations recorded so far.
func (tx *Transaction) Ops() []Op {
	out := make([]Op, len(tx.ops))
	copy(out, tx.ops)
	return out
}

// Create builds a node through the schema and stages it. Providing an id
// already in use fails with ErrNodeExists.
func (tx *Transaction) Create(typ string, props map[string]any) (*node.Node, error) {
	if err := tx.open(); err != nil {
		return nil, err
	}
	n, err := tx.doc.schema.NewNode(typ, props)
	if err != nil {
		return nil, err
	}
	if _, exists := tx.stage[n.ID()]; exists {
		return nil, fmt.Errorf("%w: %s", ErrNodeExists, n.ID())
	}
	tx.stage[n.ID()] = n
	tx.dirty[n.ID()] = true
	tx.record(Op{Kind: OpCreate, Path: Path{n.ID()}, Node: n.Data()})
	return n, nil
}

// Delete removes a staged node, capturing its data so the op can be
// inverted.
func (tx *Transaction) Delete(id string) error {
	if err := tx.open(); err != nil {
		return err
	}
	n, exists := tx.stage[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if id == tx.doc.containerID {
		return fmt.Errorf("%w: cannot delete default container %s", ErrInvalidArgument, id)
	}
	tx.record(Op{Kind: OpDelete, Path: Path{id}, Node: n.Data()})
	delete(tx.stage, id)
	return nil
}

// Set replaces a property value. The value is validated against the
// schema declaration; nil unsets the property. The id and type of a node
// are immutable.
func (tx *Transaction) Set(p Path, value any) error {
	if err := tx.open(); err != nil {
		return err
	}
	n, err := tx.target(p)
	if err != nil {
		return err
	}
	prop := p.Property()
	normalized, err := tx.doc.schema.CheckProperty(n.Type(), prop, value)
	if err != nil {
		return err
	}
	old := n.Get(prop)
	staged := tx.mutable(n.ID())
	staged.Set(prop, normalized)
	tx.record(Op{Kind: OpSet, Path: p.Clone(), Value: normalized, OldValue: old})
	return nil
}

// Update applies an incremental diff to a text or id-list property,
// recording the removed content for inversion.
func (tx *Transaction) Update(p Path, diff Diff) error {
	if err := tx.open(); err != nil {
		return err
	}
	n, err := tx.target(p)
	if err != nil {
		return err
	}
	prop := p.Property()
	old := n.Get(prop)
	var removed any
	value, err := applyDiff(old, diff, &removed)
	if err != nil {
		return err
	}
	staged := tx.mutable(n.ID())
	staged.Set(prop, value)
	tx.record(Op{
		Kind:     OpUpdate,
		Path:     p.Clone(),
		Value:    value,
		OldValue: old,
		Diff:     &diff,
		Removed:  removed,
	})
	return nil
}

// CreateSelection builds and validates a selection against the staged
// state. Container descriptors without a container id receive the
// default container.
func (tx *Transaction) CreateSelection(desc selection.Descriptor) (selection.Selection, error) {
	if desc.Type == selection.TypeContainer && desc.ContainerID == "" {
		desc.ContainerID = tx.doc.containerID
	}
	sel, err := selection.FromDescriptor(desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSelection, err)
	}
	if err := validateSelection(tx, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// SetSelection stages the selection the change will leave behind. A nil
// selection is normalized to the null selection.
func (tx *Transaction) SetSelection(sel selection.Selection) error {
	if err := tx.open(); err != nil {
		return err
	}
	if sel == nil {
		sel = selection.Null{}
	}
	if err := validateSelection(tx, sel); err != nil {
		return err
	}
	tx.after = sel
	return nil
}

// SetSurface tags the change with the editing surface it originated
// from.
func (tx *Transaction) SetSurface(surface string) {
	tx.surface = surface
}

// Commit applies the recorded ops to the committed document, closes the
// transaction and publishes exactly one ChangeEvent. Index handlers run
// before Publish returns, so committed reads made by observers are
// consistent.
func (tx *Transaction) Commit() (*ChangeEvent, error) {
	if tx.closed {
		return nil, ErrTransactionClosed
	}
	tx.close()

	d := tx.doc
	if err := d.applyCommitted(tx.ops); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	d.sel = tx.Selection()
	d.seq++

	change := &ChangeEvent{
		ID:     uuid.NewString(),
		Seq:    d.seq,
		Before: State{Selection: tx.before},
		After:  State{Selection: tx.Selection(), Surface: tx.surface},
		Ops:    tx.Ops(),
		Replay: tx.replay,
	}
	d.log.Debug().
		Uint64("seq", change.Seq).
		Int("ops", len(change.Ops)).
		Bool("replay", change.Replay).
		Msg("commit")
	if err := d.bus.Publish(TopicChange, change); err != nil {
		return nil, err
	}
	return change, nil
}

// Discard drops the stage and closes the transaction. The document is
// untouched.
func (tx *Transaction) Discard() {
	if tx.closed {
		return
	}
	tx.close()
	tx.doc.log.Debug().Int("ops", len(tx.ops)).Msg("discard")
}

func (tx *Transaction) close() {
	tx.closed = true
	if tx.doc.active == tx {
		tx.doc.active = nil
	}
}

func (tx *Transaction) open() error {
	if tx.closed {
		return ErrTransactionClosed
	}
	return nil
}

// target resolves a property path to its staged node, rejecting writes
// to missing nodes, bare node paths and the immutable id and type.
func (tx *Transaction) target(p Path) (*node.Node, error) {
	if len(p) != 2 {
		return nil, fmt.Errorf("%w: %q is not a property path", ErrInvalidArgument, p)
	}
	prop := p.Property()
	if prop == node.PropID || prop == node.PropType {
		return nil, fmt.Errorf("%w: %q is immutable", ErrInvalidArgument, prop)
	}
	n, ok := tx.stage[p.NodeID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, p.NodeID())
	}
	return n, nil
}

// mutable returns the staged node for writing, cloning the committed
// instance on first touch.
func (tx *Transaction) mutable(id string) *node.Node {
	n := tx.stage[id]
	if !tx.dirty[id] {
		n = n.Clone()
		tx.stage[id] = n
		tx.dirty[id] = true
	}
	return n
}

// applyOp feeds a replayed op through the regular write path so that
// validation and recording behave exactly like first-run ops.
func (tx *Transaction) applyOp(op Op) error {
	switch op.Kind {
	case OpCreate:
		_, err := tx.Create(typeOf(op.Node), op.Node)
		return err
	case OpDelete:
		return tx.Delete(op.Path.NodeID())
	case OpSet:
		return tx.Set(op.Path, op.Value)
	case OpUpdate:
		if op.Diff == nil {
			return fmt.Errorf("%w: update op without diff", ErrInvalidArgument)
		}
		return tx.Update(op.Path, *op.Diff)
	default:
		return fmt.Errorf("%w: unknown op kind %d", ErrInvalidArgument, op.Kind)
	}
}

func (tx *Transaction) record(op Op) {
	tx.ops = append(tx.ops, op)
}

func typeOf(data map[string]any) string {
	t, _ := data[node.PropType].(string)
	return t
}
