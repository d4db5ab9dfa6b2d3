package document

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/nodeindex"
	"github.com/archivist/substance/internal/document/schema"
	"github.com/archivist/substance/internal/document/selection"
	"github.com/archivist/substance/internal/event"
)

// Re-exported types so that most callers only import this package.
type (
	// Path addresses a node or node property.
	Path = node.Path
	// Node is a document node.
	Node = node.Node
	// Selection is a user selection value.
	Selection = selection.Selection
)

// DefaultContainerID is the id of the container created with every
// document unless WithContainerID overrides it.
const DefaultContainerID = "body"

// Names of the built-in indexes.
const (
	IndexTypes       = "type"
	IndexAnnotations = "annotations"
)

// Document is a graph of typed nodes governed by a schema, mutated only
// through transactions. Every commit publishes one ChangeEvent on the
// document bus; built-in indexes subscribe at PriorityIndex so they are
// consistent before observers run.
//
// A Document and its transactions belong to one goroutine at a time.
// The bus may be shared, but Publish runs on the committing goroutine.
type Document struct {
	schema      *schema.Schema
	containerID string
	log         zerolog.Logger
	bus         *event.Bus

	nodes   map[string]*node.Node
	indexes map[string]*nodeindex.Index
	sel     selection.Selection
	seq     uint64
	active  *Transaction
}

// New creates a document with an empty default container. The schema
// must validate and declare at least one container type; the first one
// in name order becomes the type of the default container.
func New(s *schema.Schema, opts ...Option) (*Document, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidArgument)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	d := &Document{
		schema:      s,
		containerID: DefaultContainerID,
		log:         zerolog.Nop(),
		bus:         event.New(),
		nodes:       make(map[string]*node.Node),
		sel:         selection.Null{},
	}
	for _, opt := range opts {
		opt(d)
	}

	containerType := ""
	for _, name := range s.Types() {
		if s.IsContainer(name) {
			containerType = name
			break
		}
	}
	if containerType == "" {
		return nil, fmt.Errorf("%w: schema %s declares no container type", ErrMissingContainer, s.Name())
	}
	body, err := s.NewNode(containerType, map[string]any{node.PropID: d.containerID})
	if err != nil {
		return nil, err
	}
	d.nodes[body.ID()] = body

	d.indexes = map[string]*nodeindex.Index{
		IndexTypes: nodeindex.NewTypeIndex(),
		IndexAnnotations: nodeindex.NewAnnotationIndex(nodeindex.WithSelect(func(n *node.Node) bool {
			return s.IsAnnotation(n.Type())
		})),
	}
	for _, ix := range d.indexes {
		ix.Reset(d.nodes)
	}

	if _, err := d.bus.Subscribe(TopicChange, event.HandlerFunc(d.updateIndexes),
		event.WithPriority(event.PriorityIndex)); err != nil {
		return nil, err
	}
	return d, nil
}

// Schema returns the document schema.
func (d *Document) Schema() *schema.Schema { return d.schema }

// ContainerID returns the id of the default container.
func (d *Document) ContainerID() string { return d.containerID }

// Events returns the document bus for subscribing to committed changes.
func (d *Document) Events() *event.Bus { return d.bus }

// Seq returns the number of committed changes.
func (d *Document) Seq() uint64 { return d.seq }

// NodeCount returns the number of nodes, including the default container.
func (d *Document) NodeCount() int { return len(d.nodes) }

// NodeIDs returns every node id in sorted order, including the default
// container.
func (d *Document) NodeIDs() []string {
	out := make([]string, 0, len(d.nodes))
	for id := range d.nodes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Has reports whether a node id exists.
func (d *Document) Has(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// Node returns the node with the given id, or nil. The result must be
// treated as read-only.
func (d *Document) Node(id string) *node.Node {
	return d.nodes[id]
}

// Get resolves a path: a one-segment path yields the *node.Node, a
// two-segment path the property value. Missing targets yield nil.
func (d *Document) Get(p Path) any {
	return resolvePath(d.nodes, p)
}

// Text returns the text at a property path, or "" when the path does not
// resolve to a string.
func (d *Document) Text(p Path) string {
	s, _ := d.Get(p).(string)
	return s
}

// TextLen returns the rune length of the text at a property path.
func (d *Document) TextLen(p Path) int {
	return node.TextLen(d.Text(p))
}

// Container returns a container view over the node with the given id.
func (d *Document) Container(id string) (node.Container, error) {
	return containerView(d.nodes, d.schema, id)
}

// Position returns the index of a node inside a container, implementing
// selection.Resolver.
func (d *Document) Position(containerID, nodeID string) (int, error) {
	return position(d.nodes, d.schema, containerID, nodeID)
}

// TextPath returns the path of the editable text property of a text
// node.
func (d *Document) TextPath(id string) (Path, error) {
	return textPath(d.nodes, d.schema, id)
}

// Index returns a registered index by name.
func (d *Document) Index(name string) (*nodeindex.Index, bool) {
	ix, ok := d.indexes[name]
	return ix, ok
}

// AddIndex registers a custom index and fills it from the current nodes.
// The index is then maintained on every commit.
func (d *Document) AddIndex(name string, ix *nodeindex.Index) error {
	if name == "" || ix == nil {
		return fmt.Errorf("%w: index needs a name and an instance", ErrInvalidArgument)
	}
	if _, exists := d.indexes[name]; exists {
		return fmt.Errorf("%w: index %q already registered", ErrInvalidArgument, name)
	}
	ix.Reset(d.nodes)
	d.indexes[name] = ix
	return nil
}

// NodesByType returns the committed nodes of one type.
func (d *Document) NodesByType(typ string) nodeindex.Bucket {
	return d.indexes[IndexTypes].Get(Path{typ})
}

// Annotations returns the committed annotations anchored on a property
// path, sorted by id. Container-scoped annotations are included when
// either endpoint anchors there.
func (d *Document) Annotations(p Path) []node.Annotation {
	bucket := d.indexes[IndexAnnotations].Get(p)
	out := make([]node.Annotation, 0, len(bucket))
	for _, n := range bucket {
		out = append(out, node.AsAnnotation(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Selection returns the last committed selection.
func (d *Document) Selection() selection.Selection { return d.sel }

// CreateSelection builds and validates a selection value against the
// committed state. Container descriptors without a container id receive
// the default container.
func (d *Document) CreateSelection(desc selection.Descriptor) (selection.Selection, error) {
	if desc.Type == selection.TypeContainer && desc.ContainerID == "" {
		desc.ContainerID = d.containerID
	}
	sel, err := selection.FromDescriptor(desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSelection, err)
	}
	if err := validateSelection(d, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// Begin opens a transaction. Only one transaction may be open at a time.
func (d *Document) Begin() (*Transaction, error) {
	if d.active != nil {
		return nil, ErrTransactionActive
	}
	tx := newTransaction(d)
	d.active = tx
	return tx, nil
}

// ApplyChange replays a change event, typically one produced by Invert,
// through a fresh transaction. The resulting commit is published with the
// Replay flag set.
func (d *Document) ApplyChange(c *ChangeEvent) (*ChangeEvent, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil change", ErrInvalidArgument)
	}
	tx, err := d.Begin()
	if err != nil {
		return nil, err
	}
	tx.replay = true
	for _, op := range c.Ops {
		if err := tx.applyOp(op); err != nil {
			tx.Discard()
			return nil, err
		}
	}
	if c.After.Selection != nil {
		if err := tx.SetSelection(c.After.Selection); err != nil {
			tx.Discard()
			return nil, err
		}
	}
	tx.SetSurface(c.After.Surface)
	return tx.Commit()
}

// Validate checks referential integrity: id references resolve,
// container children exist exactly once, and annotation anchors address
// text properties within bounds.
func (d *Document) Validate() error {
	for id, n := range d.nodes {
		t, ok := d.schema.Type(n.Type())
		if !ok {
			return fmt.Errorf("%w: node %s has type %q", schema.ErrUnknownType, id, n.Type())
		}
		for name, spec := range t.Properties {
			switch spec.Kind {
			case schema.KindID:
				ref := n.GetString(name)
				if ref != "" && !d.Has(ref) {
					return fmt.Errorf("%w: %s.%s references %q", ErrNodeNotFound, id, name, ref)
				}
			case schema.KindIDList:
				seen := make(map[string]bool)
				for _, ref := range n.GetIDs(name) {
					if !d.Has(ref) {
						return fmt.Errorf("%w: %s.%s references %q", ErrNodeNotFound, id, name, ref)
					}
					if seen[ref] {
						return fmt.Errorf("%w: %s.%s lists %q twice", ErrInvalidArgument, id, name, ref)
					}
					seen[ref] = true
				}
			}
		}
		if t.Annotation {
			if err := d.validateAnchor(node.AsAnnotation(n)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Document) validateAnchor(a node.Annotation) error {
	check := func(p Path, offset int) error {
		if len(p) < 2 {
			return fmt.Errorf("%w: annotation %s anchor %q", ErrInvalidArgument, a.ID(), p)
		}
		target := d.Node(p.NodeID())
		if target == nil {
			return fmt.Errorf("%w: annotation %s anchors on %q", ErrNodeNotFound, a.ID(), p.NodeID())
		}
		prop, ok := d.schema.TextProperty(target.Type())
		if !ok || prop != p.Property() {
			return fmt.Errorf("%w: annotation %s anchors on non-text property %s", ErrInvalidArgument, a.ID(), p)
		}
		if offset < 0 || offset > d.TextLen(p) {
			return fmt.Errorf("%w: annotation %s offset %d outside %s", ErrInvalidArgument, a.ID(), offset, p)
		}
		return nil
	}
	if a.IsContainerScoped() {
		if err := check(a.StartPath(), a.Start()); err != nil {
			return err
		}
		return check(a.EndPath(), a.End())
	}
	if err := check(a.Path(), a.Start()); err != nil {
		return err
	}
	return check(a.Path(), a.End())
}

// Clone returns an independent copy: nodes deep-copied, indexes rebuilt,
// a fresh private bus with no subscribers carried over.
func (d *Document) Clone() *Document {
	clone := &Document{
		schema:      d.schema,
		containerID: d.containerID,
		log:         d.log,
		bus:         event.New(),
		nodes:       make(map[string]*node.Node, len(d.nodes)),
		indexes:     make(map[string]*nodeindex.Index, len(d.indexes)),
		sel:         d.sel,
		seq:         d.seq,
	}
	for id, n := range d.nodes {
		clone.nodes[id] = n.Clone()
	}
	for name, ix := range d.indexes {
		cix := ix.CloneEmpty()
		cix.Reset(clone.nodes)
		clone.indexes[name] = cix
	}
	clone.bus.Subscribe(TopicChange, event.HandlerFunc(clone.updateIndexes),
		event.WithPriority(event.PriorityIndex))
	return clone
}

// applyCommitted replays recorded ops onto the committed node map. The
// ops already succeeded against the transaction stage, so a failure here
// is an internal inconsistency.
func (d *Document) applyCommitted(ops []Op) error {
	for _, op := range ops {
		switch op.Kind {
		case OpCreate:
			n, err := node.FromData(op.Node)
			if err != nil {
				return err
			}
			if _, exists := d.nodes[n.ID()]; exists {
				return fmt.Errorf("%w: %s", ErrNodeExists, n.ID())
			}
			d.nodes[n.ID()] = n
		case OpDelete:
			id := op.Path.NodeID()
			if _, exists := d.nodes[id]; !exists {
				return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
			}
			delete(d.nodes, id)
		case OpSet:
			n := d.nodes[op.Path.NodeID()]
			if n == nil {
				return fmt.Errorf("%w: %s", ErrNodeNotFound, op.Path.NodeID())
			}
			n.Set(op.Path.Property(), op.Value)
		case OpUpdate:
			n := d.nodes[op.Path.NodeID()]
			if n == nil {
				return fmt.Errorf("%w: %s", ErrNodeNotFound, op.Path.NodeID())
			}
			value, err := applyDiff(n.Get(op.Path.Property()), *op.Diff, nil)
			if err != nil {
				return err
			}
			n.Set(op.Path.Property(), value)
		}
	}
	return nil
}

// updateIndexes is the PriorityIndex bus handler that keeps every
// registered index aligned with committed ops.
func (d *Document) updateIndexes(e any) error {
	change, ok := e.(*ChangeEvent)
	if !ok {
		return nil
	}
	for _, op := range change.Ops {
		switch op.Kind {
		case OpCreate:
			n := d.nodes[op.Path.NodeID()]
			if n == nil {
				continue
			}
			for _, ix := range d.indexes {
				ix.Create(n)
			}
		case OpDelete:
			n, err := node.FromData(op.Node)
			if err != nil {
				continue
			}
			for _, ix := range d.indexes {
				ix.Delete(n)
			}
		case OpSet, OpUpdate:
			n := d.nodes[op.Path.NodeID()]
			if n == nil {
				continue
			}
			for _, ix := range d.indexes {
				ix.Update(n, op.Path, op.Value, op.OldValue)
			}
		}
	}
	return nil
}

// resolvePath resolves one- and two-segment paths against a node map.
func resolvePath(nodes map[string]*node.Node, p Path) any {
	n, ok := nodes[p.NodeID()]
	if !ok {
		return nil
	}
	switch len(p) {
	case 1:
		return n
	case 2:
		return n.Get(p.Property())
	default:
		return nil
	}
}

func containerView(nodes map[string]*node.Node, s *schema.Schema, id string) (node.Container, error) {
	n, ok := nodes[id]
	if !ok {
		return node.Container{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if !s.IsContainer(n.Type()) {
		return node.Container{}, fmt.Errorf("%w: %s is not a container", ErrInvalidArgument, id)
	}
	return node.AsContainer(n), nil
}

func position(nodes map[string]*node.Node, s *schema.Schema, containerID, nodeID string) (int, error) {
	c, err := containerView(nodes, s, containerID)
	if err != nil {
		return 0, err
	}
	pos := c.Position(nodeID)
	if pos < 0 {
		return 0, fmt.Errorf("%w: %s not in container %s", ErrNodeNotFound, nodeID, containerID)
	}
	return pos, nil
}

func textPath(nodes map[string]*node.Node, s *schema.Schema, id string) (Path, error) {
	n, ok := nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	prop, ok := s.TextProperty(n.Type())
	if !ok {
		return nil, fmt.Errorf("%w: %s has no text property", ErrInvalidArgument, id)
	}
	return Path{id, prop}, nil
}
