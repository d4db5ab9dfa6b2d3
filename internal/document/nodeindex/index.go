package nodeindex

import (
	"fmt"

	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/pathstore"
)

// Bucket is a set of nodes keyed by id.
type Bucket map[string]*node.Node

// IDs returns the member ids, unsorted.
func (b Bucket) IDs() []string {
	out := make([]string, 0, len(b))
	for id := range b {
		out = append(out, id)
	}
	return out
}

// Index buckets a selected subset of nodes by the value of one property.
// The zero value is not usable; construct indexes with New or
// NewAnnotationIndex.
type Index struct {
	property string
	watched  []string
	selectFn func(*node.Node) bool
	keysFn   func(values map[string]any) []node.Path
	store    *pathstore.Store
}

// Option configures an Index.
type Option func(*Index)

// WithProperty sets the indexed property. The default is "id".
func WithProperty(name string) Option {
	return func(ix *Index) {
		ix.property = name
	}
}

// WithSelect restricts the index to nodes the predicate accepts. The
// default accepts every node.
func WithSelect(fn func(*node.Node) bool) Option {
	return func(ix *Index) {
		ix.selectFn = fn
	}
}

// New creates an index over a single property.
func New(opts ...Option) *Index {
	ix := &Index{
		property: node.PropID,
		selectFn: func(*node.Node) bool { return true },
		store:    pathstore.New(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	ix.watched = []string{ix.property}
	prop := ix.property
	ix.keysFn = func(values map[string]any) []node.Path {
		return keysForValue(values[prop])
	}
	return ix
}

// NewTypeIndex creates the index documents use to look nodes up by type.
func NewTypeIndex() *Index {
	return New(WithProperty(node.PropType))
}

// CloneEmpty returns an index with the same selection and keying but no
// content, ready for a Reset against another node set.
func (ix *Index) CloneEmpty() *Index {
	return &Index{
		property: ix.property,
		watched:  ix.watched,
		selectFn: ix.selectFn,
		keysFn:   ix.keysFn,
		store:    pathstore.New(),
	}
}

// Reset rebuilds the index from scratch over the given nodes.
func (ix *Index) Reset(nodes map[string]*node.Node) {
	ix.store.Clear()
	for _, n := range nodes {
		ix.Create(n)
	}
}

// Create adds a node to the buckets its property value selects. Nodes the
// predicate rejects are ignored.
func (ix *Index) Create(n *node.Node) {
	if n == nil || !ix.selectFn(n) {
		return
	}
	ix.add(ix.keysFn(ix.currentValues(n)), n)
}

// Delete removes a node from every bucket its property value selects.
func (ix *Index) Delete(n *node.Node) {
	if n == nil || !ix.selectFn(n) {
		return
	}
	ix.remove(ix.keysFn(ix.currentValues(n)), n.ID())
}

// Update rebuckets a node after the property at path p changed from
// oldValue to newValue. Changes to unwatched properties are ignored. Old
// keys are removed even when the node no longer passes the selection
// predicate, so predicate transitions cannot leave stale entries.
func (ix *Index) Update(n *node.Node, p node.Path, newValue, oldValue any) {
	if n == nil || !ix.watches(p.Property()) {
		return
	}
	prop := p.Property()
	ix.remove(ix.keysFn(ix.valuesWith(n, prop, oldValue)), n.ID())
	if ix.selectFn(n) {
		ix.add(ix.keysFn(ix.valuesWith(n, prop, newValue)), n)
	}
}

// Get returns a copy of the bucket at the given key path. A nil path
// returns all buckets merged.
func (ix *Index) Get(p node.Path) Bucket {
	if len(p) == 0 {
		return ix.All()
	}
	v, ok := ix.store.Get(p)
	if !ok {
		return Bucket{}
	}
	stored := v.(Bucket)
	out := make(Bucket, len(stored))
	for id, n := range stored {
		out[id] = n
	}
	return out
}

// All returns every indexed node merged into one bucket.
func (ix *Index) All() Bucket {
	out := make(Bucket)
	ix.store.Traverse(func(_ node.Path, v any) {
		for id, n := range v.(Bucket) {
			out[id] = n
		}
	})
	return out
}

// Len returns the number of distinct key paths.
func (ix *Index) Len() int {
	return ix.store.Len()
}

func (ix *Index) watches(prop string) bool {
	for _, w := range ix.watched {
		if w == prop {
			return true
		}
	}
	return false
}

func (ix *Index) currentValues(n *node.Node) map[string]any {
	values := make(map[string]any, len(ix.watched))
	for _, w := range ix.watched {
		values[w] = n.Get(w)
	}
	return values
}

func (ix *Index) valuesWith(n *node.Node, prop string, override any) map[string]any {
	values := ix.currentValues(n)
	values[prop] = override
	return values
}

func (ix *Index) add(keys []node.Path, n *node.Node) {
	for _, key := range keys {
		v, ok := ix.store.Get(key)
		if !ok {
			ix.store.Set(key, Bucket{n.ID(): n})
			continue
		}
		v.(Bucket)[n.ID()] = n
	}
}

func (ix *Index) remove(keys []node.Path, id string) {
	for _, key := range keys {
		v, ok := ix.store.Get(key)
		if !ok {
			continue
		}
		b := v.(Bucket)
		delete(b, id)
		if len(b) == 0 {
			ix.store.Delete(key)
		}
	}
}

// keysForValue maps a property value to bucket key paths. Scalars become
// single-segment keys, lists fan out and paths key by their segments.
func keysForValue(v any) []node.Path {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []node.Path{{t}}
	case node.Path:
		if len(t) == 0 {
			return nil
		}
		return []node.Path{t.Clone()}
	case []string:
		keys := make([]node.Path, 0, len(t))
		for _, e := range t {
			if e != "" {
				keys = append(keys, node.Path{e})
			}
		}
		return keys
	case []any:
		keys := make([]node.Path, 0, len(t))
		for _, e := range t {
			keys = append(keys, keysForValue(e)...)
		}
		return keys
	default:
		return []node.Path{{fmt.Sprint(t)}}
	}
}
