package pathstore

import (
	"fmt"
	"sort"

	"github.com/archivist/substance/internal/document/node"
)

// Store holds values addressed by paths. Writes create intermediate
// levels as needed; reads never allocate. A value and a subtree may
// coexist under the same path.
//
// Store is not safe for concurrent use; the owning document serializes
// access.
type Store struct {
	strict bool
	root   *level
}

type level struct {
	children map[string]*level
	value    any
	hasValue bool
}

// New creates an empty store.
func New(opts ...Option) *Store {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &Store{strict: s.strict, root: &level{}}
}

// Get returns the value stored at the exact path. The second result
// reports whether a value is present.
func (s *Store) Get(p node.Path) (any, bool) {
	lv := s.lookup(p)
	if lv == nil || !lv.hasValue {
		return nil, false
	}
	return lv.value, true
}

// Set stores a value at the path, creating intermediate levels.
func (s *Store) Set(p node.Path, value any) error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	lv := s.root
	for _, seg := range p {
		if lv.children == nil {
			lv.children = make(map[string]*level)
		}
		next, ok := lv.children[seg]
		if !ok {
			next = &level{}
			lv.children[seg] = next
		}
		lv = next
	}
	lv.value = value
	lv.hasValue = true
	return nil
}

// Delete removes the value at the path and prunes empty levels. Deleting
// a path without a value is a no-op unless the store is strict, in which
// case it returns ErrInvalidPath.
func (s *Store) Delete(p node.Path) error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	if !s.deleteFrom(s.root, p) {
		if s.strict {
			return fmt.Errorf("%w: %s", ErrInvalidPath, p)
		}
	}
	return nil
}

func (s *Store) deleteFrom(lv *level, p node.Path) bool {
	child, ok := lv.children[p[0]]
	if !ok {
		return false
	}
	var deleted bool
	if len(p) == 1 {
		deleted = child.hasValue
		child.value = nil
		child.hasValue = false
	} else {
		deleted = s.deleteFrom(child, p[1:])
	}
	if !child.hasValue && len(child.children) == 0 {
		delete(lv.children, p[0])
	}
	return deleted
}

// Traverse visits every stored value with its full path. Levels are
// walked in sorted segment order, so traversal order is deterministic.
func (s *Store) Traverse(visit func(p node.Path, value any)) {
	walk(s.root, nil, visit)
}

func walk(lv *level, prefix node.Path, visit func(node.Path, any)) {
	if lv.hasValue {
		visit(prefix.Clone(), lv.value)
	}
	if len(lv.children) == 0 {
		return
	}
	segs := make([]string, 0, len(lv.children))
	for seg := range lv.children {
		segs = append(segs, seg)
	}
	sort.Strings(segs)
	for _, seg := range segs {
		walk(lv.children[seg], append(prefix, seg), visit)
	}
}

// Len returns the number of stored values.
func (s *Store) Len() int {
	n := 0
	s.Traverse(func(node.Path, any) { n++ })
	return n
}

// Clear removes every value.
func (s *Store) Clear() {
	s.root = &level{}
}

func (s *Store) lookup(p node.Path) *level {
	lv := s.root
	for _, seg := range p {
		next, ok := lv.children[seg]
		if !ok {
			return nil
		}
		lv = next
	}
	return lv
}
