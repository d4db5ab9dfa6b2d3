package pathstore

import (
	"fmt"

	"github.com/archivist/substance/internal/document/node"
)

// ArrayStore keeps an ordered multiset of values per path. There is no
// direct set operation: values enter through Add and leave through Remove
// or RemoveAll, which keeps membership changes observable one value at a
// time. Stored values must be comparable.
type ArrayStore struct {
	strict bool
	store  *Store
}

// NewArrayStore creates an empty array store.
func NewArrayStore(opts ...Option) *ArrayStore {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &ArrayStore{strict: s.strict, store: New()}
}

// Add appends a value to the multiset at the path, creating it when
// absent.
func (a *ArrayStore) Add(p node.Path, value any) error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	values, _ := a.store.Get(p)
	list, _ := values.([]any)
	return a.store.Set(p, append(list, value))
}

// Remove deletes the first value equal to the given one from the multiset
// at the path. Removing from a missing path or a missing value is a no-op
// unless the store is strict.
func (a *ArrayStore) Remove(p node.Path, value any) error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	values, ok := a.store.Get(p)
	if !ok {
		if a.strict {
			return fmt.Errorf("%w: %s", ErrInvalidPath, p)
		}
		return nil
	}
	list := values.([]any)
	for i, v := range list {
		if v == value {
			list = append(list[:i:i], list[i+1:]...)
			if len(list) == 0 {
				return a.store.Delete(p)
			}
			return a.store.Set(p, list)
		}
	}
	if a.strict {
		return fmt.Errorf("%w: no such value at %s", ErrInvalidPath, p)
	}
	return nil
}

// RemoveAll drops the whole multiset at the path.
func (a *ArrayStore) RemoveAll(p node.Path) error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	if _, ok := a.store.Get(p); !ok {
		if a.strict {
			return fmt.Errorf("%w: %s", ErrInvalidPath, p)
		}
		return nil
	}
	return a.store.Delete(p)
}

// Get returns the values at the path in insertion order. The returned
// slice is a copy.
func (a *ArrayStore) Get(p node.Path) []any {
	values, ok := a.store.Get(p)
	if !ok {
		return nil
	}
	list := values.([]any)
	out := make([]any, len(list))
	copy(out, list)
	return out
}

// Traverse visits every non-empty multiset with its path in deterministic
// order. The visited slice must not be mutated.
func (a *ArrayStore) Traverse(visit func(p node.Path, values []any)) {
	a.store.Traverse(func(p node.Path, value any) {
		visit(p, value.([]any))
	})
}

// Len returns the number of paths holding at least one value.
func (a *ArrayStore) Len() int {
	return a.store.Len()
}

// Clear removes every multiset.
func (a *ArrayStore) Clear() {
	a.store.Clear()
}
