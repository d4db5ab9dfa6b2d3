package event

import (
	"sort"
	"sync"
)

// registry stores subscriptions and answers topic matches in priority
// order. It is safe for concurrent use.
type registry struct {
	mu   sync.RWMutex
	subs []*Subscription
	byID map[string]*Subscription
}

func newRegistry() *registry {
	return &registry{byID: make(map[string]*Subscription)}
}

// add inserts a subscription keeping the slice ordered by priority.
// Insertion order breaks ties, so equal-priority handlers run in
// subscription order.
func (r *registry) add(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos := sort.Search(len(r.subs), func(i int) bool {
		return r.subs[i].Priority() > sub.Priority()
	})
	r.subs = append(r.subs, nil)
	copy(r.subs[pos+1:], r.subs[pos:])
	r.subs[pos] = sub
	r.byID[sub.ID()] = sub
}

// remove deletes a subscription by id and reports whether it was known.
func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, sub := range r.subs {
		if sub.ID() == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			break
		}
	}
	return true
}

// match returns a snapshot of the subscriptions whose pattern matches the
// topic, in priority order. The snapshot is independent of later
// subscribe and unsubscribe calls, so handlers registered during a
// dispatch see only the next event.
func (r *registry) match(t Topic) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Subscription
	for _, sub := range r.subs {
		if t.Match(sub.Topic()) {
			out = append(out, sub)
		}
	}
	return out
}

// countActive returns the number of active subscriptions.
func (r *registry) countActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, sub := range r.subs {
		if sub.IsActive() {
			n++
		}
	}
	return n
}
