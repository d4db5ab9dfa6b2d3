package event

import "strings"

// Topic is a dotted event name such as "document.change".
type Topic string

// Validate reports whether the topic can be published or subscribed to.
func (t Topic) Validate() error {
	if t == "" {
		return ErrInvalidTopic
	}
	return nil
}

// Match reports whether the topic matches a subscription pattern. A
// pattern is either an exact topic or a prefix followed by ".*".
func (t Topic) Match(pattern Topic) bool {
	if t == pattern {
		return true
	}
	if prefix, ok := strings.CutSuffix(string(pattern), ".*"); ok {
		return strings.HasPrefix(string(t), prefix+".")
	}
	return false
}

// Priority determines handler execution order. Lower values execute
// first.
type Priority int

const (
	// PriorityIndex is for index maintenance handlers that must see a
	// change before anything else reads derived state.
	PriorityIndex Priority = 0

	// PriorityObserver is the default priority for application observers.
	PriorityObserver Priority = 100

	// PriorityLow is for metrics and logging handlers that run last.
	PriorityLow Priority = 200
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityIndex:
		return "index"
	case p <= PriorityObserver:
		return "observer"
	default:
		return "low"
	}
}

// Handler is the interface for event handlers. The event parameter is
// type-erased; handlers type-assert on the payloads they care about.
type Handler interface {
	Handle(event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(event any) error {
	return f(event)
}

// FilterFunc is a predicate for filtering events. Return true to deliver
// the event to the subscription.
type FilterFunc func(event any) bool

// Stats contains event bus counters.
type Stats struct {
	// EventsPublished is the total number of events published.
	EventsPublished uint64

	// EventsDelivered is the number of successful handler deliveries.
	EventsDelivered uint64

	// HandlersExecuted is the total number of handler executions.
	HandlersExecuted uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscribers is the current number of active subscriptions.
	ActiveSubscribers int
}

// PanicHandler is called with the event and recovered value when a
// handler panics.
type PanicHandler func(event any, recovered any)

// ErrorHandler is called with a *HandlerError or *PanicError whenever a
// handler fails.
type ErrorHandler func(err error)
