package event

import (
	"errors"
	"fmt"
)

var (
	// ErrNilHandler indicates a subscription attempt without a handler.
	ErrNilHandler = errors.New("nil handler")

	// ErrInvalidTopic indicates an empty or malformed topic.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidSubscription indicates a nil subscription passed to
	// Unsubscribe.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound indicates a subscription unknown to the bus,
	// usually one already unsubscribed.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// HandlerError wraps an error returned by a handler, carrying the topic
// it was handling.
type HandlerError struct {
	Topic Topic
	Err   error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler error on %q: %v", e.Topic, e.Err)
}

// Unwrap returns the underlying handler error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a recovered handler panic.
type PanicError struct {
	Topic     Topic
	Recovered any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic on %q: %v", e.Topic, e.Recovered)
}
