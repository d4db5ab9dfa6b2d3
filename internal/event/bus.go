package event

import "sync/atomic"

// Bus is a synchronous event bus. Publish delivers to matching handlers
// in priority order within the caller's goroutine. The zero value is not
// usable; construct with New.
type Bus struct {
	registry *registry

	panicHandler PanicHandler
	errorHandler ErrorHandler

	eventsPublished  atomic.Uint64
	eventsDelivered  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// Option configures a Bus.
type Option func(*Bus)

// WithPanicHandler installs a callback invoked with the event and the
// recovered value when a handler panics.
func WithPanicHandler(h PanicHandler) Option {
	return func(b *Bus) {
		b.panicHandler = h
	}
}

// WithErrorHandler installs a callback invoked with a *HandlerError or
// *PanicError whenever a handler fails.
func WithErrorHandler(h ErrorHandler) Option {
	return func(b *Bus) {
		b.errorHandler = h
	}
}

// New creates an event bus.
func New(opts ...Option) *Bus {
	b := &Bus{registry: newRegistry()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for a topic pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	sub := newSubscription(pattern, handler, opts...)
	b.registry.add(sub)
	return sub, nil
}

// SubscribeFunc registers a function handler for a topic pattern.
func (b *Bus) SubscribeFunc(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels and removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !b.registry.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Publish delivers an event to every matching handler, lowest priority
// value first. Handler errors and panics are isolated: they are counted,
// reported through the installed handlers and delivery continues. Publish
// returns an error only for an invalid topic.
func (b *Bus) Publish(t Topic, event any) error {
	if err := t.Validate(); err != nil {
		return err
	}
	subs := b.registry.match(t)
	b.eventsPublished.Add(1)

	for _, sub := range subs {
		if !sub.shouldDeliver(event) {
			continue
		}
		err, panicked := b.dispatch(t, sub, event)
		b.handlersExecuted.Add(1)
		switch {
		case panicked:
			b.handlerPanics.Add(1)
		case err != nil:
			b.handlerErrors.Add(1)
			b.reportError(&HandlerError{Topic: t, Err: err})
		default:
			b.eventsDelivered.Add(1)
		}
		if sub.config.Once && !panicked && err == nil {
			sub.Cancel()
			b.registry.remove(sub.ID())
		}
	}
	return nil
}

// dispatch runs one handler with panic isolation.
func (b *Bus) dispatch(t Topic, sub *Subscription, event any) (err error, panicked bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicked = true
			if b.panicHandler != nil {
				b.panicHandler(event, recovered)
			}
			b.reportError(&PanicError{Topic: t, Recovered: recovered})
		}
	}()
	return sub.handler.Handle(event), false
}

func (b *Bus) reportError(err error) {
	if b.errorHandler != nil {
		b.errorHandler(err)
	}
}

// Stats returns current bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlersExecuted:  b.handlersExecuted.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: b.registry.countActive(),
	}
}
