// Package event provides the synchronous publish/subscribe bus documents
// use to broadcast committed changes.
//
// # Design
//
// Delivery is synchronous and ordered: Publish runs every matching
// handler in the caller's goroutine, lowest Priority first, and returns
// when the last handler has finished. Index maintenance subscribes at
// PriorityIndex so derived state is consistent before observers at
// PriorityObserver see the same event. There is no queue and no worker
// pool; a committing transaction must observe its own side effects when
// Publish returns.
//
// # Isolation
//
// Handlers are isolated from each other. A panic in one handler is
// recovered, counted and reported through the bus panic handler, then
// delivery continues with the next handler. Handler errors likewise do
// not stop delivery; they are counted and forwarded to the error handler
// when one is installed.
//
// # Topics
//
// Topics are dotted names such as "document.change". A subscription may
// use a trailing "*" segment ("document.*") to receive every topic under
// a prefix.
//
// Example:
//
//	bus := event.New()
//	sub, _ := bus.SubscribeFunc("document.change", func(e any) error {
//		fmt.Println("changed")
//		return nil
//	}, event.WithPriority(event.PriorityObserver))
//	defer bus.Unsubscribe(sub)
package event
