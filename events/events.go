// Package events provides a minimal generic publish/subscribe primitive used to fan a stream of events out to
// multiple independent listeners without coupling the publisher to them.
package events

// EventHandler is a callback invoked with an event's data when it is published.
type EventHandler[T any] func(T)

// EventEmitter lets any number of EventHandler callbacks subscribe to events of a given type, then calls all of
// them, in subscription order, whenever an event is published. The diagnostic sink (component G) uses one to let
// the logger, an in-memory report, and test assertions all observe the same stream of warnings.
type EventEmitter[T any] struct {
	subscriptions []EventHandler[T]
}

// Subscribe adds callback to the list of handlers invoked on Publish.
func (e *EventEmitter[T]) Subscribe(callback EventHandler[T]) {
	e.subscriptions = append(e.subscriptions, callback)
}

// Publish invokes every subscribed EventHandler with event, in subscription order.
func (e *EventEmitter[T]) Publish(event T) {
	for _, subscription := range e.subscriptions {
		subscription(event)
	}
}
