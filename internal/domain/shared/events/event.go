// Package events provides the in-process domain event plumbing. Aggregates
// record events while they mutate; use cases collect them after a
// successful save and hand them to the dispatcher, which fans them out to
// subscribed handlers asynchronously.
package events

import "time"

// DomainEvent is implemented by every event an aggregate records.
type DomainEvent interface {
	// EventName returns the wire name of the event, e.g. "new_issue".
	EventName() string

	// AggregateID returns the public identifier of the aggregate that
	// recorded the event.
	AggregateID() string

	// OccurredAt returns when the event was recorded.
	OccurredAt() time.Time
}

// Handler processes a dispatched domain event. Handler errors are logged
// and never propagate back to the publishing use case.
type Handler interface {
	Handle(event DomainEvent) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(event DomainEvent) error

func (f HandlerFunc) Handle(event DomainEvent) error {
	return f(event)
}

// Publisher publishes domain events without blocking the caller.
type Publisher interface {
	Publish(event DomainEvent) error
	PublishAll(events []DomainEvent) error
}
