package shared

import "context"

// EventHandler reacts to domain events after they are committed
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the event types this handler wants. Empty means
	// all events.
	EventTypes() []string
}

// EventPublisher delivers domain events to subscribed handlers
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber manages handler registrations
type EventSubscriber interface {
	// Subscribe registers a handler, under the given event types or,
	// when none are given, under the handler's own EventTypes
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus combines publishing and subscription
type EventBus interface {
	EventPublisher
	EventSubscriber
}
