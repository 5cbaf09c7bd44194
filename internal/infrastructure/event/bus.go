package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/shared"
)

// InMemoryEventBus dispatches domain events to registered handlers
// synchronously, in process. A failing handler is logged and does not
// stop delivery to the remaining handlers.
type InMemoryEventBus struct {
	logger *zap.Logger

	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
}

func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		logger:   logger,
		handlers: make(map[string][]shared.EventHandler),
	}
}

func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		b.mu.RLock()
		handlers := append([]shared.EventHandler(nil), b.handlers[event.EventType()]...)
		b.mu.RUnlock()

		for _, handler := range handlers {
			if err := b.dispatch(ctx, handler, event); err != nil {
				b.logger.Error("handler failed to process event",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, eventType := range eventTypes {
		b.handlers[eventType] = append(b.handlers[eventType], handler)
	}
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for eventType, handlers := range b.handlers {
		kept := handlers[:0]
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		b.handlers[eventType] = kept
	}
}

// dispatch shields the bus from a panicking handler
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
