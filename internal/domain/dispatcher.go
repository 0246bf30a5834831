package domain

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"incidentlens.io/lens/internal/pkg/logger"
)

// EventHandler processes a domain event.
type EventHandler func(ctx context.Context, event *DomainEvent) error

// EventDispatcher routes snapshot lifecycle events to registered handlers
// (metrics, logging). Handlers run synchronously on the reloading goroutine.
type EventDispatcher struct {
	handlers map[EventType][]EventHandler
	mu       sync.RWMutex
}

// NewEventDispatcher creates a new EventDispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		handlers: make(map[EventType][]EventHandler),
	}
}

// Register adds handler for eventType. Handlers run in registration order.
func (d *EventDispatcher) Register(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// Dispatch delivers event to every handler registered for its type. A failing
// handler is logged and does not stop the others; the first failure is
// returned. Dispatch on a nil dispatcher is a no-op.
func (d *EventDispatcher) Dispatch(ctx context.Context, event *DomainEvent) error {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	handlers := d.handlers[event.EventType]
	d.mu.RUnlock()

	var firstErr error
	for i, handle := range handlers {
		err := handle(ctx, event)
		if err == nil {
			continue
		}
		logger.Error("Lifecycle handler failed",
			zap.String("event_type", string(event.EventType)),
			zap.String("source", event.Source),
			zap.Int("handler", i),
			zap.Error(err),
		)
		if firstErr == nil {
			firstErr = fmt.Errorf("%s handler %d: %w", event.EventType, i, err)
		}
	}
	return firstErr
}
