package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

func (e BaseEvent) Payload() interface{} {
	return e.Data
}

type Handler func(ctx context.Context, event Event) error

type subscriber struct {
	id      uint64
	handler Handler
}

// EventBus is an in-process publish/subscribe hub. Async deliveries are tracked
// so callers can Drain them before shutting down.
type EventBus struct {
	handlers map[string][]subscriber
	nextID   uint64
	logger   *slog.Logger
	mu       sync.RWMutex
	inflight sync.WaitGroup
}

func NewEventBus(logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{
		handlers: make(map[string][]subscriber),
		logger:   logger,
	}
}

// Subscribe registers handler for every given event type and returns a func
// that removes all of those registrations.
func (eb *EventBus) Subscribe(handler Handler, eventTypes ...string) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eb.nextID
	for _, eventType := range eventTypes {
		eb.handlers[eventType] = append(eb.handlers[eventType], subscriber{id: id, handler: handler})
		eb.logger.Debug("event handler registered",
			"event_type", eventType,
			"total_handlers", len(eb.handlers[eventType]))
	}

	var once sync.Once
	return func() {
		once.Do(func() { eb.remove(id, eventTypes) })
	}
}

func (eb *EventBus) remove(id uint64, eventTypes []string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for _, eventType := range eventTypes {
		subs := eb.handlers[eventType]
		kept := subs[:0]
		for _, s := range subs {
			if s.id != id {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(eb.handlers, eventType)
			continue
		}
		eb.handlers[eventType] = kept
	}
}

func (eb *EventBus) snapshot(eventType string) []subscriber {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	subs := eb.handlers[eventType]
	out := make([]subscriber, len(subs))
	copy(out, subs)
	return out
}

// Publish delivers event to each handler on its own goroutine. Handlers get a
// context that is detached from the caller's cancellation.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	subs := eb.snapshot(event.EventType())
	if len(subs) == 0 {
		eb.logger.Debug("no handlers for event type", "event_type", event.EventType())
		return nil
	}

	eb.logger.Info("publishing event",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"handlers_count", len(subs))

	detached := context.WithoutCancel(ctx)
	for _, s := range subs {
		eb.inflight.Add(1)
		go func(h Handler) {
			defer eb.inflight.Done()
			if err := h(detached, event); err != nil {
				eb.logger.Error("event handler failed",
					"event_type", event.EventType(),
					"event_id", event.EventID(),
					"error", err)
			}
		}(s.handler)
	}

	return nil
}

func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	subs := eb.snapshot(event.EventType())
	if len(subs) == 0 {
		eb.logger.Debug("no handlers for event type", "event_type", event.EventType())
		return nil
	}

	eb.logger.Info("publishing event synchronously",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"handlers_count", len(subs))

	for _, s := range subs {
		if err := s.handler(ctx, event); err != nil {
			eb.logger.Error("event handler failed",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"error", err)
			return fmt.Errorf("handler failed for event %s: %w", event.EventType(), err)
		}
	}

	return nil
}

// Drain blocks until every asynchronously dispatched handler has returned.
func (eb *EventBus) Drain() {
	eb.inflight.Wait()
}
