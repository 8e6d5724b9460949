package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Type names an event, e.g. "world.unlocked"
type Type string

// Event is the envelope carried by the bus. Payload is one of the *PayloadV1
// structs when built in-process, or a decoded JSON map after a round trip
// through the dead-letter file; use DecodePayload to read it either way.
type Event struct {
	Version    string         `json:"version"`
	Type       Type           `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    any            `json:"payload"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Handler consumes one event
type Handler func(ctx context.Context, event Event) error

type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus dispatches synchronously to in-process subscribers
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish calls every handler for the event's type in subscription order.
// A failing handler does not stop the rest. Failures come back as a
// *DeliveryError.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	return deliver(ctx, event, handlers)
}

func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Copy on write so a Publish holding the old slice is unaffected
	current := b.handlers[eventType]
	next := make([]Handler, len(current), len(current)+1)
	copy(next, current)
	b.handlers[eventType] = append(next, handler)
}

// DeliveryError lists the handlers that failed for one event. Errors of the
// individual handlers are reachable with errors.Is and errors.As.
type DeliveryError struct {
	Type   Type
	failed []Handler
	errs   []error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s %s (%d): %v", ErrMsgHandlersFailed, e.Type, len(e.errs), errors.Join(e.errs...))
}

func (e *DeliveryError) Unwrap() []error {
	return e.errs
}

// Redeliver calls only the handlers that failed, so subscribers that already
// handled the event do not see it twice.
func (e *DeliveryError) Redeliver(ctx context.Context, event Event) error {
	return deliver(ctx, event, e.failed)
}

func deliver(ctx context.Context, event Event, handlers []Handler) error {
	var (
		failed []Handler
		errs   []error
	)
	for _, handle := range handlers {
		if err := handle(ctx, event); err != nil {
			failed = append(failed, handle)
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &DeliveryError{Type: event.Type, failed: failed, errs: errs}
}
