package mocks

import (
	"context"
	"sync"

	"github.com/osse101/QuestAcademy_Go/internal/event"
)

// Publisher records published events for assertions
type Publisher struct {
	mu     sync.Mutex
	events []event.Event
}

// PublishWithRetry records the event
func (p *Publisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

// Events returns the recorded events in publish order
func (p *Publisher) Events() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Event, len(p.events))
	copy(out, p.events)
	return out
}

// OfType returns the recorded events of the given type
func (p *Publisher) OfType(t event.Type) []event.Event {
	var out []event.Event
	for _, evt := range p.Events() {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}
