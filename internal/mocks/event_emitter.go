package mocks

import (
	"context"
	"sync"

	"github.com/spotly/meeting-api/internal/events"
)

// MockEventEmitter implements events.EventEmitter and records emitted events.
type MockEventEmitter struct {
	EmitEventFn func(ctx context.Context, event *events.MeetingEvent) error

	mu     sync.Mutex
	Events []*events.MeetingEvent
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// EmitEvent records the event, then delegates to EmitEventFn if set.
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.MeetingEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()

	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	return nil
}

// Types returns the types of recorded events in emission order.
func (m *MockEventEmitter) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.Type)
	}
	return types
}
