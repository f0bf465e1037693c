package pubsub

import (
	"context"
	"sync"
)

// Mock is an in memory pubsub client for tests. Published events are
// delivered synchronously to the registered callbacks and remembered for
// later inspection.
type Mock struct {
	mu        sync.Mutex
	handlers  map[string][]EventHandler
	Published map[string][]Message
}

// NewMock returns a new mock pubsub client
func NewMock() *Mock {
	return &Mock{
		handlers:  make(map[string][]EventHandler),
		Published: make(map[string][]Message),
	}
}

// Publish marshals the event, stores it and runs any subscribed callback
func (m *Mock) Publish(ctx context.Context, topic string, payload Event) error {
	msg, err := payload.Marshal()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.Published[topic] = append(m.Published[topic], msg)
	handlers := append([]EventHandler(nil), m.handlers[topic]...)
	m.mu.Unlock()

	for _, h := range handlers {
		if err := h(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers a callback for the topic
func (m *Mock) Subscribe(_ context.Context, topic string, callback EventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[topic] = append(m.handlers[topic], callback)
}
