package pubsub

import (
	"context"
	"sync"
)

var _ PubSubClient = (*MockPubSubClient)(nil)

// MockPubSubClient is a mock implementation of PubSubClient for testing.
// It is safe for concurrent use.
type MockPubSubClient struct {
	mu sync.Mutex

	// Spies for method calls
	PublishFunc func(event Event) error

	// Call records
	PublishCalls []Event
	Closed       bool
}

// NewMock creates a new mock PubSubClient.
func NewMock() *MockPubSubClient {
	return &MockPubSubClient{}
}

// Reset clears all call records.
func (m *MockPubSubClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
}

// Publish records the call and executes the mock function if provided.
func (m *MockPubSubClient) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, event)
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *MockPubSubClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Events returns a copy of every published event.
func (m *MockPubSubClient) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.PublishCalls...)
}
