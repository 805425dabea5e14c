package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned replies in order and records each request.
// Once the queue is empty it calls Fallback, or reports the provider as
// unavailable when Fallback is nil.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request

	Fallback func(req Request) (json.RawMessage, error)
}

// NewMockProvider creates a mock with the given replies queued.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// MockJSON queues v marshalled as the next reply.
func (m *MockProvider) MockJSON(v any) {
	b, err := json.Marshal(v)
	m.Enqueue(MockResponse{Content: b, Err: err})
}

// Enqueue appends a reply.
func (m *MockProvider) Enqueue(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, r)
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	var next MockResponse
	if len(m.responses) > 0 {
		next = m.responses[0]
		m.responses = m.responses[1:]
	} else if m.Fallback != nil {
		next.Content, next.Err = m.Fallback(req)
	} else {
		next.Err = &ErrProviderUnavailable{}
	}
	m.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, next.Content, "mock", stopEnd, next.Usage)
}

func (m *MockProvider) ModelID() string { return "mock" }

// Calls returns a copy of the requests received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
