package llm

import (
	"context"
	"errors"
	"sync"
)

// ErrNoMoreResponses is returned by MockProvider when its queue is empty.
var ErrNoMoreResponses = errors.New("mock provider: no more responses")

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content string
	Err     error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all prompts.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Prompts   []string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Complete returns the next canned response or ErrNoMoreResponses when the
// queue is empty.
func (m *MockProvider) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)

	if len(m.responses) == 0 {
		return "", ErrNoMoreResponses
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Content, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Complete calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
