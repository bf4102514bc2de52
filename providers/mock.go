package providers

import (
	"context"
	"sync"
)

// MockProvider is a Provider implementation for testing and development.
// It returns scripted responses without making any API calls and records
// every prompt it receives.
type MockProvider struct {
	mu        sync.Mutex
	id        string
	responses []string
	err       error
	calls     []string
}

// NewMockProvider creates a mock provider that returns response for every call.
func NewMockProvider(id, response string) *MockProvider {
	return &MockProvider{
		id:        id,
		responses: []string{response},
	}
}

// NewMockProviderWithResponses creates a mock provider that returns the given
// responses in order, repeating the last one when exhausted.
func NewMockProviderWithResponses(id string, responses ...string) *MockProvider {
	return &MockProvider{
		id:        id,
		responses: responses,
	}
}

// FailWith makes every subsequent Generate call return err.
func (m *MockProvider) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// ID returns the provider identifier.
func (m *MockProvider) ID() string {
	return m.id
}

// Generate returns the next scripted response or the configured error.
func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, prompt)

	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", ErrEmptyResponse
	}

	response := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return response, nil
}

// Close is a no-op.
func (m *MockProvider) Close() error {
	return nil
}

// Calls returns the prompts received so far.
func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// LastPrompt returns the most recent prompt, or "" if none.
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ""
	}
	return m.calls[len(m.calls)-1]
}
