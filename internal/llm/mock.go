package llm

import (
	"context"
	"sync"
)

// MockClient is an in-memory Client for tests. It records every prompt
// it receives and replays canned responses.
type MockClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Prompts   []string
	calls     int
}

func (m *MockClient) Name() string { return "mock" }
func (m *MockClient) Close() error { return nil }

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "generated documentation", nil
	}
	resp := m.Responses[m.calls%len(m.Responses)]
	m.calls++
	return resp, nil
}
