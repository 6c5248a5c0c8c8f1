package llm

import (
	"context"
	"sync"
)

// Mock is a scripted Client for tests and local dry runs. Responses are
// returned in order; once exhausted, the last response repeats. An error
// scheduled for call N (zero-based) is returned instead of a response.
type Mock struct {
	mu        sync.Mutex
	Responses []string
	Errors    map[int]error
	Prompts   []Prompt
	calls     int
}

// Complete records the prompt and returns the next scripted response.
func (m *Mock) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.calls
	m.calls++
	m.Prompts = append(m.Prompts, prompt)

	if err, ok := m.Errors[n]; ok {
		return "", err
	}
	if len(m.Responses) == 0 {
		return "mock response", nil
	}
	if n >= len(m.Responses) {
		n = len(m.Responses) - 1
	}
	return m.Responses[n], nil
}

// Calls returns how many times Complete has been invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
