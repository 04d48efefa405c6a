package llm

import (
	"context"
	"sync"
)

// Step is one scripted Complete outcome for the mock provider.
type Step struct {
	Response string
	Err      error
}

// Mock is a deterministic Provider implementation for testing. Scripted
// steps are consumed in order; once exhausted (or when no script is set)
// every call returns the fixed Response/Err pair.
type Mock struct {
	Response string
	Err      error
	Script   []Step

	mu         sync.Mutex
	calls      int
	lastSystem string
	lastUser   string
}

// NewMock creates a mock provider with a fixed response.
func NewMock(response string) *Mock {
	return &Mock{Response: response}
}

// NewMockWithError creates a mock provider that always fails.
func NewMockWithError(err error) *Mock {
	return &Mock{Err: err}
}

// Complete records the prompts and returns the next scripted outcome.
func (m *Mock) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	call := m.calls
	m.calls++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt

	if call < len(m.Script) {
		step := m.Script[call]
		return step.Response, step.Err
	}
	return m.Response, m.Err
}

// Name returns the provider identifier.
func (m *Mock) Name() string {
	return "mock"
}

// Calls reports how many times Complete was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastUserPrompt returns the most recent user prompt passed to Complete.
func (m *Mock) LastUserPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUser
}

// LastSystemPrompt returns the most recent system prompt passed to Complete.
func (m *Mock) LastSystemPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSystem
}
