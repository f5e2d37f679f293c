// Package llmtest provides a substitutable llm.Client for tests.
package llmtest

import (
	"context"
	"sync/atomic"

	"github.com/jonathan/readiness-check/internal/llm"
)

// MockLLMClient is a mock implementation of llm.Client
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string) (string, error)
	CloseFunc        func() error

	calls atomic.Int32
}

// GenerateJSON calls GenerateJSONFunc, or returns a complete critique when unset.
func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt)
	}
	return CompleteResponse, nil
}

// Provider returns a fixed provider name.
func (m *MockLLMClient) Provider() llm.Provider {
	return "mock"
}

// Model returns a fixed model name.
func (m *MockLLMClient) Model() string {
	return "mock-model"
}

// Close calls CloseFunc when set.
func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls reports how many times GenerateJSON was invoked.
func (m *MockLLMClient) Calls() int {
	return int(m.calls.Load())
}

// CompleteResponse is a well-formed model critique.
const CompleteResponse = `{
	"strengths": ["Solid fundamentals", "Clear communicator", "Ships projects"],
	"gaps": ["Testing depth", "System design", "Performance tuning"],
	"improvement_plan": ["Day 1-2: write tests", "Day 3-5: design a service", "Day 6-7: profile and optimize"],
	"feedback": "You are close to ready. Keep building.",
	"estimated_days": 10
}`
