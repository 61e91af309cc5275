package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Request captures the normalized model input produced by an agent: a system
// prompt describing the role, the user prompt carrying stage input, and
// generation parameters. JSONOnly asks the provider to constrain output to a
// single JSON object (used by structured calls).
type Request struct {
	System      string  `json:"system"`
	User        string  `json:"user"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int64   `json:"max_tokens,omitempty"`
	JSONOnly    bool    `json:"json_only,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed model output for one request.
type Response struct {
	Text         string      `json:"text"`
	FinishReason string      `json:"finish_reason,omitempty"`
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface agents require to drive generation. A
// remote call that hangs is the caller's problem: agents wrap Complete in a
// deadline race and abandon it when the budget elapses, so implementations
// must honor ctx cancellation.
type Model interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are matched by substring against the user prompt; latency and
// error injection support timeout and failure-path testing.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses []mockResponse
	fallback  string
	latency   time.Duration
	err       error
	calls     int
}

type mockResponse struct {
	match string
	text  string
}

// NewMockModel constructs a MockModel with a generic fallback completion.
func NewMockModel() *MockModel {
	return &MockModel{
		info:     Info{Name: "mock-model", Provider: "mock"},
		fallback: "mock completion",
	}
}

// AddResponse registers a canned completion returned when the user prompt
// contains match. Earlier registrations win.
func (m *MockModel) AddResponse(match, text string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{match: match, text: text})
	return m
}

// SetFallback replaces the completion used when no registration matches.
func (m *MockModel) SetFallback(text string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = text
	return m
}

// SetLatency delays every completion, for deadline-race tests.
func (m *MockModel) SetLatency(d time.Duration) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
	return m
}

// FailWith makes every completion resolve with err instead of text.
func (m *MockModel) FailWith(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Calls returns how many completions have been requested.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Complete implements Model with canned responses.
func (m *MockModel) Complete(ctx context.Context, req Request) (Response, error) {
	m.mu.Lock()
	m.calls++
	latency := m.latency
	err := m.err
	text := m.fallback
	for _, r := range m.responses {
		if strings.Contains(req.User, r.match) {
			text = r.text
			break
		}
	}
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return Response{}, ctx.Err()
		}
	}
	if err != nil {
		return Response{}, fmt.Errorf("mock model: %w", err)
	}
	return Response{Text: text, FinishReason: "stop"}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
