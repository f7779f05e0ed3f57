// Package testhelpers provides shared test doubles and fixtures.
package testhelpers

import (
	"context"
	"sync"

	"github.com/Cyclone1070/vizagent/internal/models"
	provider "github.com/Cyclone1070/vizagent/internal/provider/models"
)

// MockProvider is a controllable mock for the Gemini provider.
// Responses are served in the order they were queued.
type MockProvider struct {
	mu            sync.Mutex
	responses     []queued
	responseIndex int
	calls         int
	modelName     string

	// OnGenerateCalled is a callback for observing Generate calls
	OnGenerateCalled func(*provider.GenerateRequest)
}

type queued struct {
	resp *provider.GenerateResponse
	err  error
}

// NewMockProvider creates a new mock provider with default settings
func NewMockProvider() *MockProvider {
	return &MockProvider{modelName: "mock-model"}
}

// WithTextResponse adds a text response to the queue
func (m *MockProvider) WithTextResponse(text string) *MockProvider {
	return m.with(&provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type: provider.ResponseTypeText,
			Text: text,
		},
	}, nil)
}

// WithToolCallResponse adds a tool call response to the queue
func (m *MockProvider) WithToolCallResponse(toolCalls ...models.ToolCall) *MockProvider {
	return m.with(&provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type:      provider.ResponseTypeToolCall,
			ToolCalls: toolCalls,
		},
	}, nil)
}

// WithRefusal adds a refusal to the queue
func (m *MockProvider) WithRefusal(reason string) *MockProvider {
	return m.with(&provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type:          provider.ResponseTypeRefusal,
			RefusalReason: reason,
		},
	}, nil)
}

// WithError makes the next Generate call fail with err
func (m *MockProvider) WithError(err error) *MockProvider {
	return m.with(nil, err)
}

// WithModel sets the model name reported by GetModel
func (m *MockProvider) WithModel(name string) *MockProvider {
	m.modelName = name
	return m
}

func (m *MockProvider) with(resp *provider.GenerateResponse, err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, queued{resp: resp, err: err})
	return m
}

// Generate implements the Provider interface
func (m *MockProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	if m.OnGenerateCalled != nil {
		m.OnGenerateCalled(req)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.responseIndex >= len(m.responses) {
		// Return a default text response if we run out
		return &provider.GenerateResponse{
			Content: provider.ResponseContent{
				Type: provider.ResponseTypeText,
				Text: "Done",
			},
		}, nil
	}

	q := m.responses[m.responseIndex]
	m.responseIndex++
	if q.err != nil {
		return nil, q.err
	}
	resp := *q.resp
	return &resp, nil
}

// GetModel implements the Provider interface
func (m *MockProvider) GetModel() string {
	return m.modelName
}

// Calls returns how many times Generate was called.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// PlotCall builds a tool call for the plotting tool carrying points as the
// loosely typed argument list a model would send.
func PlotCall(name string, points []models.DataPoint) models.ToolCall {
	data := make([]any, len(points))
	for i, p := range points {
		data[i] = map[string]any{"x": p.X, "y": p.Y}
	}
	return models.ToolCall{ID: "call-1", Name: name, Args: map[string]any{"data": data}}
}
