package models

import "context"

// Provider defines the interface for LLM backends.
type Provider interface {
	// Generate sends a single request to the model and returns its answer.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// GetModel returns the active model name.
	GetModel() string
}
