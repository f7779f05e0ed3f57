// Package gemini implements provider.Provider on top of the Google Gen AI SDK.
package gemini

import (
	"context"
	"time"

	provider "github.com/Cyclone1070/vizagent/internal/provider/models"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client    GeminiClient
	modelName string
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string) *GeminiProvider {
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
	}
}

// Generate sends a request to the Gemini API and returns the response.
func (p *GeminiProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	contents := toGeminiContents(req.Prompt)
	config := toGeminiConfig(req)

	start := time.Now()
	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	out, err := fromGeminiResponse(resp, p.modelName)
	if out != nil {
		out.Metadata.LatencyMs = time.Since(start).Milliseconds()
	}
	return out, err
}

// GetModel returns the configured model name.
func (p *GeminiProvider) GetModel() string {
	return p.modelName
}
