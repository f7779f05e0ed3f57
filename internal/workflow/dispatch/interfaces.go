package dispatch

import (
	"context"

	"github.com/Cyclone1070/vizagent/internal/models"
	provider "github.com/Cyclone1070/vizagent/internal/provider/models"
	"github.com/Cyclone1070/vizagent/internal/tool"
	"github.com/Cyclone1070/vizagent/internal/workflow"
)

// llmProvider communicates with an LLM.
type llmProvider interface {
	// Generate sends one request to the LLM and returns its response.
	Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error)
}

// toolManager manages tool storage and execution.
type toolManager interface {
	// Declarations returns all tool schemas for the LLM.
	Declarations() []tool.Declaration

	// Execute runs a tool call and returns the rendered artifact.
	// It emits ToolStartEvent and ToolEndEvent to the events channel.
	Execute(ctx context.Context, call models.ToolCall, events chan<- workflow.Event) (*models.VisualizationArtifact, error)
}
