package toolmanager

import (
	"context"

	"github.com/Cyclone1070/vizagent/internal/models"
	"github.com/Cyclone1070/vizagent/internal/tool"
)

// Tool is a visualization tool the model may invoke by name.
type Tool interface {
	// Name returns the tool's identifier.
	Name() string

	// Declaration returns the tool's schema for the LLM.
	Declaration() tool.Declaration

	// Execute runs the tool with the arguments chosen by the model.
	Execute(ctx context.Context, args map[string]any) (*models.VisualizationArtifact, error)
}
