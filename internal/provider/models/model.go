package models

import (
	"github.com/Cyclone1070/vizagent/internal/models"
	"github.com/Cyclone1070/vizagent/internal/tool"
)

// GenerateRequest encapsulates all parameters for a single-turn generation.
type GenerateRequest struct {
	// Prompt is the user's input for this turn
	Prompt string

	// SystemInstruction steers the model; empty means none
	SystemInstruction string

	// Config contains optional generation parameters
	Config *GenerateConfig

	// Tools contains the declarations the model may invoke
	Tools []tool.Declaration
}

// GenerateConfig contains optional generation parameters.
// All fields are pointers to distinguish between "not set" and "zero value".
type GenerateConfig struct {
	Temperature     *float32
	TopP            *float32
	MaxOutputTokens *int32
}

// GenerateResponse contains the model's response and metadata.
type GenerateResponse struct {
	// Content contains the generated response
	Content ResponseContent

	// Metadata contains information about the generation
	Metadata ResponseMetadata
}

// ResponseContent is a union type representing different response types.
type ResponseContent struct {
	// Type indicates what the model produced
	Type ResponseType

	// For Type = ResponseTypeText
	Text string

	// For Type = ResponseTypeToolCall
	ToolCalls []models.ToolCall

	// For Type = ResponseTypeRefusal (safety block, policy violation)
	RefusalReason string
}

// ResponseType indicates the type of response from the model.
type ResponseType string

const (
	ResponseTypeText     ResponseType = "text"
	ResponseTypeToolCall ResponseType = "tool_call"
	ResponseTypeRefusal  ResponseType = "refusal"
)

// ResponseMetadata contains information about the generation.
type ResponseMetadata struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int

	ModelUsed string
	LatencyMs int64
}
