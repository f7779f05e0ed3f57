package dispatch

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/vizagent/internal/workflow/toolmanager"
)

var (
	// ErrModelUnavailable wraps transport failures and timeouts of the model call.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrDispatch is the parent of every failure to turn the model's answer
	// into exactly one tool execution.
	ErrDispatch = errors.New("dispatch failed")

	ErrNoToolCall        = fmt.Errorf("%w: no tool call", ErrDispatch)
	ErrMultipleToolCalls = fmt.Errorf("%w: multiple tool calls", ErrDispatch)
	ErrMalformedIntent   = fmt.Errorf("%w: malformed intent", ErrDispatch)

	// ErrUnknownTool is returned, wrapped in ErrDispatch, when the model names
	// a tool that was never declared.
	ErrUnknownTool = toolmanager.ErrUnknownTool

	// ErrNoData is reported when there is nothing to plot. The model is not called.
	ErrNoData = errors.New("no data to plot")
)
