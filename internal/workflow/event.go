package workflow

import "context"

// Event is the interface for all workflow events.
// UI handles events via type switch.
type Event interface {
	isEvent()
}

// TextEvent is emitted when the model answers with text instead of a tool call.
type TextEvent struct {
	Text string
}

func (TextEvent) isEvent() {}

// ThinkingEvent is emitted while the model request is in flight.
type ThinkingEvent struct{}

func (ThinkingEvent) isEvent() {}

// DoneEvent is emitted when a dispatch run completes, successfully or not.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}

// ToolStartEvent is emitted when a tool execution begins.
type ToolStartEvent struct {
	ToolName       string
	RequestDisplay string // e.g., "7 data points"
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent is emitted when a tool execution completes.
// Err is nil on success.
type ToolEndEvent struct {
	ToolName string
	Display  string
	Err      error
}

func (ToolEndEvent) isEvent() {}

// Emit sends ev on events unless events is nil. It gives up and drops ev
// once ctx is done, so a stalled consumer cannot block a cancelled run.
func Emit(ctx context.Context, events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
