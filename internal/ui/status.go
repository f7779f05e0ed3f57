package ui

import (
	"fmt"
	"io"

	"github.com/Cyclone1070/vizagent/internal/workflow"
)

// RenderStatus renders one progress line for ev. Events without a visible
// status render as "".
func RenderStatus(ev workflow.Event) string {
	switch e := ev.(type) {
	case workflow.ThinkingEvent:
		return StatusThinkingStyle.Render("… Asking the model")
	case workflow.TextEvent:
		return StatusDefaultStyle.Render(fmt.Sprintf("… Model replied with text (%d chars)", len(e.Text)))
	case workflow.ToolStartEvent:
		line := fmt.Sprintf("→ %s", e.ToolName)
		if e.RequestDisplay != "" {
			line = fmt.Sprintf("%s %s", line, DimStyle.Render("("+e.RequestDisplay+")"))
		}
		return StatusRunningStyle.Render(line)
	case workflow.ToolEndEvent:
		if e.Err != nil {
			return StatusFailedStyle.Render(fmt.Sprintf("✘ %s: %s", e.ToolName, e.Display))
		}
		return StatusDoneStyle.Render(fmt.Sprintf("✔ %s: %s", e.ToolName, e.Display))
	case workflow.DoneEvent:
		return StatusDefaultStyle.Render("Done")
	default:
		return ""
	}
}

// WatchEvents writes a status line to w for every event until events is
// closed.
func WatchEvents(w io.Writer, events <-chan workflow.Event) {
	for ev := range events {
		if line := RenderStatus(ev); line != "" {
			fmt.Fprintln(w, line)
		}
	}
}
