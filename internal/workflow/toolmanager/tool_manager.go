package toolmanager

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/Cyclone1070/vizagent/internal/models"
	"github.com/Cyclone1070/vizagent/internal/tool"
	"github.com/Cyclone1070/vizagent/internal/workflow"
)

// ErrUnknownTool is returned when a call names a tool that was never registered.
var ErrUnknownTool = errors.New("unknown tool")

// ToolManager maps tool names to implementations. Calls are only ever routed
// by exact name.
type ToolManager struct {
	registry map[string]Tool
}

func NewToolManager(tools ...Tool) *ToolManager {
	tm := &ToolManager{
		registry: make(map[string]Tool),
	}
	for _, t := range tools {
		tm.Register(t)
	}
	return tm
}

// Register adds t, replacing any tool with the same name.
func (m *ToolManager) Register(t Tool) {
	m.registry[t.Name()] = t
}

// Declarations returns every registered declaration sorted by name.
func (m *ToolManager) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(m.registry))
	for _, t := range m.registry {
		decls = append(decls, t.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Lookup returns the tool registered under name.
func (m *ToolManager) Lookup(name string) (Tool, bool) {
	t, ok := m.registry[name]
	return t, ok
}

// Execute runs call against the registered tool of the same name. It emits a
// ToolStartEvent and a ToolEndEvent on events, which may be nil.
func (m *ToolManager) Execute(ctx context.Context, call models.ToolCall, events chan<- workflow.Event) (*models.VisualizationArtifact, error) {
	t, ok := m.registry[call.Name]
	if !ok {
		err := fmt.Errorf("%w: %q (available: %s)", ErrUnknownTool, call.Name, strings.Join(m.names(), ", "))
		workflow.Emit(ctx, events, workflow.ToolStartEvent{ToolName: call.Name})
		workflow.Emit(ctx, events, workflow.ToolEndEvent{
			ToolName: call.Name,
			Display:  "Invalid tool request",
			Err:      err,
		})
		return nil, err
	}

	workflow.Emit(ctx, events, workflow.ToolStartEvent{
		ToolName:       call.Name,
		RequestDisplay: describeArgs(call.Args),
	})

	artifact, err := t.Execute(ctx, call.Args)
	if err != nil {
		workflow.Emit(ctx, events, workflow.ToolEndEvent{
			ToolName: call.Name,
			Display:  "Failed",
			Err:      err,
		})
		return nil, fmt.Errorf("%s: %w", call.Name, err)
	}

	workflow.Emit(ctx, events, workflow.ToolEndEvent{
		ToolName: call.Name,
		Display:  fmt.Sprintf("Rendered %s (%d bytes encoded)", artifact.MimeType, len(artifact.Data)),
	})
	return artifact, nil
}

func (m *ToolManager) names() []string {
	names := make([]string, 0, len(m.registry))
	for name := range m.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// describeArgs summarizes arguments for display, e.g. "data: 7 items".
func describeArgs(args map[string]any) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := reflect.ValueOf(args[k])
		if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
			parts = append(parts, fmt.Sprintf("%s: %d items", k, v.Len()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, args[k]))
	}
	return strings.Join(parts, ", ")
}
