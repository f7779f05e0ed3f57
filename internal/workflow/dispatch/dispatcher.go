// Package dispatch runs the single-turn exchange with the model: one prompt,
// one tool call, one report.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Cyclone1070/vizagent/internal/config"
	"github.com/Cyclone1070/vizagent/internal/models"
	provider "github.com/Cyclone1070/vizagent/internal/provider/models"
	"github.com/Cyclone1070/vizagent/internal/report"
	"github.com/Cyclone1070/vizagent/internal/tool"
	"github.com/Cyclone1070/vizagent/internal/workflow"
)

// maxQuoted bounds how much of an unexpected text answer ends up in a report.
const maxQuoted = 200

// defaultRetryDelay is the wait before retrying a model error that carries
// no retry-after hint.
const defaultRetryDelay = time.Second

type Dispatcher struct {
	provider          llmProvider
	tools             toolManager
	events            chan<- workflow.Event
	systemInstruction string
	genConfig         *provider.GenerateConfig
	timeout           time.Duration
	maxRetries        int
	retryDelay        time.Duration
}

// NewDispatcher creates a dispatcher. events may be nil.
func NewDispatcher(provider llmProvider, tools toolManager, events chan<- workflow.Event, cfg config.ProviderConfig) *Dispatcher {
	return &Dispatcher{
		provider:          provider,
		tools:             tools,
		events:            events,
		systemInstruction: cfg.SystemInstruction,
		genConfig:         generateConfig(cfg),
		timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
		maxRetries:        cfg.MaxRetries,
		retryDelay:        defaultRetryDelay,
	}
}

// generateConfig returns nil when no sampling parameter is set.
func generateConfig(cfg config.ProviderConfig) *provider.GenerateConfig {
	if cfg.Temperature == nil && cfg.TopP == nil && cfg.MaxOutputTokens == nil {
		return nil
	}
	return &provider.GenerateConfig{
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
}

// Run asks the model to plot points through the declared tools and returns
// the resulting report. Every failure is folded into an error report; Run
// never returns an error and never panics.
func (d *Dispatcher) Run(ctx context.Context, points []models.DataPoint) (rep report.Report) {
	defer workflow.Emit(ctx, d.events, workflow.DoneEvent{})
	defer func() {
		if r := recover(); r != nil {
			slog.Error("dispatch: panic", "panic", r)
			rep = report.Failure(fmt.Errorf("%w: internal error: %v", ErrDispatch, r))
		}
	}()

	if len(points) == 0 {
		return report.Errorf("Could not generate graph: %v.", ErrNoData)
	}

	artifact, err := d.dispatch(ctx, points)
	if err != nil {
		slog.Warn("dispatch: failed", "err", err)
		return report.Failure(err)
	}
	return report.Assemble(points, artifact)
}

func (d *Dispatcher) dispatch(ctx context.Context, points []models.DataPoint) (*models.VisualizationArtifact, error) {
	prompt, err := BuildPrompt(points)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	decls := d.tools.Declarations()
	call, err := d.ask(ctx, prompt, decls)
	if err != nil {
		return nil, err
	}

	if err := checkIntent(call, decls); err != nil {
		return nil, err
	}

	slog.Info("dispatch: tool call", "tool", call.Name, "points", len(points))
	return d.tools.Execute(ctx, call, d.events)
}

// ask sends the prompt and reduces the tagged response to a single tool call.
func (d *Dispatcher) ask(ctx context.Context, prompt string, decls []tool.Declaration) (models.ToolCall, error) {
	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	workflow.Emit(ctx, d.events, workflow.ThinkingEvent{})

	resp, err := d.generate(callCtx, &provider.GenerateRequest{
		Prompt:            prompt,
		SystemInstruction: d.systemInstruction,
		Config:            d.genConfig,
		Tools:             decls,
	})
	if err != nil {
		return models.ToolCall{}, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	if resp == nil {
		return models.ToolCall{}, fmt.Errorf("%w: empty response", ErrModelUnavailable)
	}

	content := resp.Content
	switch content.Type {
	case provider.ResponseTypeToolCall:
		switch n := len(content.ToolCalls); {
		case n == 0:
			return models.ToolCall{}, ErrNoToolCall
		case n > 1:
			return models.ToolCall{}, fmt.Errorf("%w: got %d (%s)", ErrMultipleToolCalls, n, callNames(content.ToolCalls))
		}
		slog.Debug("dispatch: model answered", "calls", 1, "tokens", resp.Metadata.TotalTokens)
		return content.ToolCalls[0], nil

	case provider.ResponseTypeText:
		workflow.Emit(ctx, d.events, workflow.TextEvent{Text: content.Text})
		return models.ToolCall{}, fmt.Errorf("%w: model answered with text: %q", ErrNoToolCall, truncate(content.Text, maxQuoted))

	case provider.ResponseTypeRefusal:
		return models.ToolCall{}, fmt.Errorf("%w: model refused: %s", ErrNoToolCall, content.RefusalReason)

	default:
		return models.ToolCall{}, fmt.Errorf("%w: unexpected response type %q", ErrMalformedIntent, content.Type)
	}
}

// generate calls the model, retrying retryable errors up to maxRetries times.
// A retry whose wait would pass the call deadline is not attempted.
func (d *Dispatcher) generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	resp, err := d.provider.Generate(ctx, req)
	for attempt := 1; err != nil && attempt <= d.maxRetries && provider.IsRetryable(err); attempt++ {
		wait := d.retryDelay
		if after := provider.GetRetryAfter(err); after != nil {
			wait = *after
		}
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			return nil, err
		}

		slog.Warn("dispatch: retrying model call", "attempt", attempt, "wait", wait, "err", err)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, err
		case <-timer.C:
		}
		resp, err = d.provider.Generate(ctx, req)
	}
	return resp, err
}

// checkIntent verifies the call names a declared tool and carries every
// argument the declaration requires.
func checkIntent(call models.ToolCall, decls []tool.Declaration) error {
	var decl *tool.Declaration
	for i := range decls {
		if decls[i].Name == call.Name {
			decl = &decls[i]
			break
		}
	}
	if decl == nil {
		return fmt.Errorf("%w: %w: %q", ErrDispatch, ErrUnknownTool, call.Name)
	}

	if decl.Parameters == nil {
		return nil
	}
	for _, name := range decl.Parameters.Required {
		if v, ok := call.Args[name]; !ok || v == nil {
			return fmt.Errorf("%w: %s call is missing %q", ErrMalformedIntent, call.Name, name)
		}
	}
	return nil
}

func callNames(calls []models.ToolCall) string {
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
