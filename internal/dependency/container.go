// Package dependency wires the report pipeline using go.uber.org/dig.
package dependency

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/dig"

	"github.com/Cyclone1070/vizagent/internal/agent"
	"github.com/Cyclone1070/vizagent/internal/config"
	"github.com/Cyclone1070/vizagent/internal/provider/gemini"
	provider "github.com/Cyclone1070/vizagent/internal/provider/models"
	"github.com/Cyclone1070/vizagent/internal/tool/plot"
	"github.com/Cyclone1070/vizagent/internal/web"
	"github.com/Cyclone1070/vizagent/internal/workflow"
	"github.com/Cyclone1070/vizagent/internal/workflow/dispatch"
	"github.com/Cyclone1070/vizagent/internal/workflow/toolmanager"
)

// Container holds the resolved services.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider provider.Provider
	tools    *toolmanager.ToolManager
	agent    *agent.Agent
	server   *web.Server
}

func (c *Container) Provider() provider.Provider           { return c.provider }
func (c *Container) ToolManager() *toolmanager.ToolManager { return c.tools }
func (c *Container) Agent() *agent.Agent                   { return c.agent }
func (c *Container) Server() *web.Server                   { return c.server }

// Option customizes the container before services are resolved.
type Option func(*options)

type options struct {
	provider provider.Provider
	events   chan<- workflow.Event
	getenv   func(string) string
}

// WithProvider replaces the Gemini provider, e.g. with a test double.
func WithProvider(p provider.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithEvents routes dispatcher progress events to ch.
func WithEvents(ch chan<- workflow.Event) Option {
	return func(o *options) { o.events = ch }
}

// WithGetenv overrides how the API key variable is looked up.
func WithGetenv(getenv func(string) string) Option {
	return func(o *options) { o.getenv = getenv }
}

// New builds and wires all services from cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	o := options{getenv: os.Getenv}
	for _, opt := range opts {
		opt(&o)
	}

	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() chan<- workflow.Event { return o.events }); err != nil {
		return nil, err
	}
	if o.provider != nil {
		if err := d.Provide(func() provider.Provider { return o.provider }); err != nil {
			return nil, err
		}
	} else {
		if err := d.Provide(func(cfg *config.Config) (provider.Provider, error) {
			return newGeminiProvider(ctx, cfg, o.getenv)
		}); err != nil {
			return nil, err
		}
	}
	if err := d.Provide(newToolManager); err != nil {
		return nil, err
	}
	if err := d.Provide(newDispatcher); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgent); err != nil {
		return nil, err
	}
	if err := d.Provide(newServer); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		p provider.Provider,
		tools *toolmanager.ToolManager,
		a *agent.Agent,
		srv *web.Server,
	) {
		result = &Container{
			provider: p,
			tools:    tools,
			agent:    a,
			server:   srv,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build services: %w", dig.RootCause(err))
	}
	return result, nil
}

func newGeminiProvider(ctx context.Context, cfg *config.Config, getenv func(string) string) (provider.Provider, error) {
	apiKey := getenv(cfg.Provider.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set", cfg.Provider.APIKeyEnv)
	}
	client, err := gemini.NewClientFromAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return gemini.New(client, cfg.Provider.Model), nil
}

func newToolManager(cfg *config.Config) *toolmanager.ToolManager {
	return toolmanager.NewToolManager(plot.NewTool(cfg))
}

func newDispatcher(
	p provider.Provider,
	tools *toolmanager.ToolManager,
	events chan<- workflow.Event,
	cfg *config.Config,
) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(p, tools, events, cfg.Provider)
}

func newAgent(cfg *config.Config, d *dispatch.Dispatcher) *agent.Agent {
	return agent.New(cfg.DataSource, d)
}

func newServer(cfg *config.Config, a *agent.Agent) *web.Server {
	return web.NewServer(cfg.Server, web.NewReportAPI(a))
}
