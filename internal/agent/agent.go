// Package agent wires the data source, the dispatcher and the report
// assembler into the end-to-end report pipeline.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Cyclone1070/vizagent/internal/config"
	"github.com/Cyclone1070/vizagent/internal/datasource"
	"github.com/Cyclone1070/vizagent/internal/models"
	"github.com/Cyclone1070/vizagent/internal/report"
)

// runner turns data points into a report.
type runner interface {
	Run(ctx context.Context, points []models.DataPoint) report.Report
}

// Agent produces one report per GenerateReport call. It is safe for
// concurrent use: every call opens its own store.
type Agent struct {
	cfg        config.DataSourceConfig
	dispatcher runner
}

func New(cfg config.DataSourceConfig, dispatcher runner) *Agent {
	return &Agent{cfg: cfg, dispatcher: dispatcher}
}

// GenerateReport loads the metrics, asks the model to plot them and returns
// the report. The error is non-nil only when the data could not be read;
// every later failure is reported inside the Report.
func (a *Agent) GenerateReport(ctx context.Context) (report.Report, error) {
	points, err := a.load(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("generate report: %w", err)
	}

	slog.Info("agent: calling visualization tool", "points", len(points))
	return a.dispatcher.Run(ctx, points), nil
}

// load reads the points and releases the store before the model is called.
func (a *Agent) load(ctx context.Context) ([]models.DataPoint, error) {
	store, err := datasource.Open(ctx, a.cfg.DSN)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("agent: closing data source", "err", err)
		}
	}()

	if a.cfg.Seed {
		if err := store.Seed(ctx, datasource.DefaultMetrics); err != nil {
			return nil, err
		}
	}

	slog.Info("agent: simulated generated SQL query", "query", a.cfg.Query)
	return store.Fetch(ctx, a.cfg.Query)
}
