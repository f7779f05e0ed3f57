package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Cyclone1070/vizagent/internal/config"
	"github.com/Cyclone1070/vizagent/internal/dependency"
	"github.com/Cyclone1070/vizagent/internal/export"
	"github.com/Cyclone1070/vizagent/internal/report"
	"github.com/Cyclone1070/vizagent/internal/ui"
	"github.com/Cyclone1070/vizagent/internal/workflow"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errReportFailed = errors.New("report finished with status error")

var (
	reportFormat string
	reportOut    string
	reportQuiet  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch the metrics, have the model plot them and print the report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "output format: text, json or yaml")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write the decoded plot to this file")
	reportCmd.Flags().BoolVarP(&reportQuiet, "quiet", "q", false, "hide progress lines")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := checkFormat(reportFormat); err != nil {
		return err
	}

	events := make(chan workflow.Event, 8)
	progress := make(chan struct{})
	go func() {
		defer close(progress)
		if reportQuiet {
			for range events {
			}
			return
		}
		ui.WatchEvents(cmd.ErrOrStderr(), events)
	}()

	opts := append([]dependency.Option{dependency.WithEvents(events)}, containerOptions...)
	c, err := dependency.New(cmd.Context(), cfg, opts...)
	if err != nil {
		close(events)
		<-progress
		return err
	}

	slog.Info("vizagent: generating report", "model", c.Provider().GetModel())
	rep, err := c.Agent().GenerateReport(cmd.Context())
	close(events)
	<-progress
	if err != nil {
		return err
	}

	if reportOut != "" && rep.Visualization != nil {
		if err := export.NewFileExporter().SaveVisualization(reportOut, rep.Visualization); err != nil {
			return err
		}
	}

	if err := writeReport(cmd.OutOrStdout(), rep, reportFormat, reportOut, cfg.UI); err != nil {
		return err
	}
	if rep.Status != report.StatusSuccess {
		return errReportFailed
	}
	return nil
}

func checkFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeReport(w io.Writer, rep report.Report, format, imagePath string, uiCfg config.UIConfig) error {
	if err := rep.Validate(); err != nil {
		return fmt.Errorf("invalid report: %w", err)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rep)
	default:
		rd, err := ui.NewRenderer(uiCfg)
		if err != nil {
			return err
		}
		out, err := rd.Render(rep, imagePath)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
}
