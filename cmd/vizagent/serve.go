package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/vizagent/internal/dependency"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report dashboard over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := dependency.New(ctx, cfg, containerOptions...)
	if err != nil {
		return err
	}

	slog.Info("vizagent: serving", "addr", cfg.Server.Addr, "model", c.Provider().GetModel())
	fmt.Fprintf(cmd.OutOrStdout(), "Dashboard: http://%s/\nReport API: http://%s/api/report\n", displayAddr(cfg.Server.Addr), displayAddr(cfg.Server.Addr))
	return c.Server().Run(ctx)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
