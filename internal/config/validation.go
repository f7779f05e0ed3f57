package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Provider
	if strings.TrimSpace(c.Provider.Model) == "" {
		errs = append(errs, "provider.model must not be empty")
	}
	if strings.TrimSpace(c.Provider.APIKeyEnv) == "" {
		errs = append(errs, "provider.api_key_env must not be empty")
	}
	if c.Provider.TimeoutSeconds < 1 {
		errs = append(errs, "provider.timeout_seconds must be >= 1")
	}
	if c.Provider.MaxRetries < 0 {
		errs = append(errs, "provider.max_retries must be >= 0")
	}
	if t := c.Provider.Temperature; t != nil && (*t < 0 || *t > 2) {
		errs = append(errs, "provider.temperature must be between 0 and 2")
	}
	if p := c.Provider.TopP; p != nil && (*p < 0 || *p > 1) {
		errs = append(errs, "provider.top_p must be between 0 and 1")
	}
	if m := c.Provider.MaxOutputTokens; m != nil && *m < 1 {
		errs = append(errs, "provider.max_output_tokens must be >= 1")
	}

	// Data source
	if strings.TrimSpace(c.DataSource.DSN) == "" {
		errs = append(errs, "data_source.dsn must not be empty")
	}
	if strings.TrimSpace(c.DataSource.Query) == "" {
		errs = append(errs, "data_source.query must not be empty")
	}

	// Render
	if c.Render.WidthInches <= 0 {
		errs = append(errs, "render.width_inches must be > 0")
	}
	if c.Render.HeightInches <= 0 {
		errs = append(errs, "render.height_inches must be > 0")
	}

	// Server
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, "server.addr must not be empty")
	}
	if c.Server.ShutdownTimeoutSeconds < 1 {
		errs = append(errs, "server.shutdown_timeout_seconds must be >= 1")
	}

	// UI
	if c.UI.WordWrap < 0 {
		errs = append(errs, "ui.word_wrap must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
