package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Provider   ProviderConfig   `json:"provider"`
	DataSource DataSourceConfig `json:"data_source"`
	Render     RenderConfig     `json:"render"`
	Server     ServerConfig     `json:"server"`
	UI         UIConfig         `json:"ui"`
}

type ProviderConfig struct {
	Model             string `json:"model"`              // Default: gemini-2.5-flash
	APIKeyEnv         string `json:"api_key_env"`        // Default: GEMINI_API_KEY
	TimeoutSeconds    int    `json:"timeout_seconds"`    // Default: 60
	SystemInstruction string `json:"system_instruction"` // Sent with every request
	MaxRetries        int    `json:"max_retries"`        // Default: 1; retries of retryable model errors

	// Optional sampling parameters; unset leaves the model's defaults.
	Temperature     *float32 `json:"temperature,omitempty"`
	TopP            *float32 `json:"top_p,omitempty"`
	MaxOutputTokens *int32   `json:"max_output_tokens,omitempty"`
}

type DataSourceConfig struct {
	DSN   string `json:"dsn"`   // Default: :memory:
	Query string `json:"query"` // Stand-in for the generated SQL
	Seed  bool   `json:"seed"`  // Default: true (load the mock metrics table)
}

type RenderConfig struct {
	Title        string  `json:"title"`
	XLabel       string  `json:"x_label"`
	YLabel       string  `json:"y_label"`
	WidthInches  float64 `json:"width_inches"`  // Default: 8
	HeightInches float64 `json:"height_inches"` // Default: 5
}

type ServerConfig struct {
	Addr                   string `json:"addr"`                     // Default: :8080
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds"` // Default: 10
}

type UIConfig struct {
	Style    string `json:"style"`     // glamour style name. Default: auto
	WordWrap int    `json:"word_wrap"` // Default: 80; 0 keeps glamour's default
}

// DefaultSystemInstruction steers the model towards the declared plotting tool.
const DefaultSystemInstruction = "You are an assistant that can generate plots from data, using the generate_plot_base64 tool."

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Model:             "gemini-2.5-flash",
			APIKeyEnv:         "GEMINI_API_KEY",
			TimeoutSeconds:    60,
			SystemInstruction: DefaultSystemInstruction,
			MaxRetries:        1,
		},
		DataSource: DataSourceConfig{
			DSN:   ":memory:",
			Query: "SELECT x, y FROM metrics",
			Seed:  true,
		},
		Render: RenderConfig{
			Title:        "Agent Visualization: Performance Metrics (X vs. Y)",
			XLabel:       "Metric X (Input/Time)",
			YLabel:       "Metric Y (Output/Value)",
			WidthInches:  8,
			HeightInches: 5,
		},
		Server: ServerConfig{
			Addr:                   ":8080",
			ShutdownTimeoutSeconds: 10,
		},
		UI: UIConfig{
			Style:    "auto",
			WordWrap: 80,
		},
	}
}
