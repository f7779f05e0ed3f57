package main

import (
	"encoding/json"

	"github.com/Cyclone1070/vizagent/internal/tool/plot"
	"github.com/Cyclone1070/vizagent/internal/workflow/toolmanager"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool declarations sent to the model",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tools := toolmanager.NewToolManager(plot.NewTool(cfg))
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(tools.Declarations())
	},
}
