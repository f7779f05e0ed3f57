package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/Cyclone1070/vizagent/internal/models"
)

const promptPrefix = "Use the plotting tool to generate a plot of the following data: "

// BuildPrompt embeds points as a JSON array of {"x","y"} objects.
func BuildPrompt(points []models.DataPoint) (string, error) {
	data, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("encode data for prompt: %w", err)
	}
	return promptPrefix + string(data), nil
}
