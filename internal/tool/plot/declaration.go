package plot

import "github.com/Cyclone1070/vizagent/internal/tool"

// ToolName is the name the model must use to invoke the plotting tool.
const ToolName = "generate_plot_base64"

// Declare returns the plotting tool's declaration. It is static: every call
// returns an equal value.
func Declare() tool.Declaration {
	return tool.Declaration{
		Name:        ToolName,
		Description: "Generates a scatter plot with a linear trend line from a list of points and returns it as a base64 encoded PNG image.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"data": {
					Type:        tool.TypeArray,
					Description: "A list of objects representing the data to plot. Each object has a numeric x and a numeric y.",
					Items: &tool.Schema{
						Type: tool.TypeObject,
						Properties: map[string]*tool.Schema{
							"x": {Type: tool.TypeNumber, Description: "Horizontal coordinate"},
							"y": {Type: tool.TypeNumber, Description: "Vertical coordinate"},
						},
						Required: []string{"x", "y"},
					},
				},
			},
			Required: []string{"data"},
		},
	}
}
