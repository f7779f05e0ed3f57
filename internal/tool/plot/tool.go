package plot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/Cyclone1070/vizagent/internal/config"
	"github.com/Cyclone1070/vizagent/internal/models"
	"github.com/Cyclone1070/vizagent/internal/tool"
	"github.com/mitchellh/mapstructure"
)

// DataArg is the argument key carrying the points to plot.
const DataArg = "data"

// Tool adapts Render to the tool manager.
type Tool struct {
	opts Options
}

// NewTool creates the plotting tool using the render settings in cfg.
func NewTool(cfg *config.Config) *Tool {
	return &Tool{opts: OptionsFromConfig(cfg.Render)}
}

// Name implements toolmanager's tool interface.
func (t *Tool) Name() string {
	return ToolName
}

// Declaration implements toolmanager's tool interface.
func (t *Tool) Declaration() tool.Declaration {
	return Declare()
}

// Execute decodes args["data"] and renders it.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (*models.VisualizationArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	points, err := DecodePoints(args[DataArg])
	if err != nil {
		return nil, err
	}

	return Render(points, t.opts)
}

// pointArg uses pointers so a missing coordinate is distinguishable from zero.
type pointArg struct {
	X *float64 `mapstructure:"x"`
	Y *float64 `mapstructure:"y"`
}

// DecodePoints converts the loosely typed "data" argument produced by the
// model (a list of {"x": .., "y": ..} maps) into data points.
func DecodePoints(raw any) ([]models.DataPoint, error) {
	if raw == nil {
		return nil, malformed("missing %q argument", DataArg)
	}

	var args []pointArg
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: numericCoordinates,
		Result:     &args,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &RenderError{Kind: ErrMalformedInput, Err: err}
	}

	points := make([]models.DataPoint, 0, len(args))
	for i, a := range args {
		if a.X == nil || a.Y == nil {
			return nil, &RenderError{
				Kind: ErrMalformedInput,
				Err:  fmt.Errorf("point %d: %w", i, errMissingCoordinate),
			}
		}
		points = append(points, models.DataPoint{X: *a.X, Y: *a.Y})
	}
	return points, nil
}

var (
	errMissingCoordinate = errors.New("missing x or y coordinate")
	errNotNumeric        = errors.New("coordinate is not a number")
)

var jsonNumberType = reflect.TypeOf(json.Number(""))

// numericCoordinates lets only numbers reach a coordinate: strings, bools and
// nested values are rejected instead of coerced.
func numericCoordinates(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Float64 || from == jsonNumberType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return data, nil
	}
	return nil, fmt.Errorf("%w: got %s", errNotNumeric, from)
}
