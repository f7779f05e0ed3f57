// Package models holds the value types shared by the data source, the
// visualization tool, the dispatcher and the report assembler.
package models

// DataPoint is a single (x, y) sample.
type DataPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Encoding names the text encoding of an artifact payload.
type Encoding string

const (
	EncodingBase64 Encoding = "base64"
)

// MimeTypePNG is the only raster format the visualization tool produces.
const MimeTypePNG = "image/png"

// VisualizationArtifact is a rendered image carried verbatim inside a report.
type VisualizationArtifact struct {
	MimeType string   `json:"mime_type" yaml:"mime_type"`
	Encoding Encoding `json:"encoding" yaml:"encoding"`
	Data     string   `json:"data" yaml:"data"`
}

// ToolCall represents a structured tool invocation from the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// SplitXY returns the X and Y coordinates of points as parallel slices.
func SplitXY(points []DataPoint) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}
