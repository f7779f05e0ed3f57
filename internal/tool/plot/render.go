// Package plot implements the visualization tool: it turns a sequence of data
// points into a scatter chart with a trend line, rendered headless to PNG.
package plot

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/color"
	"sync"

	"github.com/Cyclone1070/vizagent/internal/config"
	"github.com/Cyclone1070/vizagent/internal/models"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg" // registers the png format
)

const (
	dataLegend = "Data Points"
	imgFormat  = "png"
)

var (
	pointColor = color.RGBA{R: 0x4A, G: 0x90, B: 0xE2, A: 0xFF}
	edgeColor  = color.RGBA{R: 0x1F, G: 0x54, B: 0x8F, A: 0xFF}
	trendColor = color.RGBA{R: 0xFF, A: 0xB3}
	gridColor  = color.Gray{Y: 0xC8}
)

// Options controls chart labels and canvas size.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions mirrors config.DefaultConfig().Render.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig().Render)
}

// OptionsFromConfig converts the render section of the configuration.
func OptionsFromConfig(rc config.RenderConfig) Options {
	return Options{
		Title:  rc.Title,
		XLabel: rc.XLabel,
		YLabel: rc.YLabel,
		Width:  vg.Length(rc.WidthInches) * vg.Inch,
		Height: vg.Length(rc.HeightInches) * vg.Inch,
	}
}

// chart is a fully assembled plot, ready to be drawn.
type chart struct {
	plot   *gplot.Plot
	trend  *Fit
	legend []string
}

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

func acquireBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func releaseBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}

// Render draws points as a PNG scatter chart and returns it base64 encoded.
// A trend line is added when there are at least two points.
func Render(points []models.DataPoint, opts Options) (*models.VisualizationArtifact, error) {
	c, err := newChart(points, opts)
	if err != nil {
		return nil, err
	}

	buf := acquireBuffer()
	defer releaseBuffer(buf)

	if err := c.writePNG(buf, opts); err != nil {
		return nil, err
	}

	return &models.VisualizationArtifact{
		MimeType: models.MimeTypePNG,
		Encoding: models.EncodingBase64,
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

func newChart(points []models.DataPoint, opts Options) (*chart, error) {
	if len(points) == 0 {
		return nil, malformed("no data points")
	}
	xs, ys := models.SplitXY(points)
	for i := range points {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			return nil, malformed("point %d is not a finite (x, y) pair", i)
		}
	}

	p := gplot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true
	p.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Vertical.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(grid)

	xys := make(plotter.XYs, len(points))
	for i := range points {
		xys[i].X = xs[i]
		xys[i].Y = ys[i]
	}

	c := &chart{plot: p, legend: []string{dataLegend}}

	var trend *plotter.Line
	if fit, ok := LinearFit(xs, ys); ok {
		line, err := plotter.NewLine(trendXYs(xs, fit))
		if err != nil {
			return nil, encodingFailure(err)
		}
		line.LineStyle.Color = trendColor
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		trend = line
		c.trend = &fit
		c.legend = append(c.legend, fit.Label())
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, encodingFailure(err)
	}
	scatter.GlyphStyle.Color = pointColor
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(5)

	ring, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, encodingFailure(err)
	}
	ring.GlyphStyle.Color = edgeColor
	ring.GlyphStyle.Shape = draw.RingGlyph{}
	ring.GlyphStyle.Radius = vg.Points(5)

	p.Add(scatter, ring)
	p.Legend.Add(dataLegend, scatter)
	if trend != nil {
		p.Add(trend)
		p.Legend.Add(c.trend.Label(), trend)
	}

	return c, nil
}

// trendXYs evaluates fit at every x, in input order.
func trendXYs(xs []float64, fit Fit) plotter.XYs {
	xys := make(plotter.XYs, len(xs))
	for i, x := range xs {
		xys[i].X = x
		xys[i].Y = fit.At(x)
	}
	return xys
}

func (c *chart) writePNG(buf *bytes.Buffer, opts Options) error {
	wt, err := c.plot.WriterTo(opts.Width, opts.Height, imgFormat)
	if err != nil {
		return encodingFailure(err)
	}
	if _, err := wt.WriteTo(buf); err != nil {
		return encodingFailure(err)
	}
	if buf.Len() == 0 {
		return encodingFailure(errors.New("empty image buffer"))
	}
	return nil
}
