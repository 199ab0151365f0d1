// Package render draws dashboard chart specs as PNG or SVG images.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Dan9191/credit-dashboard/internal/models"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnsupportedFormat is returned when a chart kind cannot be drawn in the requested format.
var ErrUnsupportedFormat = errors.New("unsupported format")

// palette follows the plotly default colour sequence
var palette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
	drawing.ColorFromHex("00cc96"),
	drawing.ColorFromHex("ab63fa"),
	drawing.ColorFromHex("ffa15a"),
	drawing.ColorFromHex("19d3f3"),
	drawing.ColorFromHex("ff6692"),
	drawing.ColorFromHex("b6e880"),
	drawing.ColorFromHex("ff97ff"),
	drawing.ColorFromHex("fecb52"),
}

func colorAt(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Renderer draws charts at a fixed size.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a renderer producing width×height images.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// PNG writes c as a PNG image. Empty charts are drawn as a captioned
// placeholder. Nothing is written to w when rendering fails.
func (r *Renderer) PNG(w io.Writer, c *models.Chart) error {
	if c.Empty {
		return r.Placeholder(w, c.Title, "No data for the current selection")
	}
	var buf bytes.Buffer
	if err := r.draw(&buf, c); err != nil {
		return fmt.Errorf("failed to render %s: %w", c.Name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) draw(w io.Writer, c *models.Chart) error {
	var err error
	switch c.Kind {
	case models.KindBar:
		err = r.bar(w, c)
	case models.KindPie:
		err = r.pie(w, c)
	case models.KindHistogram:
		err = r.histogram(w, c)
	case models.KindStackedBar:
		err = r.stacked(w, c)
	case models.KindLine:
		err = r.line(w, c)
	case models.KindScatter:
		err = r.scatter(w, c)
	case models.KindBox:
		err = r.box(w, c)
	case models.KindHeatmap:
		err = r.heatmapPNG(w, c)
	default:
		err = fmt.Errorf("%w: %s as png", ErrUnsupportedFormat, c.Kind)
	}
	return err
}

// SVG writes c as an SVG document. Only the heatmap has an SVG form.
func (r *Renderer) SVG(w io.Writer, c *models.Chart) error {
	if c.Kind != models.KindHeatmap {
		return fmt.Errorf("%w: %s as svg", ErrUnsupportedFormat, c.Kind)
	}
	return r.heatmapSVG(w, c)
}

// paddedRange spans vals with a 5% margin; a single value gets a unit margin.
func paddedRange(vals ...float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 0) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(lo)*0.05, 1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}
