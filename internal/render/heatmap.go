package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/Dan9191/credit-dashboard/internal/models"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// coolwarm end points and midpoint
var (
	cool    = color.RGBA{R: 59, G: 76, B: 192, A: 255}
	neutral = color.RGBA{R: 221, G: 221, B: 221, A: 255}
	warm    = color.RGBA{R: 180, G: 4, B: 38, A: 255}
	missing = color.RGBA{R: 245, G: 245, B: 245, A: 255}
)

// coolwarm maps a coefficient in [-1, 1] onto a diverging blue-red scale
func coolwarm(v decimal.NullDecimal) color.RGBA {
	if !v.Valid {
		return missing
	}
	f := math.Max(-1, math.Min(1, v.Decimal.InexactFloat64()))
	if f < 0 {
		return blend(neutral, cool, -f)
	}
	return blend(neutral, warm, f)
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t)) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func cellText(v decimal.NullDecimal) string {
	if !v.Valid {
		return "n/a"
	}
	return v.Decimal.StringFixed(2)
}

func textColor(v decimal.NullDecimal) color.RGBA {
	if v.Valid && v.Decimal.Abs().GreaterThan(decimal.NewFromFloat(0.5)) {
		return paper
	}
	return ink
}

// heatmapLayout positions an n×n grid inside the canvas
type heatmapLayout struct {
	left, top, cell int
}

func (r *Renderer) layout(m *models.CorrMatrix) heatmapLayout {
	label := 0
	for _, c := range m.Columns {
		if w := textWidth(c); w > label {
			label = w
		}
	}
	left := label + 24
	top := 56
	n := len(m.Columns)
	if n == 0 {
		return heatmapLayout{left: left, top: top, cell: 0}
	}
	cell := (r.Width - left - 24) / n
	if h := (r.Height - top - 40) / n; h < cell {
		cell = h
	}
	return heatmapLayout{left: left, top: top, cell: cell}
}

func (r *Renderer) heatmapPNG(w io.Writer, c *models.Chart) error {
	m := c.Correlation
	if m == nil {
		return fmt.Errorf("heatmap %s has no correlation matrix", c.Name)
	}
	img := canvas(r.Width, r.Height)
	drawCentered(img, r.Width/2, 28, c.Title, ink)

	l := r.layout(m)
	for i := range m.Columns {
		y := l.top + i*l.cell
		drawText(img, 8, y+l.cell/2+4, m.Columns[i], ink)
		for j := range m.Columns {
			x := l.left + j*l.cell
			v := m.Values[i][j]
			rect := image.Rect(x+1, y+1, x+l.cell-1, y+l.cell-1)
			draw.Draw(img, rect, image.NewUniform(coolwarm(v)), image.Point{}, draw.Src)
			drawCentered(img, x+l.cell/2, y+l.cell/2+4, cellText(v), textColor(v))
		}
	}
	bottom := l.top + len(m.Columns)*l.cell + 18
	for j, name := range m.Columns {
		drawCentered(img, l.left+j*l.cell+l.cell/2, bottom, name, ink)
	}
	return png.Encode(w, img)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (r *Renderer) heatmapSVG(w io.Writer, c *models.Chart) error {
	m := c.Correlation
	if m == nil {
		return fmt.Errorf("heatmap %s has no correlation matrix", c.Name)
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", fmt.Sprint(r.Width))
	svg.CreateAttr("height", fmt.Sprint(r.Height))
	svg.CreateAttr("font-family", "sans-serif")
	svg.CreateAttr("font-size", "12")

	text := func(parent *etree.Element, x, y int, anchor, fill, body string) {
		t := parent.CreateElement("text")
		t.CreateAttr("x", fmt.Sprint(x))
		t.CreateAttr("y", fmt.Sprint(y))
		t.CreateAttr("text-anchor", anchor)
		t.CreateAttr("fill", fill)
		t.SetText(body)
	}
	text(svg, r.Width/2, 28, "middle", hex(ink), c.Title)

	if !c.Empty {
		l := r.layout(m)
		cells := svg.CreateElement("g")
		cells.CreateAttr("class", "cells")
		for i, row := range m.Columns {
			y := l.top + i*l.cell
			text(svg, 8, y+l.cell/2+4, "start", hex(ink), row)
			for j := range m.Columns {
				x := l.left + j*l.cell
				v := m.Values[i][j]
				rect := cells.CreateElement("rect")
				rect.CreateAttr("x", fmt.Sprint(x+1))
				rect.CreateAttr("y", fmt.Sprint(y+1))
				rect.CreateAttr("width", fmt.Sprint(l.cell-2))
				rect.CreateAttr("height", fmt.Sprint(l.cell-2))
				rect.CreateAttr("fill", hex(coolwarm(v)))
				text(cells, x+l.cell/2, y+l.cell/2+4, "middle", hex(textColor(v)), cellText(v))
			}
		}
		bottom := l.top + len(m.Columns)*l.cell + 18
		for j, name := range m.Columns {
			text(svg, l.left+j*l.cell+l.cell/2, bottom, "middle", hex(ink), name)
		}
	} else {
		text(svg, r.Width/2, r.Height/2, "middle", hex(muted), "No data for the current selection")
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
