package render

import (
	"fmt"
	"io"

	"github.com/Dan9191/credit-dashboard/internal/models"
	chart "github.com/wcharczuk/go-chart/v2"
)

// pointStyle renders points only, without connecting lines
func pointStyle(i int) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    3,
		DotColor:    colorAt(i),
	}
}

func lineStyle(i int) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: colorAt(i),
		DotWidth:    4,
		DotColor:    colorAt(i),
	}
}

func barStyle(i int) chart.Style {
	return chart.Style{
		FillColor:   colorAt(i),
		StrokeColor: colorAt(i),
		StrokeWidth: 1,
	}
}

func (r *Renderer) barWidth(n int) int {
	w := (r.Width - 120) / (n * 2)
	if w < 4 {
		return 4
	}
	return w
}

func (r *Renderer) barChart(w io.Writer, title, yTitle string, values []chart.Value) error {
	peak := 0.0
	for _, v := range values {
		if v.Value > peak {
			peak = v.Value
		}
	}
	if peak == 0 {
		peak = 1
	}
	bc := chart.BarChart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		BarWidth:   r.barWidth(len(values)),
		YAxis: chart.YAxis{
			Name:  yTitle,
			Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
		},
		Bars: values,
	}
	return bc.Render(chart.PNG, w)
}

func (r *Renderer) bar(w io.Writer, c *models.Chart) error {
	values := make([]chart.Value, len(c.Counts))
	for i, vc := range c.Counts {
		values[i] = chart.Value{Label: vc.Value, Value: float64(vc.Count), Style: barStyle(0)}
	}
	return r.barChart(w, c.Title, c.YTitle, values)
}

func (r *Renderer) histogram(w io.Writer, c *models.Chart) error {
	values := make([]chart.Value, len(c.Bins))
	for i, b := range c.Bins {
		values[i] = chart.Value{Label: binLabel(b), Value: float64(b.Count), Style: barStyle(0)}
	}
	return r.barChart(w, c.Title, c.YTitle, values)
}

func binLabel(b models.Bin) string {
	if b.Upper-b.Lower >= 10 {
		return fmt.Sprintf("%.0f–%.0f", b.Lower, b.Upper)
	}
	return fmt.Sprintf("%.1f–%.1f", b.Lower, b.Upper)
}

func (r *Renderer) stacked(w io.Writer, c *models.Chart) error {
	groupColor := make(map[string]int)
	var bars []chart.StackedBar
	index := make(map[string]int)
	for _, s := range c.Stacks {
		if _, ok := groupColor[s.Group]; !ok {
			groupColor[s.Group] = len(groupColor)
		}
		i, ok := index[s.X]
		if !ok {
			i = len(bars)
			index[s.X] = i
			bars = append(bars, chart.StackedBar{Name: s.X})
		}
		bars[i].Values = append(bars[i].Values, chart.Value{
			Label: s.Group,
			Value: float64(s.Count),
			Style: barStyle(groupColor[s.Group]),
		})
	}
	for i := range bars {
		bars[i].Width = r.barWidth(len(bars))
	}
	sbc := chart.StackedBarChart{
		Title:      c.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		Bars:       bars,
	}
	return sbc.Render(chart.PNG, w)
}

func (r *Renderer) pie(w io.Writer, c *models.Chart) error {
	total := 0
	for _, vc := range c.Counts {
		total += vc.Count
	}
	values := make([]chart.Value, len(c.Counts))
	for i, vc := range c.Counts {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", vc.Value, 100*float64(vc.Count)/float64(total)),
			Value: float64(vc.Count),
			Style: barStyle(i),
		}
	}
	pc := chart.PieChart{
		Title:      c.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		Values:     values,
	}
	return pc.Render(chart.PNG, w)
}

func (r *Renderer) line(w io.Writer, c *models.Chart) error {
	xs := make([]float64, len(c.Means))
	ys := make([]float64, len(c.Means))
	ticks := make([]chart.Tick, len(c.Means))
	for i, m := range c.Means {
		label := m.Label
		if label == "" {
			label = m.Group
		}
		xs[i], ys[i] = float64(i), m.Mean
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}
	ch := chart.Chart{
		Title:      c.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		XAxis: chart.XAxis{
			Name:  c.XTitle,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(xs)) - 0.5},
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Name: c.YTitle, Range: paddedRange(ys...)},
		Series: []chart.Series{chart.ContinuousSeries{Name: c.YTitle, XValues: xs, YValues: ys, Style: lineStyle(0)}},
	}
	return ch.Render(chart.PNG, w)
}

func (r *Renderer) scatter(w io.Writer, c *models.Chart) error {
	order := []string{}
	byGroup := make(map[string]*chart.ContinuousSeries)
	var allX, allY []float64
	for _, p := range c.Points {
		s, ok := byGroup[p.Group]
		if !ok {
			s = &chart.ContinuousSeries{Name: p.Group, Style: pointStyle(len(order))}
			byGroup[p.Group] = s
			order = append(order, p.Group)
		}
		s.XValues = append(s.XValues, p.X)
		s.YValues = append(s.YValues, p.Y)
		allX = append(allX, p.X)
		allY = append(allY, p.Y)
	}
	series := make([]chart.Series, 0, len(order))
	for _, g := range order {
		series = append(series, *byGroup[g])
	}
	ch := chart.Chart{
		Title:      c.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		XAxis:      chart.XAxis{Name: c.XTitle, Range: paddedRange(allX...)},
		YAxis:      chart.YAxis{Name: c.YTitle, Range: paddedRange(allY...)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// box draws each group at x = 1..n as an outlined quartile box with a median
// bar, whisker lines and outlier dots
func (r *Renderer) box(w io.Writer, c *models.Chart) error {
	const half = 0.3
	var series []chart.Series
	var ys []float64
	ticks := make([]chart.Tick, len(c.Boxes))
	for i, b := range c.Boxes {
		x := float64(i + 1)
		ticks[i] = chart.Tick{Value: x, Label: b.Group}
		st := lineStyle(i)
		st.DotWidth = 0
		series = append(series,
			chart.ContinuousSeries{
				XValues: []float64{x - half, x + half, x + half, x - half, x - half},
				YValues: []float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1},
				Style:   st,
			},
			chart.ContinuousSeries{XValues: []float64{x - half, x + half}, YValues: []float64{b.Median, b.Median}, Style: st},
			chart.ContinuousSeries{XValues: []float64{x, x}, YValues: []float64{b.Q3, b.UpperWhisker}, Style: st},
			chart.ContinuousSeries{XValues: []float64{x, x}, YValues: []float64{b.LowerWhisker, b.Q1}, Style: st},
		)
		ys = append(ys, b.LowerWhisker, b.UpperWhisker)
		if len(b.Outliers) > 0 {
			ox := make([]float64, len(b.Outliers))
			for k := range ox {
				ox[k] = x
			}
			series = append(series, chart.ContinuousSeries{XValues: ox, YValues: b.Outliers, Style: pointStyle(i)})
			ys = append(ys, b.Outliers...)
		}
	}
	ch := chart.Chart{
		Title:      c.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		XAxis: chart.XAxis{
			Name:  c.XTitle,
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(c.Boxes)) + 0.5},
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Name: c.YTitle, Range: paddedRange(ys...)},
		Series: series,
	}
	return ch.Render(chart.PNG, w)
}
