package dataview

import (
	"fmt"
	"math"
	"sort"

	"github.com/Dan9191/credit-dashboard/internal/models"
	"gonum.org/v1/gonum/floats"
)

// Histogram splits the range of column into bins equal-width buckets.
// The last bucket includes its upper bound. A constant column yields a
// single bucket; a column without values yields none.
func Histogram(t Table, column string, bins int) ([]models.Bin, error) {
	if bins < 1 {
		return nil, fmt.Errorf("histogram of %q: bins must be positive, got %d", column, bins)
	}
	raw, err := t.numeric(column)
	if err != nil {
		return nil, err
	}
	xs := dropNaN(raw)
	if len(xs) == 0 {
		return []models.Bin{}, nil
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		return []models.Bin{{Lower: lo, Upper: hi, Count: len(xs)}}, nil
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi
	for _, x := range xs {
		i := int((x - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out, nil
}

// CrossCounts counts rows per (xColumn, groupColumn) pair. Pairs follow the
// first appearance of the x value, then of the group value.
func CrossCounts(t Table, xColumn, groupColumn string) ([]models.StackCount, error) {
	xs, xok, err := t.categories(xColumn)
	if err != nil {
		return nil, err
	}
	gs, gok, err := t.categories(groupColumn)
	if err != nil {
		return nil, err
	}
	xOrder, err := Unique(t, xColumn)
	if err != nil {
		return nil, err
	}
	gOrder, err := Unique(t, groupColumn)
	if err != nil {
		return nil, err
	}

	type pair struct{ x, g string }
	counts := make(map[pair]int)
	for i := range xs {
		if xok[i] && gok[i] {
			counts[pair{xs[i], gs[i]}]++
		}
	}
	out := []models.StackCount{}
	for _, x := range xOrder {
		for _, g := range gOrder {
			if n := counts[pair{x, g}]; n > 0 {
				out = append(out, models.StackCount{X: x, Group: g, Count: n})
			}
		}
	}
	return out, nil
}

// Points returns one point per row with both coordinates present. The group
// is the value of groupColumn, or empty when groupColumn is "".
func Points(t Table, xColumn, yColumn, groupColumn string) ([]models.Point, error) {
	xs, err := t.numeric(xColumn)
	if err != nil {
		return nil, err
	}
	ys, err := t.numeric(yColumn)
	if err != nil {
		return nil, err
	}
	var gs []string
	if groupColumn != "" {
		if gs, _, err = t.categories(groupColumn); err != nil {
			return nil, err
		}
	}
	out := make([]models.Point, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		p := models.Point{X: xs[i], Y: ys[i]}
		if gs != nil {
			p.Group = gs[i]
		}
		out = append(out, p)
	}
	return out, nil
}

// BoxStats summarises valueColumn for each group of groupColumn, groups in
// order of first appearance. Whiskers reach the most extreme values within
// 1.5 IQR of the quartiles; values beyond them are outliers.
func BoxStats(t Table, groupColumn, valueColumn string) ([]models.BoxStats, error) {
	groups, ok, err := t.categories(groupColumn)
	if err != nil {
		return nil, err
	}
	values, err := t.numeric(valueColumn)
	if err != nil {
		return nil, err
	}
	order, err := Unique(t, groupColumn)
	if err != nil {
		return nil, err
	}
	byGroup := make(map[string][]float64)
	for i, g := range groups {
		if ok[i] && !math.IsNaN(values[i]) {
			byGroup[g] = append(byGroup[g], values[i])
		}
	}

	out := []models.BoxStats{}
	for _, g := range order {
		xs := byGroup[g]
		if len(xs) == 0 {
			continue
		}
		sort.Float64s(xs)
		b := models.BoxStats{
			Group:  g,
			Count:  len(xs),
			Q1:     quantile(xs, 0.25),
			Median: quantile(xs, 0.5),
			Q3:     quantile(xs, 0.75),
		}
		iqr := b.Q3 - b.Q1
		lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr
		b.LowerWhisker, b.UpperWhisker = b.Q1, b.Q3
		for _, x := range xs {
			if x < lo || x > hi {
				b.Outliers = append(b.Outliers, x)
				continue
			}
			b.LowerWhisker = math.Min(b.LowerWhisker, x)
			b.UpperWhisker = math.Max(b.UpperWhisker, x)
		}
		out = append(out, b)
	}
	return out, nil
}

// quantile interpolates linearly between the closest ranks of a sorted,
// non-empty slice.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	h := p * float64(n-1)
	lo := int(h)
	hi := lo + 1
	if hi > n-1 {
		hi = n - 1
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
