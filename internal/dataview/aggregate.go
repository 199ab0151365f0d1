package dataview

import (
	"math"
	"sort"

	"github.com/Dan9191/credit-dashboard/internal/models"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ValueCounts counts the occurrences of each distinct value of column,
// highest count first. Equal counts are ordered by value.
// Missing values are not counted.
func ValueCounts(t Table, column string) ([]models.ValueCount, error) {
	values, present, err := t.categories(column)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for i, v := range values {
		if present[i] {
			counts[v]++
		}
	}
	out := make([]models.ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, models.ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out, nil
}

// Unique returns the distinct values of column in order of first appearance.
func Unique(t Table, column string) ([]string, error) {
	values, present, err := t.categories(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := []string{}
	for i, v := range values {
		if !present[i] || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

// GroupMeanOrdered computes the mean of valueColumn for each distinct value
// of groupColumn. Groups listed in ordered come first, in that order; groups
// found in the data but not listed follow in ascending order. Listed groups
// with no rows are left out.
func GroupMeanOrdered(t Table, groupColumn, valueColumn string, ordered []string) ([]models.GroupMean, error) {
	groups, present, err := t.categories(groupColumn)
	if err != nil {
		return nil, err
	}
	values, err := t.numeric(valueColumn)
	if err != nil {
		return nil, err
	}
	byGroup := make(map[string][]float64)
	for i, g := range groups {
		if !present[i] || math.IsNaN(values[i]) {
			continue
		}
		byGroup[g] = append(byGroup[g], values[i])
	}

	rank := make(map[string]int, len(ordered))
	for i, g := range ordered {
		if _, dup := rank[g]; !dup {
			rank[g] = i
		}
	}
	names := make([]string, 0, len(byGroup))
	for g := range byGroup {
		names = append(names, g)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iok := rank[names[i]]
		rj, jok := rank[names[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})

	out := make([]models.GroupMean, 0, len(names))
	for _, g := range names {
		xs := byGroup[g]
		out = append(out, models.GroupMean{Group: g, Mean: stat.Mean(xs, nil), Count: len(xs)})
	}
	return out, nil
}

// CorrelationMatrix returns the pairwise Pearson correlation of columns,
// rounded to two decimals. Each pair uses the rows where both values are
// present. A coefficient is left undefined when a column is constant over
// those rows or fewer than two rows remain.
func CorrelationMatrix(t Table, columns []string) (*models.CorrMatrix, error) {
	data := make([][]float64, len(columns))
	for i, c := range columns {
		xs, err := t.numeric(c)
		if err != nil {
			return nil, err
		}
		data[i] = xs
	}

	m := &models.CorrMatrix{
		Columns: append([]string(nil), columns...),
		Values:  make([][]decimal.NullDecimal, len(columns)),
	}
	for i := range columns {
		m.Values[i] = make([]decimal.NullDecimal, len(columns))
	}
	for i := range columns {
		for j := i; j < len(columns); j++ {
			x, y := pairwise(data[i], data[j])
			r := pearson(x, y)
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			v := rounded(r)
			m.Values[i][j] = v
			m.Values[j][i] = v
		}
	}
	return m, nil
}

func pairwise(a, b []float64) ([]float64, []float64) {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	return x, y
}

func pearson(x, y []float64) float64 {
	if len(x) < 2 || constant(x) || constant(y) {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

func constant(xs []float64) bool {
	return floats.Min(xs) == floats.Max(xs)
}

func rounded(r float64) decimal.NullDecimal {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(r).Round(2), Valid: true}
}
