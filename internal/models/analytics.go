package models

import "github.com/shopspring/decimal"

// Correlation coefficients go out as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ValueCount is the number of rows holding one distinct value
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// GroupMean is the mean of a numeric column within one group
type GroupMean struct {
	Group string  `json:"group"`
	Label string  `json:"label,omitempty"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// CorrMatrix is a symmetric Pearson correlation matrix.
// Values[i][j] is invalid (null in JSON) when the coefficient is undefined,
// e.g. for a constant column.
type CorrMatrix struct {
	Columns []string                `json:"columns"`
	Values  [][]decimal.NullDecimal `json:"values"`
}

// At returns the coefficient for the named pair of columns.
func (m *CorrMatrix) At(a, b string) (decimal.NullDecimal, bool) {
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a {
			i = k
		}
		if c == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return decimal.NullDecimal{}, false
	}
	return m.Values[i][j], true
}

// Bin is one equal-width histogram bucket [Lower, Upper)
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// StackCount is the number of rows for one (x, group) pair of a stacked bar chart
type StackCount struct {
	X     string `json:"x"`
	Group string `json:"group"`
	Count int    `json:"count"`
}

// Point is one scatter point
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group string  `json:"group,omitempty"`
}

// BoxStats summarises the distribution of a numeric column within one group
type BoxStats struct {
	Group        string    `json:"group"`
	Count        int       `json:"count"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}
