package models

// ChartKind identifies how a chart is drawn
type ChartKind string

const (
	KindBar        ChartKind = "bar"
	KindStackedBar ChartKind = "stacked_bar"
	KindHistogram  ChartKind = "histogram"
	KindLine       ChartKind = "line"
	KindScatter    ChartKind = "scatter"
	KindBox        ChartKind = "box"
	KindPie        ChartKind = "pie"
	KindHeatmap    ChartKind = "heatmap"
)

// Chart is a renderable chart spec. Only the data fields matching Kind are set.
type Chart struct {
	Name   string    `json:"name"`
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XTitle string    `json:"x_title,omitempty"`
	YTitle string    `json:"y_title,omitempty"`
	// Empty marks a chart whose filtered view has no rows; it renders as a placeholder.
	Empty bool `json:"empty"`

	Counts      []ValueCount `json:"counts,omitempty"` // bar, pie
	Bins        []Bin        `json:"bins,omitempty"`
	Stacks      []StackCount `json:"stacks,omitempty"`
	Means       []GroupMean  `json:"means,omitempty"` // line
	Points      []Point      `json:"points,omitempty"`
	Boxes       []BoxStats   `json:"boxes,omitempty"`
	Correlation *CorrMatrix  `json:"correlation,omitempty"`
}

// Dashboard is every chart computed for one filter state.
type Dashboard struct {
	Rows    int         `json:"rows"`
	Filters FilterState `json:"filters"`
	Charts  []*Chart    `json:"charts"`
}
