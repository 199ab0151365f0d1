package models

// FilterState is the current selection of the dashboard filters.
//
// A nil slice means the filter was not set and defaults to every value.
// A non-nil empty slice is an explicit empty selection.
type FilterState struct {
	// LatePaymentPurpose selects the credit purpose of the late-payment pie.
	// Empty means the first purpose found in the data.
	LatePaymentPurpose string   `json:"late_purpose,omitempty"`
	Purposes           []string `json:"purposes"`
	States             []string `json:"states"`
	Dependents         []string `json:"dependents"`
}

// FilterOptions lists the values each filter can take.
type FilterOptions struct {
	Purposes   []string `json:"purposes"`
	States     []string `json:"states"`
	Dependents []string `json:"dependents"`
	Tenures    []string `json:"tenures"`
}
