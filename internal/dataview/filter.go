package dataview

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Set is a set of category values.
type Set map[string]struct{}

// NewSet returns a set holding values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// CategoryFilter keeps the rows whose Column value is in Values.
type CategoryFilter struct {
	Column string
	Values Set
}

// FilterByCategories returns the rows whose value in column is a member of
// selected. Values are compared by their string form. An empty selection
// yields an empty table; values that never occur simply match nothing.
func FilterByCategories(t Table, column string, selected Set) (Table, error) {
	if err := t.Require(column); err != nil {
		return Table{}, err
	}
	if len(selected) == 0 {
		return t.empty(), nil
	}
	member := func(el series.Element) bool {
		return !el.IsNA() && selected.Has(el.String())
	}
	df := t.df.Filter(dataframe.F{
		Colname:    column,
		Comparator: series.CompFunc,
		Comparando: member,
	})
	if df.Err != nil {
		return Table{}, fmt.Errorf("failed to filter %q: %w", column, df.Err)
	}
	return Table{df: df}, nil
}

// FilterAll applies every filter in turn; a row survives only if it matches all of them.
func FilterAll(t Table, filters ...CategoryFilter) (Table, error) {
	out := t
	for _, f := range filters {
		var err error
		out, err = FilterByCategories(out, f.Column, f.Values)
		if err != nil {
			return Table{}, err
		}
	}
	return out, nil
}

func (t Table) empty() Table {
	return Table{df: t.df.Subset([]int{})}
}
