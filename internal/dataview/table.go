// Package dataview holds the immutable credit table and the pure
// filter/aggregate functions the dashboard charts are computed from.
package dataview

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	// ErrColumnNotFound is returned when an operation names a column the table does not have.
	ErrColumnNotFound = errors.New("column not found")
	// ErrNotNumeric is returned when a numeric aggregate is asked of a text column.
	ErrNotNumeric = errors.New("column is not numeric")
)

// Table is a read-only view over a tabular dataset.
// Every operation returns a new Table; the receiver is never modified.
type Table struct {
	df dataframe.DataFrame
}

// Option configures how records are parsed into a Table.
type Option func(*options)

type options struct {
	delimiter rune
	text      []string
}

// WithDelimiter sets the CSV field delimiter (default ',').
func WithDelimiter(d rune) Option {
	return func(o *options) { o.delimiter = d }
}

// WithTextColumns forces the named columns to be read as text even when
// their values look numeric (category codes, flags).
func WithTextColumns(names ...string) Option {
	return func(o *options) { o.text = append(o.text, names...) }
}

func (o options) load() []dataframe.LoadOption {
	opts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	}
	if o.delimiter != 0 {
		opts = append(opts, dataframe.WithDelimiter(o.delimiter))
	}
	if len(o.text) > 0 {
		types := make(map[string]series.Type, len(o.text))
		for _, name := range o.text {
			types[name] = series.String
		}
		opts = append(opts, dataframe.WithTypes(types))
	}
	return opts
}

// ReadCSV parses a CSV stream with a header row into a Table.
func ReadCSV(r io.Reader, opts ...Option) (Table, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	df := dataframe.ReadCSV(r, o.load()...)
	if df.Err != nil {
		return Table{}, fmt.Errorf("failed to parse csv: %w", df.Err)
	}
	return Table{df: df}, nil
}

// FromRecords builds a Table from a header row followed by data rows.
func FromRecords(records [][]string, opts ...Option) (Table, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	df := dataframe.LoadRecords(records, o.load()...)
	if df.Err != nil {
		return Table{}, fmt.Errorf("failed to load records: %w", df.Err)
	}
	return Table{df: df}, nil
}

// Rows returns the number of rows.
func (t Table) Rows() int {
	return t.df.Nrow()
}

// Columns returns the column names in file order.
func (t Table) Columns() []string {
	return t.df.Names()
}

// HasColumn reports whether the table has the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.df.Names() {
		if c == name {
			return true
		}
	}
	return false
}

// Require returns ErrColumnNotFound naming the first missing column, if any.
func (t Table) Require(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
	}
	return nil
}

// column returns a copy of the named column.
func (t Table) column(name string) (series.Series, error) {
	if err := t.Require(name); err != nil {
		return series.Series{}, err
	}
	return t.df.Col(name), nil
}

// numeric returns the named column as floats; missing values are NaN.
func (t Table) numeric(name string) ([]float64, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if col.Type() == series.String {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, name)
	}
	return col.Float(), nil
}

// categories returns the string form of every row of the named column and
// whether the row holds a value at all.
func (t Table) categories(name string) ([]string, []bool, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, nil, err
	}
	values := make([]string, col.Len())
	present := make([]bool, col.Len())
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			continue
		}
		values[i] = e.String()
		present[i] = true
	}
	return values, present, nil
}
