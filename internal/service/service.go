package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Dan9191/credit-dashboard/internal/dataview"
	"github.com/Dan9191/credit-dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownChart is returned for a chart name the dashboard does not define
	ErrUnknownChart = errors.New("unknown chart")
	// ErrInvalidFilter is returned for a filter value that can never be valid
	ErrInvalidFilter = errors.New("invalid filter")
)

// Bin counts of the histograms
const (
	AmountBins   = 10
	InterestBins = 20
)

type builder func(s *Service, fs models.FilterState) (*models.Chart, error)

type chartDef struct {
	name  string
	build builder
}

// charts lists the dashboard in display order
var charts = []chartDef{
	{"purpose-count", (*Service).purposeCount},
	{"amount-histogram", (*Service).amountHistogram},
	{"purpose-state-stacked", (*Service).purposeStateStacked},
	{"late-payment-pie", (*Service).latePaymentPie},
	{"amount-duration-scatter", (*Service).amountDurationScatter},
	{"tenure-amount-line", (*Service).tenureAmountLine},
	{"amount-by-purpose-box", (*Service).amountByPurposeBox},
	{"filtered-scatter", (*Service).filteredScatter},
	{"correlation-heatmap", (*Service).correlationHeatmap},
	{"interest-histogram", (*Service).interestHistogram},
}

// ChartNames returns the names of every dashboard chart in display order
func ChartNames() []string {
	names := make([]string, len(charts))
	for i, c := range charts {
		names[i] = c.name
	}
	return names
}

// Service computes dashboard charts over the loaded credit table
type Service struct {
	table dataview.Table
	log   *logrus.Logger
}

// NewService initializes a new service
func NewService(table dataview.Table, log *logrus.Logger) *Service {
	return &Service{table: table, log: log}
}

// Rows returns the number of loaded records
func (s *Service) Rows() int {
	return s.table.Rows()
}

// Options returns the values each dashboard filter can take
func (s *Service) Options() (*models.FilterOptions, error) {
	purposes, err := dataview.Unique(s.table, models.ColPurpose)
	if err != nil {
		return nil, err
	}
	states, err := dataview.Unique(s.table, models.ColState)
	if err != nil {
		return nil, err
	}
	dependents, err := dataview.Unique(s.table, models.ColDependents)
	if err != nil {
		return nil, err
	}
	return &models.FilterOptions{
		Purposes:   purposes,
		States:     states,
		Dependents: dependents,
		Tenures:    append([]string(nil), models.TenureOrder...),
	}, nil
}

// Validate rejects filter values that cannot match the column type
func Validate(fs models.FilterState) error {
	for _, d := range fs.Dependents {
		if _, err := strconv.Atoi(d); err != nil {
			return fmt.Errorf("%w: dependents %q is not an integer", ErrInvalidFilter, d)
		}
	}
	return nil
}

// Dashboard computes every chart for the given filter state
func (s *Service) Dashboard(fs models.FilterState) (*models.Dashboard, error) {
	if err := Validate(fs); err != nil {
		return nil, err
	}
	d := &models.Dashboard{Rows: s.table.Rows(), Filters: fs, Charts: make([]*models.Chart, 0, len(charts))}
	for _, c := range charts {
		ch, err := c.build(s, fs)
		if err != nil {
			return nil, fmt.Errorf("failed to build chart %s: %w", c.name, err)
		}
		ch.Name = c.name
		d.Charts = append(d.Charts, ch)
	}
	s.log.WithField("charts", len(d.Charts)).Debug("Dashboard computed")
	return d, nil
}

// Chart computes one chart by name for the given filter state
func (s *Service) Chart(name string, fs models.FilterState) (*models.Chart, error) {
	if err := Validate(fs); err != nil {
		return nil, err
	}
	for _, c := range charts {
		if c.name != name {
			continue
		}
		ch, err := c.build(s, fs)
		if err != nil {
			return nil, fmt.Errorf("failed to build chart %s: %w", name, err)
		}
		ch.Name = name
		return ch, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

// selection turns an optional multi-select into category filters; unset
// selections keep every row
func selection(column string, values []string) []dataview.CategoryFilter {
	if values == nil {
		return nil
	}
	return []dataview.CategoryFilter{{Column: column, Values: dataview.NewSet(values...)}}
}
