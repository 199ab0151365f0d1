package repository

import (
	"fmt"
	"os"

	"github.com/Dan9191/credit-dashboard/internal/dataview"
	"github.com/Dan9191/credit-dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

// Delimiter separates fields in the credit dataset
const Delimiter = ';'

// Repository loads the credit dataset
type Repository struct {
	log *logrus.Logger
}

// NewRepository initializes a new repository
func NewRepository(log *logrus.Logger) *Repository {
	return &Repository{log: log}
}

// Load reads the semicolon-delimited credit CSV at path and checks that every
// column the dashboard reads is present
func (r *Repository) Load(path string) (dataview.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataview.Table{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	table, err := dataview.ReadCSV(f,
		dataview.WithDelimiter(Delimiter),
		dataview.WithTextColumns(models.ColPurpose, models.ColState, models.ColLatePayment, models.ColTenure),
	)
	if err != nil {
		return dataview.Table{}, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	if err := table.Require(models.RequiredColumns...); err != nil {
		return dataview.Table{}, fmt.Errorf("invalid dataset %s: %w", path, err)
	}

	r.log.WithFields(logrus.Fields{
		"path":    path,
		"rows":    table.Rows(),
		"columns": len(table.Columns()),
	}).Info("Dataset loaded")
	return table, nil
}
