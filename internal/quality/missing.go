package quality

import (
	"fmt"

	"github.com/edaqa/eda-cli/internal/dataset"
)

// MissingReport maps column names to missing ratios in [0,1] and carries the
// overall ratio across every cell of the dataset.
type MissingReport struct {
	PerColumn map[string]float64 `json:"per_column"`
	Overall   float64            `json:"overall"`
}

// AnalyzeMissing computes a MissingReport. Pure function. Fails with
// ErrInvalidDataset when the dataset has zero rows or zero columns, since
// missingness is undefined there.
func AnalyzeMissing(ds *dataset.Dataset) (*MissingReport, error) {
	if ds.Cols() == 0 {
		return nil, fmt.Errorf("%w: dataset has no columns", dataset.ErrInvalidDataset)
	}
	rows := ds.Rows()
	if rows == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows", dataset.ErrInvalidDataset)
	}

	report := &MissingReport{
		PerColumn: make(map[string]float64, ds.Cols()),
	}

	totalNulls := 0
	for _, col := range ds.Columns {
		nulls := 0
		for _, v := range col.Values {
			if dataset.IsNull(v) {
				nulls++
			}
		}
		report.PerColumn[col.Name] = float64(nulls) / float64(rows)
		totalNulls += nulls
	}

	report.Overall = float64(totalNulls) / float64(rows*ds.Cols())
	return report, nil
}
