package quality

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/edaqa/eda-cli/internal/dataset"
)

// ColumnType is the inferred semantic type of a column.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeBoolean     ColumnType = "boolean"
)

// ColumnSummary holds per-column descriptive statistics. The numeric stats
// are nil when the column has no non-null numeric values.
type ColumnSummary struct {
	Name          string     `json:"name"`
	Type          ColumnType `json:"type"`
	RowCount      int        `json:"row_count"`
	NullCount     int        `json:"null_count"`
	DistinctCount int        `json:"distinct_count"`
	Min           *float64   `json:"min,omitempty"`
	Max           *float64   `json:"max,omitempty"`
	Mean          *float64   `json:"mean,omitempty"`
	Std           *float64   `json:"std,omitempty"`
}

// Summarize produces one ColumnSummary per column, in dataset order.
// Pure function of the input. Fails with ErrInvalidDataset when the
// dataset has no columns.
func Summarize(ds *dataset.Dataset) ([]ColumnSummary, error) {
	if ds.Cols() == 0 {
		return nil, fmt.Errorf("%w: dataset has no columns", dataset.ErrInvalidDataset)
	}

	summaries := make([]ColumnSummary, 0, ds.Cols())
	for _, col := range ds.Columns {
		summaries = append(summaries, summarizeColumn(col))
	}
	return summaries, nil
}

func summarizeColumn(col dataset.Column) ColumnSummary {
	s := ColumnSummary{
		Name:     col.Name,
		RowCount: len(col.Values),
	}

	distinct := make(map[string]struct{})
	allBoolean := true
	allNumeric := true

	// streaming accumulators, mean/std from sum and sum of squares
	var count int
	var sum, sumSquared float64
	min := math.MaxFloat64
	max := -math.MaxFloat64

	for _, raw := range col.Values {
		if dataset.IsNull(raw) {
			s.NullCount++
			continue
		}
		distinct[raw] = struct{}{}

		if allBoolean && !isBooleanLiteral(raw) {
			allBoolean = false
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			allNumeric = false
			continue
		}
		count++
		sum += v
		sumSquared += v * v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	s.DistinctCount = len(distinct)

	switch {
	case allBoolean && len(distinct) > 0:
		s.Type = TypeBoolean
	case allNumeric && count > 0:
		s.Type = TypeNumeric
	default:
		s.Type = TypeCategorical
	}

	if s.Type == TypeNumeric {
		mean := sum / float64(count)
		variance := sumSquared/float64(count) - mean*mean
		std := 0.0
		if variance > 0 {
			std = math.Sqrt(variance)
		}
		s.Min = &min
		s.Max = &max
		s.Mean = &mean
		s.Std = &std
	}

	return s
}

func isBooleanLiteral(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "false":
		return true
	}
	return false
}
