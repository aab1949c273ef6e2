package quality

import (
	"math"
	"strconv"
	"strings"

	"github.com/edaqa/eda-cli/internal/dataset"
)

// CorrelationMatrix holds pairwise Pearson correlations between the numeric
// columns of a dataset, in column order. Empty when fewer than two numeric
// columns exist.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Empty reports whether the matrix has nothing to show.
func (m *CorrelationMatrix) Empty() bool {
	return len(m.Columns) < 2
}

// Correlate computes the Pearson correlation matrix over the numeric columns
// identified by the given summaries. Each pair is computed over rows where
// both cells are non-null and parseable.
func Correlate(ds *dataset.Dataset, summaries []ColumnSummary) *CorrelationMatrix {
	var names []string
	var cols [][]float64 // parsed values, NaN for missing

	for i, s := range summaries {
		if s.Type != TypeNumeric {
			continue
		}
		names = append(names, s.Name)
		cols = append(cols, parseNumericColumn(ds.Columns[i]))
	}

	m := &CorrelationMatrix{Columns: names}
	if m.Empty() {
		return m
	}

	m.Values = make([][]float64, len(cols))
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
		for j := range cols {
			if j < i {
				m.Values[i][j] = m.Values[j][i]
				continue
			}
			m.Values[i][j] = pearson(cols[i], cols[j])
		}
	}
	return m
}

func parseNumericColumn(col dataset.Column) []float64 {
	out := make([]float64, len(col.Values))
	for i, raw := range col.Values {
		if dataset.IsNull(raw) {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out
}

// pearson computes the correlation over indices where both series are
// observed. Returns NaN when fewer than two shared observations exist or
// either series is constant.
func pearson(x, y []float64) float64 {
	var n int
	var sumX, sumY float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		n++
		sumX += x[i]
		sumY += y[i]
	}
	if n < 2 {
		return math.NaN()
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
