package quality

// Thresholds is the named set of numeric limits one evaluation runs against.
// Immutable for the duration of a call. A zero-valued field means "use the
// default" — the engine merges field-by-field before evaluating.
type Thresholds struct {
	MinRows             int     `json:"min_rows"`
	MaxColumns          int     `json:"max_columns"`
	MaxMissingRatio     float64 `json:"max_missing_ratio"`
	MaxCardinalityRatio float64 `json:"max_cardinality_ratio"`
}

// DefaultThresholds returns the system defaults. The original tool's exact
// cutoffs are not documented anywhere, so these are our chosen baseline.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinRows:             10,
		MaxColumns:          100,
		MaxMissingRatio:     0.5,
		MaxCardinalityRatio: 0.9,
	}
}

// merged fills zero-valued fields from the defaults.
func (t Thresholds) merged() Thresholds {
	def := DefaultThresholds()
	if t.MinRows == 0 {
		t.MinRows = def.MinRows
	}
	if t.MaxColumns == 0 {
		t.MaxColumns = def.MaxColumns
	}
	if t.MaxMissingRatio == 0 {
		t.MaxMissingRatio = def.MaxMissingRatio
	}
	if t.MaxCardinalityRatio == 0 {
		t.MaxCardinalityRatio = def.MaxCardinalityRatio
	}
	return t
}

// QualityFlags is the fixed, closed set of boolean quality indicators.
// Derived, never mutated: always recomputed from a dataset + thresholds pair.
type QualityFlags struct {
	TooFewRows                    bool `json:"too_few_rows"`
	TooManyColumns                bool `json:"too_many_columns"`
	TooManyMissing                bool `json:"too_many_missing"`
	HasConstantColumns            bool `json:"has_constant_columns"`
	HasHighCardinalityCategorical bool `json:"has_high_cardinality_categoricals"`
}

// Raised counts how many flags are set.
func (f QualityFlags) Raised() int {
	n := 0
	for _, b := range []bool{
		f.TooFewRows,
		f.TooManyColumns,
		f.TooManyMissing,
		f.HasConstantColumns,
		f.HasHighCardinalityCategorical,
	} {
		if b {
			n++
		}
	}
	return n
}

// Map returns the flags keyed by their wire names.
func (f QualityFlags) Map() map[string]bool {
	return map[string]bool{
		"too_few_rows":                      f.TooFewRows,
		"too_many_columns":                  f.TooManyColumns,
		"too_many_missing":                  f.TooManyMissing,
		"has_constant_columns":              f.HasConstantColumns,
		"has_high_cardinality_categoricals": f.HasHighCardinalityCategorical,
	}
}

// EvaluateFlags applies the threshold rules to the dataset shape, the column
// summaries and the missing report. Every comparison is strict and every
// flag is independent of the others. Thresholds must be fully supplied;
// the engine merges defaults before calling this.
func EvaluateFlags(rows, cols int, summaries []ColumnSummary, missing *MissingReport, t Thresholds) QualityFlags {
	flags := QualityFlags{
		TooFewRows:     rows < t.MinRows,
		TooManyColumns: cols > t.MaxColumns,
		TooManyMissing: missing.Overall > t.MaxMissingRatio,
	}

	for _, s := range summaries {
		if s.DistinctCount <= 1 {
			flags.HasConstantColumns = true
		}
		// rows == 0 is already signalled by too_few_rows; avoid the division
		if rows > 0 && s.Type == TypeCategorical {
			if float64(s.DistinctCount)/float64(rows) > t.MaxCardinalityRatio {
				flags.HasHighCardinalityCategorical = true
			}
		}
	}

	return flags
}
