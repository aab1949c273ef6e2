package quality

import (
	"github.com/edaqa/eda-cli/internal/dataset"
)

// Assessment aggregates everything computed for one dataset snapshot.
// Constructed once per invocation and never persisted here.
type Assessment struct {
	Columns         []ColumnSummary `json:"columns"`
	Missing         *MissingReport  `json:"missing"`
	Flags           QualityFlags    `json:"flags"`
	MaxMissingShare float64         `json:"max_missing_share"`
	QualityScore    float64         `json:"quality_score"`
}

// Assess runs the summarizer, the missingness analyzer and the flag
// evaluator over a dataset and assembles the result. Caller-supplied
// thresholds are merged field-by-field with the defaults; pass the zero
// Thresholds to run entirely on defaults. Failures from the sub-steps
// propagate unchanged. Deterministic: same dataset and thresholds, same
// result.
func Assess(ds *dataset.Dataset, t Thresholds) (*Assessment, error) {
	t = t.merged()

	summaries, err := Summarize(ds)
	if err != nil {
		return nil, err
	}

	missing, err := AnalyzeMissing(ds)
	if err != nil {
		return nil, err
	}

	flags := EvaluateFlags(ds.Rows(), ds.Cols(), summaries, missing, t)

	a := &Assessment{
		Columns: summaries,
		Missing: missing,
		Flags:   flags,
	}
	for _, share := range missing.PerColumn {
		if share > a.MaxMissingShare {
			a.MaxMissingShare = share
		}
	}
	a.QualityScore = score(flags, missing.Overall)

	return a, nil
}

// score is a coarse heuristic: start from a perfect 1.0, charge 0.15 per
// raised flag and half of the overall missing ratio, floor at zero.
func score(flags QualityFlags, overallMissing float64) float64 {
	s := 1.0 - 0.15*float64(flags.Raised()) - 0.5*overallMissing
	if s < 0 {
		return 0
	}
	return s
}
