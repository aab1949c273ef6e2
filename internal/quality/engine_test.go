package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edaqa/eda-cli/internal/dataset"
)

func TestAssessColumnOrderAndCount(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("z", "1", "2"),
		col("a", "x", "y"),
		col("m", "true", "false"),
	}}

	a, err := Assess(ds, Thresholds{})
	assert.NoError(t, err)
	assert.Len(t, a.Columns, 3)
	assert.Equal(t, "z", a.Columns[0].Name)
	assert.Equal(t, "a", a.Columns[1].Name)
	assert.Equal(t, "m", a.Columns[2].Name)
}

func TestAssessIdempotent(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("a", "1", "", "3"),
		col("b", "x", "x", "y"),
	}}
	thresholds := Thresholds{MinRows: 5}

	first, err := Assess(ds, thresholds)
	assert.NoError(t, err)
	second, err := Assess(ds, thresholds)
	assert.NoError(t, err)

	assert.Equal(t, first.Flags, second.Flags)
	assert.Equal(t, first, second)
}

func TestAssessMinRowsMonotonicity(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("a", "1", "2", "3", "4", "5"),
	}}

	low, err := Assess(ds, Thresholds{MinRows: 5})
	assert.NoError(t, err)
	assert.False(t, low.Flags.TooFewRows)

	high, err := Assess(ds, Thresholds{MinRows: 6})
	assert.NoError(t, err)
	assert.True(t, high.Flags.TooFewRows)
}

func TestAssessPropagatesInvalidDataset(t *testing.T) {
	// zero rows, one column
	empty := &dataset.Dataset{Columns: []dataset.Column{{Name: "a"}}}
	_, err := Assess(empty, Thresholds{})
	assert.ErrorIs(t, err, dataset.ErrInvalidDataset)

	// zero columns
	_, err = Assess(&dataset.Dataset{}, Thresholds{})
	assert.ErrorIs(t, err, dataset.ErrInvalidDataset)
}

func TestAssessScoreAndMaxMissingShare(t *testing.T) {
	clean := &dataset.Dataset{Columns: []dataset.Column{
		col("a", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"),
		col("b", "u", "v", "w", "x", "y", "u", "v", "w", "x", "y"),
	}}

	a, err := Assess(clean, Thresholds{})
	assert.NoError(t, err)
	assert.Zero(t, a.Flags.Raised())
	assert.Equal(t, 1.0, a.QualityScore)
	assert.Equal(t, 0.0, a.MaxMissingShare)

	dirty := &dataset.Dataset{Columns: []dataset.Column{
		col("a", "1", "", ""),
		col("b", "x", "x", "x"),
	}}

	d, err := Assess(dirty, Thresholds{})
	assert.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, d.MaxMissingShare, 1e-12)
	assert.Less(t, d.QualityScore, 1.0)
	assert.GreaterOrEqual(t, d.QualityScore, 0.0)
}
