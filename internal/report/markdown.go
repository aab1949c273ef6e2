package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/edaqa/eda-cli/internal/dataset"
	"github.com/edaqa/eda-cli/internal/quality"
)

// Params carries the report settings the user picked on the command line.
type Params struct {
	Title           string
	SourceName      string
	TopK            int
	MaxHistColumns  int
	MaxCatColumns   int
	MinMissingShare float64
}

// Write renders the full report directory: summary.csv, missing.csv,
// correlation.csv, top_categories/*.csv, the PNG charts and report.md
// tying them together.
func Write(outDir string, p Params, ds *dataset.Dataset, a *quality.Assessment) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	corr := quality.Correlate(ds, a.Columns)
	cats := quality.TopCategories(ds, a.Columns, p.TopK)

	if err := writeSummaryCSV(filepath.Join(outDir, "summary.csv"), a.Columns); err != nil {
		return err
	}
	if err := writeMissingCSV(filepath.Join(outDir, "missing.csv"), ds, a.Missing); err != nil {
		return err
	}
	if !corr.Empty() {
		if err := writeCorrelationCSV(filepath.Join(outDir, "correlation.csv"), corr); err != nil {
			return err
		}
	}
	if err := writeTopCategories(filepath.Join(outDir, "top_categories"), cats, p.MaxCatColumns); err != nil {
		return err
	}
	if err := writeMissingShareChart(filepath.Join(outDir, "missing_share.png"), ds, a.Missing); err != nil {
		return err
	}
	if err := writeHistograms(outDir, ds, a.Columns, p.MaxHistColumns); err != nil {
		return err
	}

	return writeMarkdown(filepath.Join(outDir, "report.md"), p, ds, a, corr, cats)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}

func writeSummaryCSV(path string, summaries []quality.ColumnSummary) error {
	rows := [][]string{{"column", "type", "rows", "nulls", "distinct", "min", "max", "mean", "std"}}
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Name,
			string(s.Type),
			strconv.Itoa(s.RowCount),
			strconv.Itoa(s.NullCount),
			strconv.Itoa(s.DistinctCount),
			formatOptional(s.Min),
			formatOptional(s.Max),
			formatOptional(s.Mean),
			formatOptional(s.Std),
		})
	}
	return writeCSV(path, rows)
}

func writeMissingCSV(path string, ds *dataset.Dataset, missing *quality.MissingReport) error {
	rows := [][]string{{"column", "missing_count", "missing_share"}}
	for _, col := range ds.Columns {
		share := missing.PerColumn[col.Name]
		count := int(share*float64(len(col.Values)) + 0.5)
		rows = append(rows, []string{
			col.Name,
			strconv.Itoa(count),
			strconv.FormatFloat(share, 'f', 4, 64),
		})
	}
	return writeCSV(path, rows)
}

func writeCorrelationCSV(path string, corr *quality.CorrelationMatrix) error {
	header := append([]string{""}, corr.Columns...)
	rows := [][]string{header}
	for i, name := range corr.Columns {
		row := []string{name}
		for j := range corr.Columns {
			row = append(row, strconv.FormatFloat(corr.Values[i][j], 'f', 4, 64))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, rows)
}

func writeTopCategories(dir string, cats map[string][]quality.CategoryCount, maxColumns int) error {
	if len(cats) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	names := make([]string, 0, len(cats))
	for name := range cats {
		names = append(names, name)
	}
	sort.Strings(names)
	if maxColumns > 0 && len(names) > maxColumns {
		names = names[:maxColumns]
	}

	for _, name := range names {
		rows := [][]string{{"value", "count"}}
		for _, c := range cats[name] {
			rows = append(rows, []string{c.Value, strconv.Itoa(c.Count)})
		}
		if err := writeCSV(filepath.Join(dir, name+".csv"), rows); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdown(path string, p Params, ds *dataset.Dataset, a *quality.Assessment,
	corr *quality.CorrelationMatrix, cats map[string][]quality.CategoryCount) error {

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "Source file: `%s`\n\n", p.SourceName)
	fmt.Fprintf(&b, "Rows: **%d**, columns: **%d**\n\n", ds.Rows(), ds.Cols())

	b.WriteString("## Report settings\n\n")
	fmt.Fprintf(&b, "- max_hist_columns: **%d**\n", p.MaxHistColumns)
	fmt.Fprintf(&b, "- max_cat_columns: **%d**\n", p.MaxCatColumns)
	fmt.Fprintf(&b, "- top_k_categories: **%d**\n", p.TopK)
	fmt.Fprintf(&b, "- min_missing_share: **%.2f**\n\n", p.MinMissingShare)

	b.WriteString("## Data quality (heuristics)\n\n")
	fmt.Fprintf(&b, "- Quality score: **%.2f**\n", a.QualityScore)
	fmt.Fprintf(&b, "- Max missing share per column: **%.2f%%**\n", a.MaxMissingShare*100)
	fmt.Fprintf(&b, "- Too few rows: **%v**\n", a.Flags.TooFewRows)
	fmt.Fprintf(&b, "- Too many columns: **%v**\n", a.Flags.TooManyColumns)
	fmt.Fprintf(&b, "- Too many missing: **%v**\n", a.Flags.TooManyMissing)
	fmt.Fprintf(&b, "- Has constant columns: **%v**\n", a.Flags.HasConstantColumns)
	fmt.Fprintf(&b, "- Has high-cardinality categoricals: **%v**\n\n", a.Flags.HasHighCardinalityCategorical)

	b.WriteString("## Columns\n\nSee `summary.csv`.\n\n")

	b.WriteString("## Missing values\n\n")
	b.WriteString("See `missing.csv` and `missing_share.png`.\n\n")
	fmt.Fprintf(&b, "### Problematic columns (missing_share >= %.2f)\n\n", p.MinMissingShare)
	problematic := problematicColumns(ds, a, p.MinMissingShare)
	if len(problematic) == 0 {
		b.WriteString("No columns above the threshold.\n\n")
	} else {
		for _, line := range problematic {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Correlation of numeric columns\n\n")
	if corr.Empty() {
		b.WriteString("Not enough numeric columns for correlation.\n\n")
	} else {
		b.WriteString("See `correlation.csv`.\n\n")
	}

	b.WriteString("## Categorical columns\n\n")
	if len(cats) == 0 {
		b.WriteString("No categorical columns found.\n\n")
	} else {
		fmt.Fprintf(&b, "See `top_categories/` (max columns: %d, top-%d values).\n\n", p.MaxCatColumns, p.TopK)
	}

	b.WriteString("## Histograms of numeric columns\n\n")
	fmt.Fprintf(&b, "See `hist_*.png` (at most %d columns).\n", p.MaxHistColumns)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func problematicColumns(ds *dataset.Dataset, a *quality.Assessment, minShare float64) []string {
	var lines []string
	for _, col := range ds.Columns {
		share := a.Missing.PerColumn[col.Name]
		if share >= minShare {
			count := int(share*float64(len(col.Values)) + 0.5)
			lines = append(lines, fmt.Sprintf("- **%s**: missing_count=%d, missing_share=%.2f%%\n",
				col.Name, count, share*100))
		}
	}
	return lines
}
