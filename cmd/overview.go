package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/edaqa/eda-cli/internal/dataset"
	"github.com/edaqa/eda-cli/internal/quality"
)

var overviewSep string

var overviewCmd = &cobra.Command{
	Use:   "overview [file]",
	Short: "Print a short dataset overview",
	Long: `Print a short overview of a CSV dataset:
row and column counts plus a per-column summary table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadCSVFile(args[0], overviewSep)
		if err != nil {
			return err
		}

		summaries, err := quality.Summarize(ds)
		if err != nil {
			return err
		}

		fmt.Printf("Rows: %d\n", ds.Rows())
		fmt.Printf("Columns: %d\n\n", ds.Cols())
		fmt.Println(summaryTable(summaries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().StringVar(&overviewSep, "sep", ",", "CSV field delimiter")
}

// summaryTable renders the column summaries as an ASCII table.
func summaryTable(summaries []quality.ColumnSummary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Type", "Rows", "Nulls", "Distinct", "Min", "Max", "Mean", "Std"})

	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.Name,
			string(s.Type),
			s.RowCount,
			s.NullCount,
			s.DistinctCount,
			optionalCell(s.Min),
			optionalCell(s.Max),
			optionalCell(s.Mean),
			optionalCell(s.Std),
		})
	}

	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func optionalCell(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.4g", *v)
}

// loadCSVFile opens and parses a CSV file with the given delimiter flag.
func loadCSVFile(path, sep string) (*dataset.Dataset, error) {
	if len(sep) != 1 {
		return nil, fmt.Errorf("--sep must be a single character, got %q", sep)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	return dataset.FromCSV(f, dataset.Options{Delimiter: rune(sep[0])})
}
