package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edaqa/eda-cli/internal/quality"
	"github.com/edaqa/eda-cli/internal/report"
)

var (
	reportOutDir          string
	reportSep             string
	reportTitle           string
	reportTopK            int
	reportMaxHistColumns  int
	reportMaxCatColumns   int
	reportMinMissingShare float64

	reportMinRows             int
	reportMaxColumns          int
	reportMaxMissingRatio     float64
	reportMaxCardinalityRatio float64
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Generate a full EDA report directory",
	Long: `Generate a full EDA report for a CSV file:
column summary and missing-value tables (CSV), correlation matrix,
top-k categories per categorical column, quality heuristics and
PNG charts, tied together by a Markdown report.

Examples:
  eda-cli report data.csv
  eda-cli report data.csv --out-dir reports --title "Sales EDA"
  eda-cli report data.csv --min-rows 100 --max-missing-ratio 0.2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportTopK <= 0 {
			return fmt.Errorf("--top-k must be > 0")
		}
		if reportMaxHistColumns <= 0 {
			return fmt.Errorf("--max-hist-columns must be > 0")
		}
		if reportMinMissingShare < 0 || reportMinMissingShare > 1 {
			return fmt.Errorf("--min-missing-share must be in [0..1]")
		}

		logger := logrus.New()

		ds, err := loadCSVFile(args[0], reportSep)
		if err != nil {
			return err
		}

		thresholds := quality.Thresholds{
			MinRows:             reportMinRows,
			MaxColumns:          reportMaxColumns,
			MaxMissingRatio:     reportMaxMissingRatio,
			MaxCardinalityRatio: reportMaxCardinalityRatio,
		}

		assessment, err := quality.Assess(ds, thresholds)
		if err != nil {
			return err
		}

		params := report.Params{
			Title:           reportTitle,
			SourceName:      filepath.Base(args[0]),
			TopK:            reportTopK,
			MaxHistColumns:  reportMaxHistColumns,
			MaxCatColumns:   reportMaxCatColumns,
			MinMissingShare: reportMinMissingShare,
		}
		if err := report.Write(reportOutDir, params, ds, assessment); err != nil {
			return err
		}

		logger.Infof("report generated in %s", reportOutDir)
		fmt.Printf("Report generated in: %s\n", reportOutDir)
		fmt.Printf("- Markdown: %s\n", filepath.Join(reportOutDir, "report.md"))
		fmt.Println("- Tables: summary.csv, missing.csv, correlation.csv, top_categories/*.csv")
		fmt.Println("- Charts: hist_*.png, missing_share.png")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportOutDir, "out-dir", "reports", "Output directory for the report")
	reportCmd.Flags().StringVar(&reportSep, "sep", ",", "CSV field delimiter")
	reportCmd.Flags().StringVar(&reportTitle, "title", "EDA report", "Report title")
	reportCmd.Flags().IntVar(&reportTopK, "top-k", 5, "How many top values to keep per categorical column")
	reportCmd.Flags().IntVar(&reportMaxHistColumns, "max-hist-columns", 6, "Maximum numeric columns to plot histograms for")
	reportCmd.Flags().IntVar(&reportMaxCatColumns, "max-cat-columns", 5, "Maximum categorical columns to analyze")
	reportCmd.Flags().Float64Var(&reportMinMissingShare, "min-missing-share", 0.3, "Missing-share threshold for problematic columns (0..1)")

	reportCmd.Flags().IntVar(&reportMinRows, "min-rows", 0, "Minimum acceptable row count (0: default)")
	reportCmd.Flags().IntVar(&reportMaxColumns, "max-columns", 0, "Maximum acceptable column count (0: default)")
	reportCmd.Flags().Float64Var(&reportMaxMissingRatio, "max-missing-ratio", 0, "Maximum acceptable overall missing ratio (0: default)")
	reportCmd.Flags().Float64Var(&reportMaxCardinalityRatio, "max-cardinality-ratio", 0, "Maximum distinct/rows ratio for categoricals (0: default)")
}
