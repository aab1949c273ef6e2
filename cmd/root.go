package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eda-cli",
	Short: "Exploratory data analysis and quality checks for CSV files",
	Long: `A small CLI for exploratory data analysis of CSV files:
column summaries, missing-value statistics and heuristic
data-quality flags, as a report directory or over HTTP.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
