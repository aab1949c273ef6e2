package cmd

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edaqa/eda-cli/internal/connectors"
	"github.com/edaqa/eda-cli/internal/quality"
)

var (
	scanDir       string
	scanRecursive bool
	scanVerbose   bool
	scanWorkers   int
	scanMinSize   int64
	scanMaxSize   int64
)

type scanResult struct {
	path       string
	size       int64
	assessment *quality.Assessment
	err        error
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory and flag low-quality CSV files",
	Long: `Scan a directory for CSV files and run the quality assessment
on each, printing the raised quality flags per file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logrus.New()

		options := connectors.DiscoveryOptions{
			Recursive: scanRecursive,
			MinSize:   scanMinSize,
			MaxSize:   scanMaxSize,
		}

		files, fileCount, err := connectors.DiscoverFiles(scanDir, "csv", options)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		if fileCount == 0 {
			fmt.Printf("No CSV files found in %s\n", scanDir)
			return nil
		}

		bar := progressbar.NewOptions(fileCount,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Assessing files..."),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)

		workers := scanWorkers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}

		results := assessFiles(files, workers, bar)
		bar.Finish()

		sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

		for _, res := range results {
			if res.err != nil {
				logger.Warnf("failed to assess %s: %v", res.path, res.err)
				continue
			}
			printScanResult(res)
		}
		return nil
	},
}

func assessFiles(files []connectors.FileMeta, workers int, bar *progressbar.ProgressBar) []scanResult {
	semaphore := make(chan struct{}, workers)
	out := make(chan scanResult, len(files))

	var wg sync.WaitGroup
	for _, file := range files {
		wg.Add(1)
		go func(f connectors.FileMeta) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			res := scanResult{path: f.Path, size: f.Size}
			ds, err := loadCSVFile(f.Path, ",")
			if err != nil {
				res.err = err
			} else {
				res.assessment, res.err = quality.Assess(ds, quality.Thresholds{})
			}

			bar.Add(1)
			out <- res
		}(file)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var results []scanResult
	for res := range out {
		results = append(results, res)
	}
	return results
}

func printScanResult(res scanResult) {
	a := res.assessment
	fmt.Printf("\nFile: %s (%s)\n", res.path, humanize.Bytes(uint64(res.size)))
	fmt.Printf("- Rows: %d, Columns: %d\n", columnsRowCount(a), len(a.Columns))
	fmt.Printf("- Overall Missing: %.2f%%\n", a.Missing.Overall*100)
	fmt.Printf("- Quality Score: %.2f\n", a.QualityScore)

	raised := raisedFlagNames(a.Flags)
	if len(raised) == 0 {
		fmt.Println("- Flags: none")
	} else {
		fmt.Printf("- Flags: %v\n", raised)
	}

	if scanVerbose {
		for _, s := range a.Columns {
			fmt.Printf("\nColumn: %s\n", s.Name)
			fmt.Printf("  Type: %s\n", s.Type)
			fmt.Printf("  Nulls: %d\n", s.NullCount)
			fmt.Printf("  Distinct: %d\n", s.DistinctCount)
			if s.Min != nil && s.Max != nil {
				fmt.Printf("  Min: %.4g\n", *s.Min)
				fmt.Printf("  Max: %.4g\n", *s.Max)
			}
		}
	}
}

func columnsRowCount(a *quality.Assessment) int {
	if len(a.Columns) == 0 {
		return 0
	}
	return a.Columns[0].RowCount
}

func raisedFlagNames(flags quality.QualityFlags) []string {
	var names []string
	for name, raised := range flags.Map() {
		if raised {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanDir, "dir", "d", "",
		"Directory to scan (required)")
	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", false,
		"Search directories recursively")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false,
		"Display per-column details")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0,
		"Number of parallel workers (default: CPU cores)")
	scanCmd.Flags().Int64Var(&scanMinSize, "min-size", 0,
		"Minimum file size in bytes")
	scanCmd.Flags().Int64Var(&scanMaxSize, "max-size", 0,
		"Maximum file size in bytes")

	scanCmd.MarkFlagRequired("dir")
}
