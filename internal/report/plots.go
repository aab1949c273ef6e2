package report

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/edaqa/eda-cli/internal/dataset"
	"github.com/edaqa/eda-cli/internal/quality"
)

const histogramBins = 10

// writeMissingShareChart renders a bar chart of per-column missing shares.
func writeMissingShareChart(path string, ds *dataset.Dataset, missing *quality.MissingReport) error {
	var bars []chart.Value
	for _, col := range ds.Columns {
		bars = append(bars, chart.Value{
			Value: missing.PerColumn[col.Name],
			Label: col.Name,
		})
	}

	graph := chart.BarChart{
		Title: "Missing share per column",
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		Height:   512,
		Width:    1024,
		BarWidth: 40,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name:  "Share",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
	}

	return renderPNG(path, &graph)
}

// writeHistograms renders one bar-chart histogram per numeric column, up to
// maxColumns of them, into hist_<column>.png.
func writeHistograms(outDir string, ds *dataset.Dataset, summaries []quality.ColumnSummary, maxColumns int) error {
	rendered := 0
	for i, s := range summaries {
		if s.Type != quality.TypeNumeric {
			continue
		}
		if maxColumns > 0 && rendered >= maxColumns {
			break
		}

		values := numericValues(ds.Columns[i])
		if len(values) == 0 {
			continue
		}

		bars := histogramBars(values)
		graph := chart.BarChart{
			Title: fmt.Sprintf("Histogram: %s", s.Name),
			Background: chart.Style{
				FillColor: drawing.ColorWhite,
			},
			Height:   512,
			Width:    1024,
			BarWidth: 60,
			Bars:     bars,
			YAxis: chart.YAxis{
				Name: "Count",
			},
		}

		path := filepath.Join(outDir, "hist_"+sanitizeName(s.Name)+".png")
		if err := renderPNG(path, &graph); err != nil {
			return err
		}
		rendered++
	}
	return nil
}

func renderPNG(path string, graph *chart.BarChart) error {
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return fmt.Errorf("error rendering chart %s: %w", path, err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func numericValues(col dataset.Column) []float64 {
	var out []float64
	for _, raw := range col.Values {
		if dataset.IsNull(raw) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func histogramBars(values []float64) []chart.Value {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	// single-valued column collapses into one bar
	if min == max {
		return []chart.Value{{Value: float64(len(values)), Label: fmt.Sprintf("%.4g", min)}}
	}

	width := (max - min) / histogramBins
	counts := make([]int, histogramBins)
	for _, v := range values {
		bin := int(math.Floor((v - min) / width))
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
	}

	bars := make([]chart.Value, histogramBins)
	for i, c := range counts {
		lo := min + float64(i)*width
		bars[i] = chart.Value{
			Value: float64(c),
			Label: fmt.Sprintf("%.4g", lo),
		}
	}
	return bars
}

// sanitizeName makes a column name safe as a file-name fragment.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
}
