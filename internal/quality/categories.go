package quality

import (
	"sort"

	"github.com/edaqa/eda-cli/internal/dataset"
)

// CategoryCount is one value of a categorical column with its frequency.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TopCategories returns, for every categorical column, the k most frequent
// non-null values. Ties break on value order so the output is deterministic.
func TopCategories(ds *dataset.Dataset, summaries []ColumnSummary, k int) map[string][]CategoryCount {
	if k <= 0 {
		return nil
	}

	out := make(map[string][]CategoryCount)
	for i, s := range summaries {
		if s.Type != TypeCategorical {
			continue
		}

		counts := make(map[string]int)
		for _, raw := range ds.Columns[i].Values {
			if dataset.IsNull(raw) {
				continue
			}
			counts[raw]++
		}
		if len(counts) == 0 {
			continue
		}

		ranked := make([]CategoryCount, 0, len(counts))
		for v, c := range counts {
			ranked = append(ranked, CategoryCount{Value: v, Count: c})
		}
		sort.Slice(ranked, func(a, b int) bool {
			if ranked[a].Count != ranked[b].Count {
				return ranked[a].Count > ranked[b].Count
			}
			return ranked[a].Value < ranked[b].Value
		})
		if len(ranked) > k {
			ranked = ranked[:k]
		}
		out[s.Name] = ranked
	}
	return out
}
