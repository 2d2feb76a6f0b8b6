package datasets

import (
	"fmt"
	"sort"
	"strings"
)

// ValueCount is the number of occurrences of one label.
type ValueCount struct {
	Label string
	Count int
}

// ValueCounts counts each distinct label, most frequent first. Ties keep
// the order in which labels first appear, like pandas value_counts.
func ValueCounts(labels []string) []ValueCount {
	index := make(map[string]int)
	var counts []ValueCount
	for _, l := range labels {
		if i, ok := index[l]; ok {
			counts[i].Count++
			continue
		}
		index[l] = len(counts)
		counts = append(counts, ValueCount{Label: l, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// FormatValueCounts renders counts under a column title.
func FormatValueCounts(title string, counts []ValueCount) string {
	width := len(title)
	for _, c := range counts {
		width = max(width, len(c.Label))
	}

	var b strings.Builder
	fmt.Fprintln(&b, title)
	for _, c := range counts {
		fmt.Fprintf(&b, "%-*s %4d\n", width, c.Label, c.Count)
	}
	fmt.Fprintln(&b, "Name: count")
	return b.String()
}
