package dataprocessing

import (
	"sort"
	"strings"

	"meteocombine/pkg/contracts/domain"
)

// SampleRowCount is how many leading rows a Summary shows.
const SampleRowCount = 3

// Count is one bucket of a row histogram.
type Count struct {
	Key  string
	Rows int
}

// Summary describes a combined dataset for the console report.
type Summary struct {
	Rows          int
	Columns       []string
	Head          [][]string
	DateCounts    []Count
	StationCounts []Count
}

// Summarize computes the row and column totals, the first rows and the
// per-date and per-division histograms of a dataset.
//
// Dates are listed in ascending order; rows without a date are not
// counted. Divisions are listed by descending row count, ties in the order
// the division first appears; blank division names are skipped.
func Summarize(ds *domain.Dataset) Summary {
	summary := Summary{
		Rows:    ds.Len(),
		Columns: ds.Columns(),
	}

	records := ds.Records()
	if len(records) > SampleRowCount {
		summary.Head = records[:SampleRowCount]
	} else {
		summary.Head = records
	}

	dateIdx := indexOf(summary.Columns, domain.DateColumn)
	stationIdx := indexOf(summary.Columns, domain.StationColumn)

	summary.DateCounts = countBy(records, dateIdx, func(v string) bool { return v != "" })
	sort.SliceStable(summary.DateCounts, func(i, j int) bool {
		return summary.DateCounts[i].Key < summary.DateCounts[j].Key
	})

	summary.StationCounts = countBy(records, stationIdx, func(v string) bool { return strings.TrimSpace(v) != "" })
	sort.SliceStable(summary.StationCounts, func(i, j int) bool {
		return summary.StationCounts[i].Rows > summary.StationCounts[j].Rows
	})

	return summary
}

// countBy counts records per value of column idx in first-seen order.
func countBy(records [][]string, idx int, keep func(string) bool) []Count {
	if idx < 0 {
		return nil
	}
	var counts []Count
	pos := make(map[string]int)
	for _, record := range records {
		value := record[idx]
		if !keep(value) {
			continue
		}
		if i, ok := pos[value]; ok {
			counts[i].Rows++
			continue
		}
		pos[value] = len(counts)
		counts = append(counts, Count{Key: value, Rows: 1})
	}
	return counts
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
