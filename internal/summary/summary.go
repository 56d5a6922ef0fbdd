// Package summary aggregates scanned file records into per-type
// statistics, top-N rankings and a modification-age histogram.
package summary

import (
	"sort"
	"time"

	"github.com/filereport/filereport/internal/scan"
)

// DefaultTopN is the default number of type partitions to rank.
const DefaultTopN = 10

// Metric selects the ranking metric for top-N selection.
type Metric int

const (
	// ByTotalSize ranks type partitions by cumulative size.
	ByTotalSize Metric = iota
	// ByCount ranks type partitions by file count.
	ByCount
)

// TypeAggregate holds per-type size statistics.
type TypeAggregate struct {
	// Type is the classification label.
	Type string `json:"type"`
	// Count is the number of files with this type.
	Count int `json:"count"`
	// Min is the smallest file size in bytes.
	Min int64 `json:"min"`
	// Max is the largest file size in bytes.
	Max int64 `json:"max"`
	// Total is the cumulative size in bytes.
	Total int64 `json:"total"`
}

// TimeBucket is a fixed modification-age window.
type TimeBucket struct {
	// Label is the display name of the window.
	Label string `json:"label"`
	// Cutoff is the oldest modification time belonging to the window.
	// The zero value marks the overflow bucket.
	Cutoff time.Time `json:"cutoff"`
	// Count is the number of files in the window.
	Count int `json:"count"`
}

// Summary bundles all aggregates derived from one scan.
type Summary struct {
	// Types contains one aggregate per distinct type, sorted by type name.
	Types []TypeAggregate `json:"types"`
	// TopBySize contains the top-N types by cumulative size, descending.
	TopBySize []TypeAggregate `json:"top_by_size"`
	// TopByCount contains the top-N types by file count, descending.
	TopByCount []TypeAggregate `json:"top_by_count"`
	// Buckets is the modification-age histogram, newest window first.
	Buckets []TimeBucket `json:"buckets"`
	// TotalFiles is the number of aggregated records.
	TotalFiles int `json:"total_files"`
	// TotalBytes is the cumulative size of all records.
	TotalBytes int64 `json:"total_bytes"`
}

// AggregateTypes partitions records by type and computes min, max, count
// and total size per partition. Partitions are returned sorted by type
// name so downstream ordering is deterministic.
func AggregateTypes(records []scan.FileRecord) []TypeAggregate {
	byType := make(map[string]*TypeAggregate)

	for _, r := range records {
		agg, ok := byType[r.Type]
		if !ok {
			byType[r.Type] = &TypeAggregate{
				Type:  r.Type,
				Count: 1,
				Min:   r.Size,
				Max:   r.Size,
				Total: r.Size,
			}

			continue
		}

		agg.Count++
		agg.Total += r.Size

		if r.Size < agg.Min {
			agg.Min = r.Size
		}

		if r.Size > agg.Max {
			agg.Max = r.Size
		}
	}

	aggs := make([]TypeAggregate, 0, len(byType))
	for _, agg := range byType {
		aggs = append(aggs, *agg)
	}

	sort.Slice(aggs, func(i, j int) bool {
		return aggs[i].Type < aggs[j].Type
	})

	return aggs
}

// TopN returns the n partitions with the largest value of the chosen
// metric, descending. Ties are broken by type name ascending. Fewer than
// n partitions yields all of them.
func TopN(aggs []TypeAggregate, n int, metric Metric) []TypeAggregate {
	value := func(a TypeAggregate) int64 {
		if metric == ByCount {
			return int64(a.Count)
		}

		return a.Total
	}

	top := make([]TypeAggregate, len(aggs))
	copy(top, aggs)

	sort.Slice(top, func(i, j int) bool {
		if value(top[i]) != value(top[j]) {
			return value(top[i]) > value(top[j])
		}

		return top[i].Type < top[j].Type
	})

	if len(top) > n {
		top = top[:n]
	}

	return top
}

// ageWindows returns the fixed sequence of age windows measured from now,
// ascending by age, plus the final overflow bucket.
func ageWindows(now time.Time) []TimeBucket {
	return []TimeBucket{
		{Label: "Last 2 hours", Cutoff: now.Add(-2 * time.Hour)},
		{Label: "Last 3 days", Cutoff: now.AddDate(0, 0, -3)},
		{Label: "Last 2 weeks", Cutoff: now.AddDate(0, 0, -14)},
		{Label: "Last 6 months", Cutoff: now.AddDate(0, -6, 0)},
		{Label: "Last year", Cutoff: now.AddDate(-1, 0, 0)},
		{Label: "Last 3 years", Cutoff: now.AddDate(-3, 0, 0)},
		{Label: "Older"},
	}
}

// BucketByAge assigns every record to exactly one age window: the
// earliest window whose cutoff is at or before the record's modification
// time, else the overflow bucket. The windows partition the records with
// no overlap and no omission.
func BucketByAge(records []scan.FileRecord, now time.Time) []TimeBucket {
	buckets := ageWindows(now)

	for _, r := range records {
		assigned := false

		for i := range buckets[:len(buckets)-1] {
			if !r.ModTime.Before(buckets[i].Cutoff) {
				buckets[i].Count++
				assigned = true

				break
			}
		}

		if !assigned {
			buckets[len(buckets)-1].Count++
		}
	}

	return buckets
}

// Build computes the full summary for a set of records at a given
// reference time, ranking the topN partitions per metric.
func Build(records []scan.FileRecord, now time.Time, topN int) *Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	types := AggregateTypes(records)

	var totalBytes int64
	for _, r := range records {
		totalBytes += r.Size
	}

	return &Summary{
		Types:      types,
		TopBySize:  TopN(types, topN, ByTotalSize),
		TopByCount: TopN(types, topN, ByCount),
		Buckets:    BucketByAge(records, now),
		TotalFiles: len(records),
		TotalBytes: totalBytes,
	}
}
