package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filereport/filereport/internal/scan"
)

// record builds a minimal FileRecord for aggregation tests.
func record(fileType string, size int64, modTime time.Time) scan.FileRecord {
	return scan.FileRecord{Type: fileType, Size: size, ModTime: modTime}
}

func TestAggregateTypes(t *testing.T) {
	now := time.Now()
	records := []scan.FileRecord{
		record("Python", 100, now),
		record("Python", 300, now),
		record("Text", 50, now),
	}

	aggs := AggregateTypes(records)

	require.Len(t, aggs, 2)

	// Sorted by type name.
	assert.Equal(t, "Python", aggs[0].Type)
	assert.Equal(t, 2, aggs[0].Count)
	assert.Equal(t, int64(100), aggs[0].Min)
	assert.Equal(t, int64(300), aggs[0].Max)
	assert.Equal(t, int64(400), aggs[0].Total)

	assert.Equal(t, "Text", aggs[1].Type)
	assert.Equal(t, 1, aggs[1].Count)
	assert.Equal(t, int64(50), aggs[1].Min)
	assert.Equal(t, int64(50), aggs[1].Max)
	assert.Equal(t, int64(50), aggs[1].Total)
}

func TestAggregateTypes_CountInvariant(t *testing.T) {
	now := time.Now()
	records := []scan.FileRecord{
		record("Python", 1, now),
		record("Text", 2, now),
		record("Python", 3, now),
		record("Excel", 4, now),
		record("", 5, now),
	}

	total := 0
	for _, agg := range AggregateTypes(records) {
		total += agg.Count
	}

	assert.Equal(t, len(records), total)
}

func TestTopN_ByTotalSize(t *testing.T) {
	aggs := []TypeAggregate{
		{Type: "Text", Total: 100, Count: 10},
		{Type: "Python", Total: 300, Count: 1},
		{Type: "Excel", Total: 200, Count: 5},
	}

	top := TopN(aggs, 2, ByTotalSize)

	require.Len(t, top, 2)
	assert.Equal(t, "Python", top[0].Type)
	assert.Equal(t, "Excel", top[1].Type)
}

func TestTopN_ByCount(t *testing.T) {
	aggs := []TypeAggregate{
		{Type: "Text", Total: 100, Count: 10},
		{Type: "Python", Total: 300, Count: 1},
		{Type: "Excel", Total: 200, Count: 5},
	}

	top := TopN(aggs, 2, ByCount)

	require.Len(t, top, 2)
	assert.Equal(t, "Text", top[0].Type)
	assert.Equal(t, "Excel", top[1].Type)
}

func TestTopN_FewerPartitionsThanN(t *testing.T) {
	aggs := []TypeAggregate{
		{Type: "Text", Total: 100, Count: 1},
		{Type: "Python", Total: 300, Count: 1},
	}

	top := TopN(aggs, 10, ByTotalSize)

	// No padding: exactly the existing partitions, fully populated.
	require.Len(t, top, 2)
	assert.Equal(t, int64(300), top[0].Total)
	assert.Equal(t, int64(100), top[1].Total)
}

func TestTopN_TieBreakByTypeName(t *testing.T) {
	aggs := []TypeAggregate{
		{Type: "Zeta", Total: 100},
		{Type: "Alpha", Total: 100},
		{Type: "Mid", Total: 100},
	}

	top := TopN(aggs, 3, ByTotalSize)

	assert.Equal(t, "Alpha", top[0].Type)
	assert.Equal(t, "Mid", top[1].Type)
	assert.Equal(t, "Zeta", top[2].Type)
}

func TestTopN_DoesNotMutateInput(t *testing.T) {
	aggs := []TypeAggregate{
		{Type: "Text", Total: 100},
		{Type: "Python", Total: 300},
	}

	_ = TopN(aggs, 1, ByTotalSize)

	assert.Equal(t, "Text", aggs[0].Type)
	assert.Equal(t, "Python", aggs[1].Type)
}

func TestBucketByAge_Assignment(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	records := []scan.FileRecord{
		record("Text", 1, now.Add(-time.Hour)),          // Last 2 hours
		record("Text", 1, now.Add(-30*time.Hour)),       // Last 3 days
		record("Text", 1, now.AddDate(0, 0, -10)),       // Last 2 weeks
		record("Text", 1, now.AddDate(0, -3, 0)),        // Last 6 months
		record("Text", 1, now.AddDate(0, -9, 0)),        // Last year
		record("Text", 1, now.AddDate(-2, 0, 0)),        // Last 3 years
		record("Text", 1, now.AddDate(-10, 0, 0)),       // Older
		record("Text", 1, now.Add(-2*time.Hour)),        // Exact cutoff: Last 2 hours
		record("Text", 1, now),                          // Modified right now
	}

	buckets := BucketByAge(records, now)

	require.Len(t, buckets, 7)
	assert.Equal(t, "Last 2 hours", buckets[0].Label)
	assert.Equal(t, 3, buckets[0].Count)
	assert.Equal(t, 1, buckets[1].Count)
	assert.Equal(t, 1, buckets[2].Count)
	assert.Equal(t, 1, buckets[3].Count)
	assert.Equal(t, 1, buckets[4].Count)
	assert.Equal(t, 1, buckets[5].Count)
	assert.Equal(t, "Older", buckets[6].Label)
	assert.Equal(t, 1, buckets[6].Count)
}

func TestBucketByAge_PartitionInvariant(t *testing.T) {
	now := time.Now()

	var records []scan.FileRecord
	for i := range 50 {
		records = append(records, record("Text", 1, now.AddDate(0, 0, -i*30)))
	}

	total := 0
	for _, b := range BucketByAge(records, now) {
		total += b.Count
	}

	assert.Equal(t, len(records), total)
}

func TestBuild(t *testing.T) {
	now := time.Now()
	records := []scan.FileRecord{
		record("Python", 100, now),
		record("Text", 200, now.AddDate(-5, 0, 0)),
		record("Python", 300, now),
	}

	sum := Build(records, now, 10)

	assert.Equal(t, 3, sum.TotalFiles)
	assert.Equal(t, int64(600), sum.TotalBytes)
	require.Len(t, sum.Types, 2)
	require.Len(t, sum.TopBySize, 2)
	assert.Equal(t, "Python", sum.TopBySize[0].Type)
	require.Len(t, sum.Buckets, 7)

	bucketTotal := 0
	for _, b := range sum.Buckets {
		bucketTotal += b.Count
	}
	assert.Equal(t, sum.TotalFiles, bucketTotal)

	typeTotal := 0
	for _, agg := range sum.Types {
		typeTotal += agg.Count
	}
	assert.Equal(t, sum.TotalFiles, typeTotal)
}

func TestBuild_EmptyRecords(t *testing.T) {
	sum := Build(nil, time.Now(), 0)

	assert.Zero(t, sum.TotalFiles)
	assert.Empty(t, sum.Types)
	assert.Empty(t, sum.TopBySize)
	require.Len(t, sum.Buckets, 7)

	for _, b := range sum.Buckets {
		assert.Zero(t, b.Count)
	}
}
