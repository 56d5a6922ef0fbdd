package scan

import (
	"sort"
	"sync"
)

// collector accumulates records from concurrent fastwalk callbacks using a mutex.
type collector struct {
	mu         sync.Mutex // Protect concurrent access
	records    []FileRecord
	fileCount  int64
	totalBytes int64
	skipCount  int64
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{
		records: make([]FileRecord, 0),
	}
}

// addSkip increments the skip counter. This operation is protected by a mutex
// since fastwalk calls the callback from multiple goroutines concurrently.
func (c *collector) addSkip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipCount++
}

// add records a file. This operation is protected by a mutex
// since fastwalk calls the callback from multiple goroutines concurrently.
func (c *collector) add(record FileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += record.Size
	c.records = append(c.records, record)
}

// finalize produces the final Result from the collected data.
// Traversal order is not deterministic, so records are sorted by path
// for stable display.
func (c *collector) finalize() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.Slice(c.records, func(i, j int) bool {
		return c.records[i].Path < c.records[j].Path
	})

	return &Result{
		Records:    c.records,
		TotalBytes: c.totalBytes,
		SkipCount:  c.skipCount,
	}
}
