package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Options configures a directory scan.
type Options struct {
	// Path is the root directory to scan.
	Path string
	// Excludes contains directory names to skip at any depth.
	Excludes []string
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// Result holds the outcome of a directory scan.
type Result struct {
	// Records contains one entry per collected file, sorted by path.
	Records []FileRecord
	// Root is the cleaned root directory that was scanned.
	Root string
	// TotalBytes is the cumulative size of all collected files.
	TotalBytes int64
	// SkipCount is the number of entries skipped due to read errors.
	SkipCount int64
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration
}

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		//nolint:forbidigo // Debug output to console
		fmt.Printf(format, args...)
	}
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.mu.Lock()

				files := c.fileCount
				bytes := c.totalBytes
				c.mu.Unlock()
				hook(files, bytes)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run walks the directory tree at opt.Path and collects one FileRecord
// per regular file, skipping any directory whose name appears in
// opt.Excludes. Entries that cannot be read are counted and skipped;
// a missing or non-directory root is a fatal error.
//
// The walk operation can be cancelled via ctx. Progress updates are sent
// to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Result, error) {
	log := logger{enabled: opt.Debug}

	if opt.Path == "" {
		opt.Path = "."
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	opt.Path = filepath.Clean(opt.Path)

	if statInfo, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	// Directory-name set for quick lookup
	excluded := make(map[string]struct{}, len(opt.Excludes))
	for _, name := range opt.Excludes {
		excluded[strings.Trim(name, "'\"")] = struct{}{}
	}

	log.printf("[debug]: excluded directory names:\n")

	for name := range excluded {
		log.printf("[debug]:   - %s\n", name)
	}

	coll := newCollector()

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, coll, progressHook, opt.ProgressInterval)

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	walkErr := fastwalk.Walk(conf, opt.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.printf("[debug]: error accessing path %s: %v\n", path, err)
			coll.addSkip()

			return nil // Skip unreadable entries
		}

		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if d.IsDir() {
			if path == opt.Path {
				return nil
			}

			if _, ok := excluded[d.Name()]; ok {
				log.printf("[debug]: excluding directory: %s\n", filepath.ToSlash(path))

				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			// Entry vanished or became unreadable between enumeration
			// and metadata read; skip it and continue.
			log.printf("[debug]: error reading metadata for %s: %v\n", path, err)
			coll.addSkip()

			return nil
		}

		if fileInfo.Size() < opt.MinSize {
			return nil
		}

		relPath, err := filepath.Rel(opt.Path, path)
		if err != nil {
			relPath = path
		}

		coll.add(NewRecord(relPath, fileInfo.Size(), fileInfo.ModTime()))

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	result := coll.finalize()
	result.Root = opt.Path
	result.Elapsed = time.Since(start)

	return result, nil
}
