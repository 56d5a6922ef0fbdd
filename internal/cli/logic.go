package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/filereport/filereport/internal/scan"
	"github.com/filereport/filereport/internal/summary"
	"github.com/filereport/filereport/internal/xlsx"
)

// run scans the directory, aggregates the records and writes the workbook.
func run(options Options) error {
	enableProgress := !options.Quiet &&
		!options.Scan.Debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	ctx := context.Background()

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := scan.Run(ctx, options.Scan, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	var sum *summary.Summary
	if !options.NoSummary {
		sum = summary.Build(result.Records, time.Now(), options.TopN)
	}

	if err := xlsx.Write(options.Output, result.Records, sum); err != nil {
		return err
	}

	if !options.Quiet && sum != nil && isatty.IsTerminal(os.Stdout.Fd()) {
		if err := PrintSummary(os.Stdout, result, sum); err != nil {
			return err
		}
	}

	if !options.Quiet {
		written := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(os.Stdout, "%s %s (%d files, %s in %v)\n",
			written("Report written:"), options.Output,
			len(result.Records), scan.FriendlySize(result.TotalBytes), result.Elapsed)
	}

	return nil
}
