package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/filereport/filereport/internal/scan"
	"github.com/filereport/filereport/internal/summary"
)

// PrintSummary writes a terminal preview of the report summary: top types
// by total size and by count, the modification-age histogram and totals.
func PrintSummary(writer io.Writer, result *scan.Result, sum *summary.Summary) error {
	title := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Fprintf(writer, "\n%s\n", title("Top types by total size"))

	if err := writeTypeTable(writer, sum.TopBySize); err != nil {
		return err
	}

	fmt.Fprintf(writer, "\n%s\n", title("Top types by file count"))

	if err := writeTypeTable(writer, sum.TopByCount); err != nil {
		return err
	}

	fmt.Fprintf(writer, "\n%s\n", title("Files by last modification"))

	if err := writeBucketTable(writer, sum.Buckets); err != nil {
		return err
	}

	fmt.Fprintf(writer, "\nTotal: %d files, %s", sum.TotalFiles, scan.FriendlySize(sum.TotalBytes))

	if result.SkipCount > 0 {
		fmt.Fprintf(writer, " (%d entries skipped)", result.SkipCount)
	}

	fmt.Fprintln(writer)

	return nil
}

// writeTypeTable renders one top-N ranking as a table.
func writeTypeTable(writer io.Writer, aggs []summary.TypeAggregate) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Type", "Files", "Total", "Min", "Max"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		data = append(data, []string{
			displayType(agg.Type),
			strconv.Itoa(agg.Count),
			scan.FriendlySize(agg.Total),
			scan.FriendlySize(agg.Min),
			scan.FriendlySize(agg.Max),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}

	return table.Render()
}

// writeBucketTable renders the modification-age histogram as a table.
func writeBucketTable(writer io.Writer, buckets []summary.TimeBucket) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Modified", "Files"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, []string{b.Label, strconv.Itoa(b.Count)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}

	return table.Render()
}

// displayType makes the empty classification (extensionless files) visible.
func displayType(t string) string {
	if t == "" {
		return "\"\""
	}

	return t
}
