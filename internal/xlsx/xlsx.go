// Package xlsx renders scan results into a formatted spreadsheet
// workbook: a flat file listing plus summary tables with pie charts.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/filereport/filereport/internal/scan"
	"github.com/filereport/filereport/internal/summary"
)

const (
	listingSheet = "List of Files"
	summarySheet = "Summary"

	// dateFormat is the built-in number format for datetime cells.
	dateFormat = 22
	// intFormat is the built-in thousands-separated integer format.
	intFormat = 3
)

// listingColumns defines the listing sheet header row and column widths.
//
//nolint:gochecknoglobals // Config constant
var listingColumns = []struct {
	head  string
	width float64
}{
	{"File", 80},
	{"Type", 10},
	{"Size", 15},
	{"Size (bytes)", 15},
	{"Last Modified", 20},
}

// Write renders the file listing and, when sum is non-nil, the summary
// tables and pie charts into a workbook at path. Write failures are
// surfaced as-is; no partial artifact is kept in memory across calls.
func Write(path string, records []scan.FileRecord, sum *summary.Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", listingSheet); err != nil {
		return fmt.Errorf("renaming listing sheet: %w", err)
	}

	if err := writeListing(f, records); err != nil {
		return fmt.Errorf("writing file listing: %w", err)
	}

	if sum != nil {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return fmt.Errorf("creating summary sheet: %w", err)
		}

		if err := writeSummary(f, sum); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %q: %w", path, err)
	}

	return nil
}

// writeListing fills the listing sheet with one row per record and wraps
// the range in a striped table.
func writeListing(f *excelize.File, records []scan.FileRecord) error {
	for col, c := range listingColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}

		if err := f.SetCellValue(listingSheet, cell, c.head); err != nil {
			return err
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}

		if err := f.SetColWidth(listingSheet, name, name, c.width); err != nil {
			return err
		}
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: dateFormat})
	if err != nil {
		return err
	}

	intStyle, err := f.NewStyle(&excelize.Style{NumFmt: intFormat})
	if err != nil {
		return err
	}

	for i, r := range records {
		row := i + 2

		values := []any{r.Path, r.Type, r.FriendlySize, r.Size, r.ModTime}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}

			if err := f.SetCellValue(listingSheet, cell, v); err != nil {
				return err
			}
		}

		if err := f.SetCellStyle(listingSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), intStyle); err != nil {
			return err
		}

		if err := f.SetCellStyle(listingSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), dateStyle); err != nil {
			return err
		}
	}

	// An empty table range is invalid, so only tabulate actual rows.
	if len(records) > 0 {
		stripes := true
		table := &excelize.Table{
			Range:          fmt.Sprintf("A1:E%d", len(records)+1),
			Name:           "ListFiles",
			StyleName:      "TableStyleMedium9",
			ShowRowStripes: &stripes,
		}

		if err := f.AddTable(listingSheet, table); err != nil {
			return err
		}
	}

	return nil
}

// writeSummary lays out the three summary tables in columns A-E of the
// summary sheet and places one pie chart next to each.
func writeSummary(f *excelize.File, sum *summary.Summary) error {
	row := 1

	row, err := writeTypeTable(f, "Top types by total size", sum.TopBySize, row, summary.ByTotalSize)
	if err != nil {
		return err
	}

	row, err = writeTypeTable(f, "Top types by file count", sum.TopByCount, row+2, summary.ByCount)
	if err != nil {
		return err
	}

	if _, err := writeBucketTable(f, sum.Buckets, row+2); err != nil {
		return err
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 25); err != nil {
		return err
	}

	return f.SetColWidth(summarySheet, "B", "E", 14)
}

// writeTypeTable writes one top-N table starting at startRow and returns
// the last row used. The pie chart slices the ranking metric.
func writeTypeTable(f *excelize.File, title string, aggs []summary.TypeAggregate, startRow int, metric summary.Metric) (int, error) {
	if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", startRow), title); err != nil {
		return 0, err
	}

	headRow := startRow + 1
	heads := []any{"Type", "Files", "Total (bytes)", "Min (bytes)", "Max (bytes)"}

	if err := setRow(f, headRow, heads); err != nil {
		return 0, err
	}

	for i, agg := range aggs {
		values := []any{agg.Type, agg.Count, agg.Total, agg.Min, agg.Max}
		if err := setRow(f, headRow+1+i, values); err != nil {
			return 0, err
		}
	}

	lastRow := headRow + len(aggs)

	if len(aggs) > 0 {
		valueCol := "C"
		if metric == summary.ByCount {
			valueCol = "B"
		}

		if err := addPie(f, title, headRow+1, lastRow, valueCol, fmt.Sprintf("G%d", startRow)); err != nil {
			return 0, err
		}
	}

	return lastRow, nil
}

// writeBucketTable writes the modification-age histogram starting at
// startRow and returns the last row used.
func writeBucketTable(f *excelize.File, buckets []summary.TimeBucket, startRow int) (int, error) {
	if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", startRow), "Files by last modification"); err != nil {
		return 0, err
	}

	headRow := startRow + 1
	if err := setRow(f, headRow, []any{"Modified", "Files"}); err != nil {
		return 0, err
	}

	for i, b := range buckets {
		if err := setRow(f, headRow+1+i, []any{b.Label, b.Count}); err != nil {
			return 0, err
		}
	}

	lastRow := headRow + len(buckets)

	if len(buckets) > 0 {
		if err := addPie(f, "Files by last modification", headRow+1, lastRow, "B", fmt.Sprintf("G%d", startRow)); err != nil {
			return 0, err
		}
	}

	return lastRow, nil
}

// setRow writes values into columns A.. of the summary sheet at row.
func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}

		if err := f.SetCellValue(summarySheet, cell, v); err != nil {
			return err
		}
	}

	return nil
}

// addPie places a pie chart at anchor slicing valueCol over the label
// column A for rows firstRow..lastRow.
func addPie(f *excelize.File, title string, firstRow, lastRow int, valueCol, anchor string) error {
	chart := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Categories: fmt.Sprintf("%s!$A$%d:$A$%d", summarySheet, firstRow, lastRow),
				Values:     fmt.Sprintf("%s!$%s$%d:$%s$%d", summarySheet, valueCol, firstRow, valueCol, lastRow),
			},
		},
		Title: []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{
			Position: "right",
		},
	}

	return f.AddChart(summarySheet, anchor, chart)
}
