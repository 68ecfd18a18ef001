package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rowlens/internal/analysis"
)

// writeWorkbook renders the analysis into a spreadsheet with Summary,
// Lengths, Pages and Outliers sheets.
func (r *ReportSet) writeWorkbook(filename, basename string, res *analysis.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, basename, res); err != nil {
		return err
	}
	if err := writeLengthsSheet(f, res); err != nil {
		return err
	}
	if err := writePagesSheet(f, res); err != nil {
		return err
	}
	if err := writeOutliersSheet(f, res); err != nil {
		return err
	}

	fullPath := r.paths.GetReportPath(filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, basename string, res *analysis.Result) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Input", basename},
		{"Total Rows", res.TotalRows},
		{"Total Characters", res.TotalChars},
		{"Read Errors", res.ErrorCount},
		{"Unique Row Lengths", len(res.Lengths.Groups)},
		{"Minimum", res.Stats.Min},
		{"Maximum", res.Stats.Max},
		{"Mean", res.Stats.Mean},
		{"Median", res.Stats.Median},
		{"Q1", res.Stats.Q1},
		{"Q3", res.Stats.Q3},
		{"IQR", res.Outliers.IQR},
		{"Standard Deviation", res.Stats.StdDev},
		{"Outlier Threshold (upper)", res.Outliers.UpperBound},
		{"Outlier Threshold (lower, display only)", res.Outliers.LowerBound},
		{"Outlier Rows", res.Outliers.TotalRows},
	}
	return writeSheetRows(f, sheet, nil, rows)
}

func writeLengthsSheet(f *excelize.File, res *analysis.Result) error {
	const sheet = "Lengths"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	groups := groupsByLengthDesc(res.Lengths)
	rows := make([][]interface{}, len(groups))
	for i, g := range groups {
		rows[i] = []interface{}{
			g.Length, g.Count,
			percent(g.Count, res.TotalRows),
			joinInts(g.FileRows, exampleIndices),
		}
	}
	return writeSheetRows(f, sheet,
		[]interface{}{"Length", "Count", "Percentage", "Example File Rows"}, rows)
}

func writePagesSheet(f *excelize.File, res *analysis.Result) error {
	const sheet = "Pages"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := make([][]interface{}, len(res.Pages.Groups))
	for i, g := range res.Pages.Groups {
		rows[i] = []interface{}{
			g.Bucket, g.Count,
			percent(g.Count, res.TotalRows),
			joinInts(g.FileRows, exampleIndices),
		}
	}
	return writeSheetRows(f, sheet,
		[]interface{}{"Page Bucket", "Count", "Percentage", "Example File Rows"}, rows)
}

func writeOutliersSheet(f *excelize.File, res *analysis.Result) error {
	const sheet = "Outliers"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := make([][]interface{}, len(res.Outliers.Entries))
	for i, e := range res.Outliers.Entries {
		g, _ := res.Lengths.Group(e.Length)
		rows[i] = []interface{}{
			e.Length, e.Count,
			joinInts(g.FileRows, exampleIndices),
			sigmaDistance(e.Length, res.Stats),
		}
	}
	return writeSheetRows(f, sheet,
		[]interface{}{"Length", "Count", "Example File Rows", "Std. Deviations"}, rows)
}

func writeSheetRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	rowNum := 1
	if header != nil {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &header); err != nil {
			return err
		}
		rowNum++
	}
	for _, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		rowNum++
	}
	return nil
}
