// Package exporter renders analysis results into report files.
//
// Each analyzed input produces a set of reports under the configured reports
// directory: per-row character counts (file order and length-sorted),
// length and page-bucket frequency distributions, a markdown and a
// fixed-width text analysis report with outlier classification, and a
// spreadsheet workbook. CSV files are written with a UTF-8 BOM so Excel
// opens them correctly.
package exporter
