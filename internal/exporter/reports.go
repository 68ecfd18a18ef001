package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"rowlens/internal/analysis"
	"rowlens/internal/config"
)

// Rough readability estimate: five characters per word on average.
const wordEstimateDivisor = 5

// Display limits carried over from the report format.
const (
	commonLengthsShown = 15
	commonPagesShown   = 10
	largestRowsShown   = 20
	outliersShown      = 30
	exampleIndices     = 3
	largestRowExamples = 5
)

// ReportSet writes the full set of report files for one analyzed input.
type ReportSet struct {
	paths *config.Paths
	csv   *CSVWriter

	// now is swappable for deterministic filenames in tests.
	now func() time.Time
}

// NewReportSet creates a report set writer rooted at the given paths.
func NewReportSet(paths *config.Paths) *ReportSet {
	return &ReportSet{
		paths: paths,
		csv:   NewCSVWriter(paths),
		now:   time.Now,
	}
}

// WriteAll renders every report for the result and returns the full paths of
// the files written. Filenames carry the input basename and a timestamp so
// repeated runs never clobber earlier reports.
func (r *ReportSet) WriteAll(basename string, res *analysis.Result) ([]string, error) {
	ts := r.now().Unix()
	name := func(kind, ext string) string {
		return fmt.Sprintf("%s_%s_%d.%s", basename, kind, ts, ext)
	}

	type fileSpec struct {
		filename string
		write    func(filename string) error
	}

	files := []fileSpec{
		{name("char_counts_report", "csv"), func(fn string) error {
			return r.csv.WriteSimpleCSV(fn,
				[]string{"file_row", "data_index", "character_length"},
				RowRecords(res))
		}},
		{name("length_sorted_report", "csv"), func(fn string) error {
			return r.csv.WriteSimpleCSV(fn,
				[]string{"file_row", "data_index", "character_length"},
				LengthSortedRecords(res))
		}},
		{name("value_counts_report", "csv"), func(fn string) error {
			return r.csv.WriteSimpleCSV(fn,
				[]string{"character_length_of_rows", "value_count"},
				ValueCountRecords(res))
		}},
		{name("pages_valuecounts_report", "csv"), func(fn string) error {
			return r.csv.WriteSimpleCSV(fn,
				[]string{"page_length", "pages_valuecount", "percentage"},
				PageCountRecords(res))
		}},
		{name("md_outliers_report", "md"), func(fn string) error {
			return r.writeText(fn, BuildMarkdownReport(basename, res))
		}},
		{name("txt_outliers_report", "txt"), func(fn string) error {
			return r.writeText(fn, BuildTextReport(basename, res))
		}},
		{name("analysis", "xlsx"), func(fn string) error {
			return r.writeWorkbook(fn, basename, res)
		}},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := f.write(f.filename); err != nil {
			return written, fmt.Errorf("writing %s: %w", f.filename, err)
		}
		written = append(written, r.paths.GetReportPath(f.filename))
	}

	slog.Info("reports written",
		slog.String("basename", basename),
		slog.Int("file_count", len(written)))
	return written, nil
}

func (r *ReportSet) writeText(filename, content string) error {
	if err := r.paths.EnsureDirectories(); err != nil {
		return err
	}
	return os.WriteFile(r.paths.GetReportPath(filename), []byte(content), 0644)
}

// RowRecords renders the corpus in file order.
func RowRecords(res *analysis.Result) [][]string {
	records := make([][]string, len(res.Corpus))
	for i, row := range res.Corpus {
		records[i] = []string{
			strconv.Itoa(row.FileRow),
			strconv.Itoa(row.DataIndex),
			strconv.Itoa(row.CharCount),
		}
	}
	return records
}

// LengthSortedRecords renders the corpus sorted by character length,
// descending, keeping file order among equal lengths.
func LengthSortedRecords(res *analysis.Result) [][]string {
	rows := make([]analysis.RowRecord, len(res.Corpus))
	copy(rows, res.Corpus)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CharCount > rows[j].CharCount
	})

	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{
			strconv.Itoa(row.FileRow),
			strconv.Itoa(row.DataIndex),
			strconv.Itoa(row.CharCount),
		}
	}
	return records
}

// ValueCountRecords renders the length frequency table, lengths descending.
func ValueCountRecords(res *analysis.Result) [][]string {
	groups := groupsByLengthDesc(res.Lengths)
	records := make([][]string, len(groups))
	for i, g := range groups {
		records[i] = []string{strconv.Itoa(g.Length), strconv.Itoa(g.Count)}
	}
	return records
}

// PageCountRecords renders the page-bucket table, buckets ascending, with
// each bucket's share of total rows.
func PageCountRecords(res *analysis.Result) [][]string {
	records := make([][]string, len(res.Pages.Groups))
	for i, g := range res.Pages.Groups {
		records[i] = []string{
			strconv.Itoa(g.Bucket),
			strconv.Itoa(g.Count),
			fmt.Sprintf("%.2f", percent(g.Count, res.TotalRows)),
		}
	}
	return records
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// sigmaDistance reports how many standard deviations a length sits from the
// mean. Zero spread yields zero rather than a division by zero.
func sigmaDistance(length int, stats analysis.StatisticsSummary) float64 {
	if stats.StdDev == 0 {
		return 0
	}
	d := float64(length) - stats.Mean
	if d < 0 {
		d = -d
	}
	return d / stats.StdDev
}

// joinInts formats up to max values as "a, b, c".
func joinInts(values []int, max int) string {
	if len(values) == 0 {
		return "N/A"
	}
	if len(values) > max {
		values = values[:max]
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func groupsByCountDesc(t *analysis.LengthFrequencyTable) []analysis.LengthGroup {
	groups := make([]analysis.LengthGroup, len(t.Groups))
	copy(groups, t.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

func groupsByLengthDesc(t *analysis.LengthFrequencyTable) []analysis.LengthGroup {
	groups := make([]analysis.LengthGroup, len(t.Groups))
	copy(groups, t.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Length > groups[j].Length
	})
	return groups
}

func pageGroupsByCountDesc(t *analysis.PageFrequencyTable) []analysis.PageGroup {
	groups := make([]analysis.PageGroup, len(t.Groups))
	copy(groups, t.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
