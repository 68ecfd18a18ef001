package exporter

import (
	"fmt"
	"strings"

	"rowlens/internal/analysis"
)

// BuildMarkdownReport renders the full analysis report as markdown: file
// statistics, descriptive statistics, IQR thresholds, common and extreme
// lengths, the outlier table and recommendations.
func BuildMarkdownReport(basename string, res *analysis.Result) string {
	var b strings.Builder
	stats := res.Stats
	pageSize := res.Pages.PageSize

	fmt.Fprintf(&b, "# Row Length Analysis for %s\n", basename)
	fmt.Fprintf(&b, "\nAnalysis performed on %d rows (%d with errors)\n",
		res.TotalRows, res.ErrorCount)

	fmt.Fprintf(&b, "\n## File Statistics\n")
	fmt.Fprintf(&b, "- **Total Rows**: %d\n", res.TotalRows)
	fmt.Fprintf(&b, "- **Total Characters**: %d (~%d words, ~%d pages)\n",
		res.TotalChars, res.TotalChars/wordEstimateDivisor, res.TotalChars/pageSize)
	avg := 0.0
	if res.TotalRows > 0 {
		avg = float64(res.TotalChars) / float64(res.TotalRows)
	}
	fmt.Fprintf(&b, "- **Average Characters Per Row**: %.2f (~%.1f words)\n",
		avg, avg/wordEstimateDivisor)
	fmt.Fprintf(&b, "- **Unique Row Lengths**: %d\n", len(res.Lengths.Groups))

	fmt.Fprintf(&b, "\n## Descriptive Statistics for Row Lengths\n")
	fmt.Fprintf(&b, "- **Minimum**: %d chars\n", stats.Min)
	fmt.Fprintf(&b, "- **Maximum**: %d chars (~%d words, ~%.1f pages)\n",
		stats.Max, stats.Max/wordEstimateDivisor, float64(stats.Max)/float64(pageSize))
	fmt.Fprintf(&b, "- **Range**: %d chars\n", stats.Max-stats.Min)
	fmt.Fprintf(&b, "- **Mean**: %.2f chars\n", stats.Mean)
	fmt.Fprintf(&b, "- **Median**: %d chars\n", stats.Median)
	fmt.Fprintf(&b, "- **25th Percentile (Q1)**: %d chars\n", stats.Q1)
	fmt.Fprintf(&b, "- **75th Percentile (Q3)**: %d chars\n", stats.Q3)
	fmt.Fprintf(&b, "- **Interquartile Range (IQR)**: %d chars\n", res.Outliers.IQR)
	fmt.Fprintf(&b, "- **Standard Deviation**: %.2f chars\n", stats.StdDev)

	lower := res.Outliers.LowerBound
	if lower < 0 {
		lower = 0
	}
	fmt.Fprintf(&b, "\n**Outlier Detection Threshold (1.5 × IQR method):**\n")
	fmt.Fprintf(&b, "- Values above: %d chars may be considered outliers\n",
		int(res.Outliers.UpperBound))
	fmt.Fprintf(&b, "- Values below: %d chars may be considered outliers (if positive)\n",
		int(lower))

	fmt.Fprintf(&b, "\n## Common Row Lengths\n")
	fmt.Fprintf(&b, "| Row Length | Count | Percentage | File Rows | Data Indices |\n")
	fmt.Fprintf(&b, "|------------|-------|------------|-----------|--------------|\n")
	byCount := groupsByCountDesc(res.Lengths)
	for _, g := range byCount[:minInt(commonLengthsShown, len(byCount))] {
		fmt.Fprintf(&b, "| %d | %d | %.2f%% | %s | %s |\n",
			g.Length, g.Count, percent(g.Count, res.TotalRows),
			joinInts(g.FileRows, exampleIndices),
			joinInts(g.DataIndices, exampleIndices))
	}

	fmt.Fprintf(&b, "\n## Top %d Common Page Lengths\n", commonPagesShown)
	fmt.Fprintf(&b, "| Page Length | Count | Percentage | File Rows | Data Indices |\n")
	fmt.Fprintf(&b, "|-------------|-------|------------|-----------|--------------|\n")
	pagesByCount := pageGroupsByCountDesc(res.Pages)
	for _, g := range pagesByCount[:minInt(commonPagesShown, len(pagesByCount))] {
		fmt.Fprintf(&b, "| %d | %d | %.2f%% | %s | %s |\n",
			g.Bucket, g.Count, percent(g.Count, res.TotalRows),
			joinInts(g.FileRows, exampleIndices),
			joinInts(g.DataIndices, exampleIndices))
	}
	fmt.Fprintf(&b, "\n*Note: Page length is calculated using %d characters per page.*\n", pageSize)

	fmt.Fprintf(&b, "\n## Extreme Row Lengths (Largest Rows)\n")
	fmt.Fprintf(&b, "| Count | Chars | Words (est.) | Pages (est.) | File Rows | Data Indices | Std. Devs from Mean |\n")
	fmt.Fprintf(&b, "|-------|-------|--------------|--------------|-----------|--------------|---------------------|\n")
	bySize := groupsByLengthDesc(res.Lengths)
	for _, g := range bySize[:minInt(largestRowsShown, len(bySize))] {
		fmt.Fprintf(&b, "| %d | %d | %d | %.2f | %s | %s | %.2f σ |\n",
			g.Count, g.Length, g.Length/wordEstimateDivisor,
			float64(g.Length)/float64(pageSize),
			joinInts(g.FileRows, exampleIndices),
			joinInts(g.DataIndices, exampleIndices),
			sigmaDistance(g.Length, stats))
	}

	fmt.Fprintf(&b, "\n## Rows Above 1.5 × IQR Threshold\n")
	fmt.Fprintf(&b, "Any row length above %d characters is considered a statistical outlier.\n",
		int(res.Outliers.UpperBound))
	fmt.Fprintf(&b, "\nFound %d rows (%.2f%% of total) exceeding the outlier threshold.\n",
		res.Outliers.TotalRows, percent(res.Outliers.TotalRows, res.TotalRows))
	if len(res.Outliers.Entries) > outliersShown {
		fmt.Fprintf(&b, "Showing the %d largest outliers among %d different outlier lengths:\n",
			outliersShown, len(res.Outliers.Entries))
	}
	fmt.Fprintf(&b, "\n| Row Length | Count | File Rows | Data Indices | Standard Deviations |\n")
	fmt.Fprintf(&b, "|------------|-------|-----------|--------------|---------------------|\n")
	for _, e := range res.Outliers.Entries[:minInt(outliersShown, len(res.Outliers.Entries))] {
		g, _ := res.Lengths.Group(e.Length)
		fmt.Fprintf(&b, "| %d | %d | %s | %s | %.2f σ |\n",
			e.Length, e.Count,
			joinInts(g.FileRows, exampleIndices),
			joinInts(g.DataIndices, exampleIndices),
			sigmaDistance(e.Length, stats))
	}

	fmt.Fprintf(&b, "\n## Recommendations\n")
	fmt.Fprintf(&b, "Based on the analysis, here are some actionable recommendations:\n")
	if len(bySize) > 0 {
		largest := bySize[0]
		fmt.Fprintf(&b, "\n### Extremely Large Rows\n")
		fmt.Fprintf(&b, "- The largest row contains %d characters (approximately %.1f pages).\n",
			largest.Length, float64(largest.Length)/float64(pageSize))
		fmt.Fprintf(&b, "- Investigate file rows: %s\n",
			joinInts(largest.FileRows, largestRowExamples))
		fmt.Fprintf(&b, "- These rows are %.2f standard deviations from the mean.\n",
			sigmaDistance(largest.Length, stats))
		fmt.Fprintf(&b, "- **Action**: These rows may contain improperly formatted data or merged records.\n")
		fmt.Fprintf(&b, "- **Suggestion**: Manually inspect these rows to determine if they need to be split or cleaned.\n")
	}
	fmt.Fprintf(&b, "\n### General Data Quality\n")
	fmt.Fprintf(&b, "- The median row length is %d characters.\n", stats.Median)
	fmt.Fprintf(&b, "- Rows with lengths near the median (between %d and %d characters) are likely to be properly formatted.\n",
		stats.Q1, stats.Q3)
	if res.TotalRows > 0 && res.Outliers.TotalRows > res.TotalRows/10 {
		fmt.Fprintf(&b, "- **Warning**: More than 10%% of rows are statistical outliers, suggesting high variability in row structure.\n")
	}
	if stats.Mean > float64(stats.Median)*1.5 {
		fmt.Fprintf(&b, "- The distribution is heavily skewed right (mean much larger than median), suggesting some extremely large values are affecting the average.\n")
	}

	fmt.Fprintf(&b, "\n## Index Reference\n")
	fmt.Fprintf(&b, "- **File Row**: Physical line number in the file (1-based, starts at 1)\n")
	fmt.Fprintf(&b, "- **Data Index**: Position in the data (-1 = header row, 0 = first data row, 1 = second data row, etc.)\n")
	fmt.Fprintf(&b, "- For most use cases, you should refer to the File Row when locating rows in the original file\n")

	return b.String()
}
