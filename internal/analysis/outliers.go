package analysis

import "sort"

// DetectOutliers classifies distinct length values by the 1.5x IQR rule.
// Only lengths above the upper bound are flagged; the lower bound is carried
// for display but intentionally never applied as a filter, because unusually
// large rows are the concern this analysis exists for. Row counts per flagged
// length come from the frequency table, not from recounting.
func DetectOutliers(stats StatisticsSummary, lengths *LengthFrequencyTable) OutlierReport {
	iqr := stats.Q3 - stats.Q1
	report := OutlierReport{
		IQR:        iqr,
		UpperBound: float64(stats.Q3) + 1.5*float64(iqr),
		LowerBound: float64(stats.Q1) - 1.5*float64(iqr),
	}

	for _, g := range lengths.Groups {
		if float64(g.Length) > report.UpperBound {
			report.Entries = append(report.Entries, OutlierEntry{
				Length: g.Length,
				Count:  g.Count,
			})
			report.TotalRows += g.Count
		}
	}

	sort.Slice(report.Entries, func(i, j int) bool {
		return report.Entries[i].Length > report.Entries[j].Length
	})
	return report
}
