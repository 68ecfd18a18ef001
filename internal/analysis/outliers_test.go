package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableFromCorpus(t *testing.T, lengths ...int) *LengthFrequencyTable {
	t.Helper()
	corpus := make([]RowRecord, len(lengths))
	for i, n := range lengths {
		corpus[i] = RowRecord{FileRow: i + 1, DataIndex: i - 1, CharCount: n}
	}
	if len(corpus) > 0 {
		corpus[0].DataIndex = -1
	}
	return BuildLengthTable(corpus)
}

func TestDetectOutliers(t *testing.T) {
	stats := StatisticsSummary{Q1: 20, Q3: 30}
	table := tableFromCorpus(t, 20, 25, 30, 40, 1000, 1000, 2000)

	report := DetectOutliers(stats, table)

	assert.Equal(t, 10, report.IQR)
	assert.InDelta(t, 45.0, report.UpperBound, 1e-9)
	assert.InDelta(t, 5.0, report.LowerBound, 1e-9)

	// 40 sits below the upper bound; 1000 and 2000 are flagged,
	// sorted descending with counts from the frequency table.
	require.Len(t, report.Entries, 2)
	assert.Equal(t, OutlierEntry{Length: 2000, Count: 1}, report.Entries[0])
	assert.Equal(t, OutlierEntry{Length: 1000, Count: 2}, report.Entries[1])
	assert.Equal(t, 3, report.TotalRows)
}

func TestDetectOutliersLowerBoundIsDisplayOnly(t *testing.T) {
	// A length below q1 - 1.5*iqr is NOT flagged: the lower bound is
	// computed for the reports but the filter is asymmetric on purpose.
	stats := StatisticsSummary{Q1: 100, Q3: 110}
	table := tableFromCorpus(t, 1, 100, 105, 110)

	report := DetectOutliers(stats, table)

	assert.InDelta(t, 85.0, report.LowerBound, 1e-9)
	assert.Empty(t, report.Entries)
	assert.Zero(t, report.TotalRows)
}

func TestDetectOutliersEmptyTable(t *testing.T) {
	report := DetectOutliers(StatisticsSummary{}, tableFromCorpus(t))
	assert.Empty(t, report.Entries)
	assert.Zero(t, report.IQR)
}
