package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inputOfLengths builds a line-oriented input whose rows have exactly the
// given character counts.
func inputOfLengths(lengths ...int) string {
	lines := make([]string, len(lengths))
	for i, n := range lengths {
		lines[i] = strings.Repeat("a", n)
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestAnalyzeBasic(t *testing.T) {
	input := inputOfLengths(10, 20, 20, 30, 1000)

	result, err := Analyze(strings.NewReader(input), Config{Workers: 3, PageSize: 3000})
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 1080, result.TotalChars)
	assert.Zero(t, result.ErrorCount)

	require.Len(t, result.Corpus, 5)
	assert.Equal(t, RowRecord{FileRow: 1, DataIndex: -1, CharCount: 10}, result.Corpus[0])
	assert.Equal(t, RowRecord{FileRow: 2, DataIndex: 0, CharCount: 20}, result.Corpus[1])
	assert.Equal(t, RowRecord{FileRow: 5, DataIndex: 3, CharCount: 1000}, result.Corpus[4])

	assert.Equal(t, 20, result.Stats.Median)
	assert.Equal(t, 20, result.Stats.Q1)
	assert.Equal(t, 30, result.Stats.Q3)
	assert.InDelta(t, 216.0, result.Stats.Mean, 1e-9)

	// upper = 30 + 1.5*10 = 45, so only 1000 is flagged.
	require.Len(t, result.Outliers.Entries, 1)
	assert.Equal(t, 1000, result.Outliers.Entries[0].Length)
}

func TestAnalyzeOrderInvariant(t *testing.T) {
	// The corpus must come back sorted by file_row and be identical for
	// every worker count, including W > rows and W = 1.
	input := inputOfLengths(5, 0, 17, 3, 3, 250, 8, 8, 8, 1, 42)

	baseline, err := Analyze(strings.NewReader(input), Config{Workers: 1})
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 4, 8, 16, 64} {
		result, err := Analyze(strings.NewReader(input), Config{Workers: workers})
		require.NoError(t, err, "workers=%d", workers)

		for i := 1; i < len(result.Corpus); i++ {
			assert.Greater(t, result.Corpus[i].FileRow, result.Corpus[i-1].FileRow,
				"workers=%d", workers)
		}
		assert.Equal(t, baseline.Corpus, result.Corpus, "workers=%d", workers)
	}
}

func TestAnalyzeSumInvariant(t *testing.T) {
	input := inputOfLengths(7, 13, 0, 99, 1, 1, 500, 23, 64, 12)

	for _, workers := range []int{1, 2, 3, 7, 10, 20} {
		result, err := Analyze(strings.NewReader(input), Config{Workers: workers})
		require.NoError(t, err)

		recomputed := 0
		for _, row := range result.Corpus {
			recomputed += row.CharCount
		}
		assert.Equal(t, recomputed, result.TotalChars, "workers=%d", workers)
	}
}

func TestAnalyzeHeaderRule(t *testing.T) {
	input := inputOfLengths(4, 4, 4, 4)

	result, err := Analyze(strings.NewReader(input), Config{})
	require.NoError(t, err)

	for i, row := range result.Corpus {
		if row.FileRow == 1 {
			assert.Equal(t, -1, row.DataIndex)
		} else {
			assert.Equal(t, i-1, row.DataIndex)
		}
	}
}

func TestAnalyzeStrategiesAgree(t *testing.T) {
	input := inputOfLengths(12, 0, 3500, 80, 80, 80, 7, 2999, 3000, 3001)

	parallel, err := Analyze(strings.NewReader(input), Config{Workers: 4, PageSize: 3000})
	require.NoError(t, err)
	streaming, err := Analyze(strings.NewReader(input), Config{Streaming: true, PageSize: 3000})
	require.NoError(t, err)

	assert.Equal(t, parallel.Corpus, streaming.Corpus)
	assert.Equal(t, parallel.Stats, streaming.Stats)
	assert.Equal(t, parallel.Lengths.Groups, streaming.Lengths.Groups)
	assert.Equal(t, parallel.Pages, streaming.Pages)
	assert.Equal(t, parallel.Outliers, streaming.Outliers)
	assert.Equal(t, parallel.TotalChars, streaming.TotalChars)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, cfg := range []Config{{}, {Streaming: true}} {
		result, err := Analyze(strings.NewReader(""), cfg)
		require.NoError(t, err)

		assert.Zero(t, result.TotalRows)
		assert.Zero(t, result.TotalChars)
		assert.Equal(t, StatisticsSummary{}, result.Stats)
		assert.Empty(t, result.Lengths.Groups)
		assert.Empty(t, result.Pages.Groups)
		assert.Empty(t, result.Outliers.Entries)
	}
}

func TestAnalyzeUnreadableLineIsDroppedAndCounted(t *testing.T) {
	// Line 2 is not valid UTF-8: it must be excluded from the corpus,
	// counted in ErrorCount, and must not stop ingestion of line 3.
	var input bytes.Buffer
	input.WriteString("abcd\n")
	input.Write([]byte{0xff, 0xfe, 0xfd})
	input.WriteString("\nwxyz\n")

	for _, cfg := range []Config{{Workers: 2}, {Streaming: true}} {
		result, err := Analyze(bytes.NewReader(input.Bytes()), cfg)
		require.NoError(t, err)

		assert.Equal(t, 1, result.ErrorCount)
		require.Len(t, result.Corpus, 2)
		assert.Equal(t, 1, result.Corpus[0].FileRow)
		assert.Equal(t, 3, result.Corpus[1].FileRow)
	}
}

func TestAnalyzeNoTrailingNewline(t *testing.T) {
	result, err := Analyze(strings.NewReader("ab\ncdef"), Config{})
	require.NoError(t, err)

	require.Len(t, result.Corpus, 2)
	assert.Equal(t, 2, result.Corpus[0].CharCount)
	assert.Equal(t, 4, result.Corpus[1].CharCount)
}

func TestAnalyzeCRLF(t *testing.T) {
	result, err := Analyze(strings.NewReader("ab\r\ncd\r\n"), Config{})
	require.NoError(t, err)

	require.Len(t, result.Corpus, 2)
	assert.Equal(t, 2, result.Corpus[0].CharCount)
	assert.Equal(t, 2, result.Corpus[1].CharCount)
}

type failingReader struct{ after int }

func (f *failingReader) Read(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, assert.AnError
	}
	n := f.after
	if n > len(p) {
		n = len(p)
	}
	for i := 0; i < n; i++ {
		p[i] = 'a'
	}
	f.after -= n
	return n, nil
}

func TestAnalyzeSourceFailureIsFatal(t *testing.T) {
	_, err := Analyze(&failingReader{after: 10}, Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
