package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Analyze runs the full pipeline over one line-oriented source and bundles
// every derived artifact. Empty input is not an error: it yields a
// zero-valued summary and empty tables.
//
// The parallel strategy materializes the input, chunks it across
// cfg.Workers, and restores file order at the join barrier. The streaming
// strategy measures each line as it is read. Both produce identical results.
func Analyze(r io.Reader, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	start := time.Now()

	var (
		corpus     []RowRecord
		totalChars int
		errorCount int
	)

	if cfg.Streaming {
		var err error
		errorCount, err = scanLines(r, func(fileRow int, text string) {
			n := countChars(text)
			corpus = append(corpus, RowRecord{FileRow: fileRow, CharCount: n})
			totalChars += n
		})
		if err != nil {
			return nil, err
		}
		// Streaming ingestion is already in file order.
		assignDataIndices(corpus)
	} else {
		lines, n, err := ingest(r)
		if err != nil {
			return nil, err
		}
		errorCount = n
		corpus, totalChars, err = runParallel(lines, cfg.Workers)
		if err != nil {
			return nil, fmt.Errorf("parallel analysis failed: %w", err)
		}
	}

	lengths := make([]int, len(corpus))
	for i, row := range corpus {
		lengths[i] = row.CharCount
	}

	lengthTable := BuildLengthTable(corpus)
	result := &Result{
		Corpus:     corpus,
		Lengths:    lengthTable,
		Pages:      BuildPageTable(lengthTable, cfg.PageSize),
		Stats:      Summarize(lengths),
		TotalRows:  len(corpus),
		TotalChars: totalChars,
		ErrorCount: errorCount,
	}
	result.Outliers = DetectOutliers(result.Stats, lengthTable)

	slog.Info("analysis complete",
		slog.Int("total_rows", result.TotalRows),
		slog.Int("total_chars", result.TotalChars),
		slog.Int("error_count", result.ErrorCount),
		slog.Int("outlier_lengths", len(result.Outliers.Entries)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}
