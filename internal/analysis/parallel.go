package analysis

import (
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"
)

// chunkResult is the owned output of one worker.
type chunkResult struct {
	records    []RowRecord
	charsTotal int
}

// processChunk computes per-row character counts for one chunk. The chunk is
// owned by this worker; its output is returned, never written through shared
// state. A chunk that violates the within-chunk ordering invariant is a fatal
// worker fault: partial statistics from a broken partition would be silently
// wrong, so the whole run must abort.
func processChunk(chunk []rawLine) (chunkResult, error) {
	res := chunkResult{records: make([]RowRecord, 0, len(chunk))}

	lastRow := 0
	for _, line := range chunk {
		if line.fileRow <= lastRow {
			return chunkResult{}, fmt.Errorf(
				"chunk out of order: file_row %d after %d", line.fileRow, lastRow)
		}
		lastRow = line.fileRow

		n := countChars(line.text)
		res.records = append(res.records, RowRecord{
			FileRow:   line.fileRow,
			CharCount: n,
		})
		res.charsTotal += n
	}
	return res, nil
}

// runParallel fans the chunks out across one goroutine each, blocks until
// every worker has completed, then restores global file order and assigns
// data indices. Any worker fault aborts the entire run.
func runParallel(lines []rawLine, workers int) ([]RowRecord, int, error) {
	chunks := partition(lines, workers)
	slog.Debug("dispatching workers",
		slog.Int("total_rows", len(lines)),
		slog.Int("chunks", len(chunks)))

	results := make([]chunkResult, len(chunks))

	var g errgroup.Group
	for i, chunk := range chunks {
		g.Go(func() error {
			res, err := processChunk(chunk)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	// Full join barrier: no partial aggregation ever happens.
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var (
		corpus     = make([]RowRecord, 0, len(lines))
		totalChars int
	)
	for _, res := range results {
		corpus = append(corpus, res.records...)
		totalChars += res.charsTotal
	}

	// Completion order across workers is unordered; chunk boundaries do not
	// guarantee global order. The sort is mandatory, not defensive.
	sort.Slice(corpus, func(i, j int) bool {
		return corpus[i].FileRow < corpus[j].FileRow
	})
	assignDataIndices(corpus)

	return corpus, totalChars, nil
}

// assignDataIndices numbers rows after the corpus is in final sorted order:
// -1 for the header line (file_row 1), otherwise position minus one.
func assignDataIndices(corpus []RowRecord) {
	for i := range corpus {
		if corpus[i].FileRow == 1 {
			corpus[i].DataIndex = -1
		} else {
			corpus[i].DataIndex = i - 1
		}
	}
}
