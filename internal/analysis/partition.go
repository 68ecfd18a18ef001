package analysis

// partition splits the ingested lines into at most `workers` contiguous
// chunks of ceil(len/workers) lines each, preserving file order within every
// chunk. An empty input yields no chunks.
func partition(lines []rawLine, workers int) [][]rawLine {
	if len(lines) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	size := (len(lines) + workers - 1) / workers
	chunks := make([][]rawLine, 0, workers)
	for start := 0; start < len(lines); start += size {
		end := start + size
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, lines[start:end])
	}
	return chunks
}
