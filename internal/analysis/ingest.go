package analysis

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// rawLine is one successfully read line, pre-measurement.
type rawLine struct {
	fileRow int
	text    string
}

// scanLines drives line-by-line ingestion, calling fn for every readable
// line with its 1-based file row. Lines carrying invalid UTF-8 are per-line
// read failures: logged, counted, excluded, and ingestion continues. An I/O
// error from the underlying reader is fatal and surfaced to the caller.
func scanLines(r io.Reader, fn func(fileRow int, text string)) (int, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var (
		errorCount int
		fileRow    int
	)

	for {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return errorCount, fmt.Errorf("reading source: %w", err)
		}
		if text == "" && err == io.EOF {
			break
		}

		fileRow++
		line := trimLineEnding(text)
		if !utf8.ValidString(line) {
			slog.Warn("skipping unreadable row",
				slog.Int("file_row", fileRow))
			errorCount++
		} else {
			fn(fileRow, line)
		}

		if err == io.EOF {
			break
		}
	}

	return errorCount, nil
}

// ingest materializes the whole source for the parallel strategy.
func ingest(r io.Reader) ([]rawLine, int, error) {
	var lines []rawLine
	errorCount, err := scanLines(r, func(fileRow int, text string) {
		lines = append(lines, rawLine{fileRow: fileRow, text: text})
	})
	if err != nil {
		return nil, errorCount, err
	}
	return lines, errorCount, nil
}

// trimLineEnding strips a trailing LF or CRLF.
func trimLineEnding(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// countChars measures a line in Unicode scalar values, not bytes. Reports
// talk about "characters", so a multi-byte rune counts once.
func countChars(s string) int {
	return utf8.RuneCountInString(s)
}
