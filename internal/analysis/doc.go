// Package analysis implements the row-length analysis engine.
//
// The engine ingests a line-oriented source, measures the character length
// of every row, and derives descriptive statistics, frequency distributions
// and IQR-based outlier classification over those lengths. Two execution
// strategies are available behind the same contract: a streaming single-pass
// mode and a bounded parallel mode that chunks the materialized input across
// a fixed worker count. Both produce identical artifacts.
//
// Row identity is stable: every row carries its 1-based physical line number
// (file_row), and the final Corpus is always sorted by file_row regardless
// of how many workers processed it.
package analysis
