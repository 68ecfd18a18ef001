// Command analyzer measures row lengths in line-oriented files and writes
// the report set for each input.
//
// Usage:
//
//	analyzer [flags] <input.csv>
//	analyzer [flags] -dir <directory>
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"rowlens/internal/analysis"
	"rowlens/internal/config"
	"rowlens/internal/exporter"
	"rowlens/internal/files"
	"rowlens/internal/infrastructure"
)

func main() {
	os.Exit(run())
}

func run() int {
	dir := flag.String("dir", "", "analyze every CSV file in this directory instead of a single file")
	out := flag.String("out", "", "output directory for report files (default: reports)")
	workers := flag.Int("workers", 0, "worker count for the parallel strategy (default from config)")
	pageSize := flag.Int("page-size", 0, "characters per page bucket (default from config)")
	stream := flag.Bool("stream", false, "use the single-threaded streaming strategy")
	flag.Usage = usage
	flag.Parse()

	if *dir == "" && flag.NArg() != 1 {
		usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid configuration: %v\n", err)
		return 1
	}
	if *out != "" {
		cfg.Paths.ReportsDir = *out
	}
	if *workers > 0 {
		cfg.Analysis.Workers = *workers
	}
	if *pageSize > 0 {
		cfg.Analysis.PageSize = *pageSize
	}
	if *stream {
		cfg.Analysis.Streaming = true
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize logging: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogger()
	logger = logger.With(slog.String("run_id", uuid.NewString()))

	paths := cfg.ResolvePaths()
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create output directories", "error", err)
		return 1
	}

	analysisCfg := analysis.Config{
		PageSize:  cfg.Analysis.PageSize,
		Workers:   cfg.Analysis.Workers,
		Streaming: cfg.Analysis.Streaming,
	}
	reports := exporter.NewReportSet(paths)

	if *dir != "" {
		return runDirectory(logger, *dir, analysisCfg, reports)
	}
	if err := analyzeFile(logger, flag.Arg(0), analysisCfg, reports); err != nil {
		logger.Error("analysis failed",
			slog.String("path", flag.Arg(0)),
			slog.String("error", err.Error()))
		return 1
	}
	return 0
}

// runDirectory analyzes every CSV file in dir. A failure on one file is
// logged and must not stop processing of the remaining files.
func runDirectory(logger *slog.Logger, dir string, cfg analysis.Config, reports *exporter.ReportSet) int {
	discovery := files.NewDiscovery(".")
	inputs, err := discovery.FindCSVFiles(dir)
	if err != nil {
		logger.Error("directory discovery failed", "error", err)
		return 1
	}
	if len(inputs) == 0 {
		logger.Warn("no CSV files found", slog.String("dir", dir))
		return 0
	}

	processed := 0
	for _, input := range inputs {
		if err := analyzeFile(logger, input.Path, cfg, reports); err != nil {
			logger.Error("skipping file after failure",
				slog.String("path", input.Path),
				slog.String("error", err.Error()))
			continue
		}
		processed++
	}

	logger.Info("directory processed",
		slog.String("dir", dir),
		slog.Int("succeeded", processed),
		slog.Int("failed", len(inputs)-processed))
	if processed == 0 {
		return 1
	}
	return 0
}

func analyzeFile(logger *slog.Logger, path string, cfg analysis.Config, reports *exporter.ReportSet) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer file.Close()

	logger.Info("analyzing file",
		slog.String("path", path),
		slog.Int("workers", cfg.Workers),
		slog.Bool("streaming", cfg.Streaming))

	result, err := analysis.Analyze(file, cfg)
	if err != nil {
		return err
	}

	written, err := reports.WriteAll(files.Basename(path), result)
	if err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	logger.Info("file analyzed",
		slog.String("path", path),
		slog.Int("total_rows", result.TotalRows),
		slog.Int("total_chars", result.TotalChars),
		slog.Int("error_count", result.ErrorCount),
		slog.Int("reports", len(written)))
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  analyzer [flags] <input.csv>
  analyzer [flags] -dir <directory>

Flags:
`)
	flag.PrintDefaults()
}
