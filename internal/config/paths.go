package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the application paths.
// This is the single source of truth for every file path the analyzer writes.
type Paths struct {
	BaseDir    string
	ReportsDir string
	LogsDir    string
}

// NewPaths resolves the reports and logs directories against the base
// directory. Absolute directories are kept as-is.
func NewPaths(baseDir, reportsDir, logsDir string) *Paths {
	if baseDir == "" {
		baseDir = "."
	}
	return &Paths{
		BaseDir:    baseDir,
		ReportsDir: resolveDir(baseDir, reportsDir, "reports"),
		LogsDir:    resolveDir(baseDir, logsDir, "logs"),
	}
}

func resolveDir(base, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
