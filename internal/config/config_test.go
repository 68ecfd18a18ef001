package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROWLENS_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 3000, cfg.Analysis.PageSize)
	assert.Equal(t, 8, cfg.Analysis.Workers)
	assert.False(t, cfg.Analysis.Streaming)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ROWLENS_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ROWLENS_ANALYSIS_PAGE_SIZE", "500")
	t.Setenv("ROWLENS_ANALYSIS_WORKERS", "4")
	t.Setenv("ROWLENS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Analysis.PageSize)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFileOverlay(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rowlens.yaml")
	content := `
server:
  port: 9090
analysis:
  page_size: 1500
  streaming: true
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	t.Setenv("ROWLENS_CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 1500, cfg.Analysis.PageSize)
	assert.True(t, cfg.Analysis.Streaming)
	// Fields absent from the file keep env/default values.
	assert.Equal(t, 8, cfg.Analysis.Workers)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("ROWLENS_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ROWLENS_ANALYSIS_WORKERS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestPathsResolution(t *testing.T) {
	p := NewPaths("/data", "reports", "")
	assert.Equal(t, filepath.Join("/data", "reports"), p.ReportsDir)
	assert.Equal(t, filepath.Join("/data", "logs"), p.LogsDir)
	assert.Equal(t, filepath.Join("/data", "reports", "out.csv"), p.GetReportPath("out.csv"))

	abs := NewPaths(".", "/abs/reports", "/abs/logs")
	assert.Equal(t, "/abs/reports", abs.ReportsDir)
	assert.Equal(t, "/abs/logs", abs.LogsDir)
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	p := NewPaths(base, "r", "l")
	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
