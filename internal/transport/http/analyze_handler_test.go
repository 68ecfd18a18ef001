package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowlens/internal/analysis"
	"rowlens/internal/config"
)

type stubReportWriter struct {
	called   bool
	basename string
	paths    []string
}

func (s *stubReportWriter) WriteAll(basename string, res *analysis.Result) ([]string, error) {
	s.called = true
	s.basename = basename
	return s.paths, nil
}

func newTestHandler(reports ReportWriter) *AnalyzeHandler {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewAnalyzeHandler(analysis.Config{}, reports, NewMetrics(), logger)
}

func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func postAnalyze(t *testing.T, h *AnalyzeHandler, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestAnalyzeHandler(t *testing.T) {
	path := writeInput(t, "header", strings.Repeat("a", 20), strings.Repeat("b", 900))
	h := newTestHandler(nil)

	w := postAnalyze(t, h, AnalyzeRequest{Path: path})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalRows)
	assert.Equal(t, 926, resp.TotalChars)
	assert.Zero(t, resp.ErrorCount)
	assert.Equal(t, 6, resp.Stats.Min)
	assert.Equal(t, 900, resp.Stats.Max)
	assert.Len(t, resp.Lengths, 3)
	assert.Empty(t, resp.Reports)
}

func TestAnalyzeHandlerWritesReports(t *testing.T) {
	path := writeInput(t, "h", "data")
	stub := &stubReportWriter{paths: []string{"/reports/x.csv"}}
	h := newTestHandler(stub)

	w := postAnalyze(t, h, AnalyzeRequest{Path: path, WriteReports: true})
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, stub.called)
	assert.Equal(t, "input", stub.basename)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"/reports/x.csv"}, resp.Reports)
}

func TestAnalyzeHandlerValidation(t *testing.T) {
	h := newTestHandler(nil)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing path", AnalyzeRequest{}, http.StatusBadRequest},
		{"negative page size", map[string]any{"path": "x", "page_size": -1}, http.StatusBadRequest},
		{"workers over limit", map[string]any{"path": "x", "workers": 999}, http.StatusBadRequest},
		{"missing file", AnalyzeRequest{Path: "/does/not/exist.csv"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postAnalyze(t, h, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAnalyzeHandlerMalformedJSON(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze",
		strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.Handle(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterEndpoints(t *testing.T) {
	path := writeInput(t, "h", "abc")
	metrics := NewMetrics()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	analyze := NewAnalyzeHandler(analysis.Config{}, nil, metrics, logger)

	router := NewRouter(config.ServerConfig{
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 100, Burst: 10},
	}, analyze, metrics)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := json.Marshal(AnalyzeRequest{Path: path})
	require.NoError(t, err)
	resp, err = http.Post(srv.URL+"/api/analyze", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouterRateLimit(t *testing.T) {
	metrics := NewMetrics()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	analyze := NewAnalyzeHandler(analysis.Config{}, nil, metrics, logger)

	router := NewRouter(config.ServerConfig{
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 0, Burst: 0},
	}, analyze, metrics)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
