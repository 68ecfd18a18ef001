package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"rowlens/internal/analysis"
	apierrors "rowlens/internal/errors"
	"rowlens/internal/exporter"
	"rowlens/internal/files"
)

// ReportWriter writes the report file set for one analyzed input.
type ReportWriter interface {
	WriteAll(basename string, res *analysis.Result) ([]string, error)
}

// AnalyzeHandler runs analyses for server-local input files.
type AnalyzeHandler struct {
	defaults analysis.Config
	reports  ReportWriter
	metrics  *Metrics
	logger   *slog.Logger
	validate *validator.Validate
}

// NewAnalyzeHandler creates the analysis handler. reports may be nil when
// the service should never write report files.
func NewAnalyzeHandler(defaults analysis.Config, reports ReportWriter, metrics *Metrics, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		defaults: defaults,
		reports:  reports,
		metrics:  metrics,
		logger:   logger.With(slog.String("handler", "analyze")),
		validate: validator.New(),
	}
}

// AnalyzeRequest is the POST /api/analyze body.
type AnalyzeRequest struct {
	Path         string `json:"path" validate:"required"`
	PageSize     int    `json:"page_size" validate:"omitempty,gt=0"`
	Workers      int    `json:"workers" validate:"omitempty,gte=1,lte=256"`
	Streaming    bool   `json:"streaming"`
	WriteReports bool   `json:"write_reports"`
}

// AnalyzeResponse carries the computed artifacts. The full corpus is
// deliberately omitted from the wire format: it can be millions of rows, and
// the report files exist for that level of detail.
type AnalyzeResponse struct {
	Path       string                     `json:"path"`
	TotalRows  int                        `json:"total_rows"`
	TotalChars int                        `json:"total_chars"`
	ErrorCount int                        `json:"error_count"`
	Stats      analysis.StatisticsSummary `json:"stats"`
	Outliers   analysis.OutlierReport     `json:"outliers"`
	Lengths    []analysis.LengthGroup     `json:"lengths"`
	Pages      []analysis.PageGroup       `json:"pages"`
	Reports    []string                   `json:"reports,omitempty"`
	ElapsedMS  int64                      `json:"elapsed_ms"`
}

// Render implements render.Renderer.
func (*AnalyzeResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Handle processes POST /api/analyze.
func (h *AnalyzeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.ErrInvalidRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		render.Render(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "VALIDATION_FAILED",
			"Request validation failed", err.Error()))
		return
	}

	cfg := h.defaults
	if req.PageSize > 0 {
		cfg.PageSize = req.PageSize
	}
	if req.Workers > 0 {
		cfg.Workers = req.Workers
	}
	if req.Streaming {
		cfg.Streaming = true
	}

	file, err := os.Open(req.Path)
	if err != nil {
		h.metrics.AnalysesTotal.WithLabelValues("not_found").Inc()
		render.Render(w, r, apierrors.ErrSourceNotFound.WithMessage(err.Error()))
		return
	}
	defer file.Close()

	start := time.Now()
	result, err := analysis.Analyze(file, cfg)
	elapsed := time.Since(start)
	if err != nil {
		h.metrics.AnalysesTotal.WithLabelValues("failed").Inc()
		h.logger.Error("analysis failed",
			slog.String("path", req.Path),
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.ErrAnalysisFailed.WithMessage(err.Error()))
		return
	}

	h.metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	h.metrics.AnalysisDuration.Observe(elapsed.Seconds())
	h.metrics.RowsProcessed.Add(float64(result.TotalRows))

	resp := &AnalyzeResponse{
		Path:       req.Path,
		TotalRows:  result.TotalRows,
		TotalChars: result.TotalChars,
		ErrorCount: result.ErrorCount,
		Stats:      result.Stats,
		Outliers:   result.Outliers,
		Lengths:    result.Lengths.Groups,
		Pages:      result.Pages.Groups,
		ElapsedMS:  elapsed.Milliseconds(),
	}

	if req.WriteReports && h.reports != nil {
		written, err := h.reports.WriteAll(files.Basename(req.Path), result)
		if err != nil {
			h.logger.Error("report writing failed",
				slog.String("path", req.Path),
				slog.String("error", err.Error()))
			render.Render(w, r, apierrors.ErrInternal.WithMessage("failed to write reports"))
			return
		}
		resp.Reports = written
	}

	h.logger.Info("analysis served",
		slog.String("path", req.Path),
		slog.Int("total_rows", resp.TotalRows),
		slog.Duration("elapsed", elapsed))
	render.Render(w, r, resp)
}

// interface guard
var _ ReportWriter = (*exporter.ReportSet)(nil)
