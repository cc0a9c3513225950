package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "hoopsight/internal/errors"
	"hoopsight/internal/exporter"
	mw "hoopsight/internal/middleware"
	"hoopsight/internal/services"
	apiv1 "hoopsight/pkg/contracts/api/v1"
)

// ExportHandler handles view downloads and report file listings.
type ExportHandler struct {
	service      ExportServiceInterface
	validate     *mw.Validator
	params       *mw.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service ExportServiceInterface, validate *mw.Validator, params *mw.QueryValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		validate:     validate,
		params:       params,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the download routes, mounted under /api/export.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{view}", h.DownloadView)
	return r
}

// DownloadView handles GET /api/export/{view}?format=csv|xlsx&season=YYYY.
// The response body is the rendered file, served as an attachment.
func (h *ExportHandler) DownloadView(w http.ResponseWriter, r *http.Request) {
	reqID := mw.GetRequestID(r.Context())
	view := chi.URLParam(r, "view")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = services.FormatCSV
	}

	season := 0
	if raw := r.URL.Query().Get("season"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.FieldError("season", "season must be an integer"))
			return
		}
		season = v
	}

	req := apiv1.ExportRequest{View: view, Format: format, Season: season}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "exporting view",
		slog.String("request_id", reqID),
		slog.String("view", view),
		slog.String("format", format),
		slog.Int("season", season),
	)

	export, err := h.service.ExportView(r.Context(), exporter.View(view), format, season)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "export failed",
			slog.String("view", view),
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)

		switch {
		case errors.Is(err, services.ErrUnknownView):
			h.errorHandler.HandleError(w, r, apierrors.ViewNotFoundError(view))
		case errors.Is(err, services.ErrUnknownFormat):
			h.errorHandler.HandleError(w, r, apierrors.FieldError("format", fmt.Sprintf("format %q is not supported", format)))
		case errors.Is(err, services.ErrDatasetNotLoaded):
			h.errorHandler.HandleError(w, r, apierrors.DatasetUnavailableError(err))
		default:
			h.errorHandler.HandleError(w, r, apierrors.ExportError(err))
		}
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	if _, err := w.Write(export.Data); err != nil {
		h.logger.WarnContext(r.Context(), "download interrupted",
			slog.String("filename", export.Filename),
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
	}
}

// ListReports handles GET /api/reports with an optional limit parameter.
func (h *ExportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reqID := mw.GetRequestID(r.Context())

	limit, ok := h.params.Int(w, r, "limit", 1, 500, 0)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "listing report files",
		slog.String("request_id", reqID),
	)

	reports, err := h.service.ListReports(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list report files",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, apierrors.StorageError("report listing", err))
		return
	}

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   reports,
		"count":  len(reports),
	})
}
