package http

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

// StaticHandler serves the embedded dashboard frontend. The filesystem is
// rooted at the directory that holds index.html.
type StaticHandler struct {
	fsys       fs.FS
	fileServer http.Handler
	logger     *slog.Logger
}

// NewStaticHandler creates a new static handler
func NewStaticHandler(fsys fs.FS, logger *slog.Logger) *StaticHandler {
	return &StaticHandler{
		fsys:       fsys,
		fileServer: http.FileServer(http.FS(fsys)),
		logger:     logger.With(slog.String("handler", "static")),
	}
}

// ServeIndex serves index.html for the dashboard root and for any client-side
// route the asset tree has no file for.
func (h *StaticHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	content, err := fs.ReadFile(h.fsys, "index.html")
	if err != nil {
		h.logger.ErrorContext(r.Context(), "index.html missing from embedded frontend",
			slog.String("error", err.Error()))
		http.Error(w, "Dashboard page not found", http.StatusNotFound)
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(content); err != nil {
		h.logger.WarnContext(r.Context(), "index write interrupted",
			slog.String("error", err.Error()))
	}
}

// ServeAssets serves everything else in the embedded tree. Requests for paths
// the tree does not contain fall back to the index so client-side routes
// survive a reload.
func (h *StaticHandler) ServeAssets(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/" || path == "" {
		h.ServeIndex(w, r)
		return
	}

	f, err := h.fsys.Open(strings.TrimPrefix(path, "/"))
	if err != nil {
		h.ServeIndex(w, r)
		return
	}
	f.Close()

	h.fileServer.ServeHTTP(w, r)
}
