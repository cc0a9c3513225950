package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/go-chi/render"

	"hoopsight/internal/infrastructure"
)

// Problem type URIs common to any HTTP API.
const (
	typeValidation = "/errors/validation"
	typeNotFound   = "/errors/not-found"
	typeInternal   = "/errors/internal-server-error"
	typeTimeout    = "/errors/timeout"
)

// Problem type URIs specific to the dashboard domain.
const (
	typeViewNotFound     = "/errors/view/not-found"
	typeDatasetNotLoaded = "/errors/dataset/not-loaded"
	typeExportFailed     = "/errors/export/failed"
)

// codeTypes maps APIError codes to problem types. Codes missing from the
// map fall back to typeInternal.
var codeTypes = map[string]string{
	"VALIDATION_FAILED":  typeValidation,
	"VIEW_NOT_FOUND":     typeViewNotFound,
	"DATASET_NOT_LOADED": typeDatasetNotLoaded,
	"EXPORT_FAILED":      typeExportFailed,
	"STORAGE_ERROR":   typeInternal,
}

// ErrorHandler turns errors into RFC 7807 responses. A single instance is
// shared by all handlers so the error-to-problem mapping lives in one place.
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler returns an ErrorHandler. When includeStack is set, problem
// responses carry a stack extension; only enable it in development.
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError logs err and writes it to w as a problem document. A nil err
// writes nothing.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	traceID := infrastructure.TraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", traceID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)

	problem := h.problemFor(err, r)
	problem.WithExtension("trace_id", traceID)
	if h.includeStack {
		problem.WithExtension("stack", stackTrace())
	}

	render.Render(w, r, problem)
}

// problemFor classifies err and builds the matching problem document.
// Typed APIErrors carry their own status and code; anything else is
// classified by message, with a generic 500 as the fallback.
func (h *ErrorHandler) problemFor(err error, r *http.Request) *ProblemDetails {
	pd := func(status int, problemType, title, detail string) *ProblemDetails {
		return NewProblemDetails(status, problemType, title, detail, r.URL.Path)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return pd(http.StatusGatewayTimeout, typeTimeout, "Request Timeout",
			"The request took too long to process and was cancelled")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		problemType, ok := codeTypes[apiErr.ErrorCode]
		if !ok {
			problemType = typeInternal
		}
		problem := NewProblemDetails(apiErr.StatusCode, problemType,
			http.StatusText(apiErr.StatusCode), apiErr.Message, r.URL.Path).
			WithExtension("error_code", apiErr.ErrorCode)
		if apiErr.Details != nil {
			problem.WithExtension("details", apiErr.Details)
		}
		return problem
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "not loaded"):
		return pd(http.StatusServiceUnavailable, typeDatasetNotLoaded, "Dataset Not Loaded",
			"The dataset is not available yet. Try again shortly.")

	case strings.Contains(msg, "not found"):
		return pd(http.StatusNotFound, typeNotFound, "Resource Not Found", msg)

	case strings.Contains(msg, "unknown view"), strings.Contains(msg, "unknown format"):
		return pd(http.StatusBadRequest, typeValidation, "Validation Failed", msg)

	default:
		return pd(http.StatusInternalServerError, typeInternal, "Internal Server Error",
			"An unexpected error occurred while processing your request")
	}
}

// fallback builds a problem document titled with the standard status text
// and stamped with the request trace ID.
func (h *ErrorHandler) fallback(r *http.Request, status int, problemType, detail string) *ProblemDetails {
	return NewProblemDetails(status, problemType, http.StatusText(status), detail, r.URL.Path).
		WithExtension("trace_id", infrastructure.TraceID(r.Context()))
}

// HandlePanic writes a 500 problem for a recovered panic. The stack is
// always logged but only reaches the response when includeStack is set.
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", infrastructure.TraceID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := h.fallback(r, http.StatusInternalServerError, typeInternal,
		"An internal error interrupted the request")
	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", stackTrace())
	}

	render.Render(w, r, problem)
}

// NotFound is the router fallback for unmatched API paths.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, h.fallback(r, http.StatusNotFound, typeNotFound,
		"No API route matches this path"))
}

// MethodNotAllowed is the router fallback for known paths hit with the
// wrong verb.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, h.fallback(r, http.StatusMethodNotAllowed, typeInternal,
		fmt.Sprintf("Method %s is not supported by this endpoint", r.Method)))
}

// stackTrace captures the calling goroutine's stack, capped at 8KB.
func stackTrace() string {
	buf := make([]byte, 8<<10)
	return string(buf[:runtime.Stack(buf, false)])
}

// JSON writes v with an explicit status code. Handlers use it for payloads
// that are not problem documents.
func (h *ErrorHandler) JSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
