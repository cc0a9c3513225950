package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the typed error handlers throw when they already know the
// HTTP status and machine-readable code the response should carry. The
// error handler maps it to a problem document without guessing from the
// message text.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError describes a single rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors bundles every rejected field of one request.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// New builds an APIError.
func New(status int, code, message string) *APIError {
	return &APIError{StatusCode: status, ErrorCode: code, Message: message}
}

// NewWithDetails builds an APIError carrying structured details.
func NewWithDetails(status int, code, message string, details interface{}) *APIError {
	e := New(status, code, message)
	e.Details = details
	return e
}

// FieldError flags one rejected request field.
func FieldError(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed",
		ValidationError{Field: field, Message: message})
}

// NewValidationErrors bundles several rejected fields into one error.
func NewValidationErrors(errs []ValidationError) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed",
		ValidationErrors{Errors: errs})
}

// ViewNotFoundError rejects a view name outside the dashboard vocabulary.
func ViewNotFoundError(view string) *APIError {
	return NewWithDetails(http.StatusNotFound, "VIEW_NOT_FOUND",
		fmt.Sprintf("view %q is not a dashboard view", view), view)
}

// DatasetUnavailableError answers requests that arrive before a dataset
// snapshot is available.
func DatasetUnavailableError(err error) *APIError {
	return NewWithDetails(http.StatusServiceUnavailable, "DATASET_NOT_LOADED",
		"Dataset is not loaded", err.Error())
}

// ExportError wraps a failed report build.
func ExportError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "EXPORT_FAILED",
		"Export generation failed", err.Error())
}

// StorageError wraps a failed disk operation.
func StorageError(operation string, err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "STORAGE_ERROR",
		fmt.Sprintf("Storage failure during %s", operation), err.Error())
}
