package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadRequest, ErrorCode: "INVALID_REQUEST", Message: "season must be an integer"}
	assert.Equal(t, "season must be an integer", err.Error())

	blank := &APIError{StatusCode: http.StatusInternalServerError, ErrorCode: "INTERNAL_ERROR"}
	assert.Empty(t, blank.Error())
}

func TestNewAPIError(t *testing.T) {
	t.Run("bare", func(t *testing.T) {
		err := New(http.StatusNotFound, "SEASON_NOT_FOUND", "Season not present in the dataset")

		assert.Equal(t, http.StatusNotFound, err.StatusCode)
		assert.Equal(t, "SEASON_NOT_FOUND", err.ErrorCode)
		assert.Equal(t, "Season not present in the dataset", err.Message)
		assert.Nil(t, err.Details)
	})

	t.Run("with details", func(t *testing.T) {
		err := NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed",
			map[string]string{"season": "must be an integer"})

		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		assert.NotNil(t, err.Details)
	})
}

func TestViewNotFoundError(t *testing.T) {
	err := ViewNotFoundError("centurions")

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "VIEW_NOT_FOUND", err.ErrorCode)
	assert.Contains(t, err.Message, `"centurions"`)
	assert.Equal(t, "centurions", err.Details)
}

func TestDatasetUnavailableError(t *testing.T) {
	err := DatasetUnavailableError(fmt.Errorf("dataset not loaded: snapshot pending"))

	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
	assert.Equal(t, "DATASET_NOT_LOADED", err.ErrorCode)
	assert.Equal(t, "dataset not loaded: snapshot pending", err.Details)
}

func TestValidationDetail(t *testing.T) {
	err := FieldError("season", "must be between 1946 and 2100")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "season", detail.Field)
	assert.Equal(t, "must be between 1946 and 2100", detail.Message)
}

func TestValidationErrorList(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "season", Message: "must be an integer"},
		{Field: "format", Message: "must be one of csv, xlsx"},
	})

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)
	detail, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, detail.Errors, 2)
	assert.Equal(t, "format", detail.Errors[1].Field)
}

func TestWrapperHelpers(t *testing.T) {
	t.Run("export", func(t *testing.T) {
		err := ExportError(fmt.Errorf("excel writer closed"))

		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, "EXPORT_FAILED", err.ErrorCode)
		assert.Equal(t, "excel writer closed", err.Details)
	})

	t.Run("storage", func(t *testing.T) {
		err := StorageError("mkdir", fmt.Errorf("permission denied"))

		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, "STORAGE_ERROR", err.ErrorCode)
		assert.Contains(t, err.Message, "mkdir")
		assert.Equal(t, "permission denied", err.Details)
	})
}

func TestAPIErrorRendersJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/export/bogus", nil)

	require.NoError(t, render.Render(w, r, ViewNotFoundError("bogus")))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VIEW_NOT_FOUND", body["error_code"])
}
