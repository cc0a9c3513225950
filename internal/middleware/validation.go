package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "hoopsight/internal/errors"
	"hoopsight/internal/exporter"
)

// Validator checks decoded request bodies against their struct tags.
// Rejections reach the client and the log through the error handler, so
// the type itself stays quiet.
type Validator struct {
	tags         *validator.Validate
	errorHandler *apierrors.ErrorHandler
}

// NewValidator builds the struct validator shared by all handlers. Field
// names in messages come from json tags so they match what the client
// actually sent.
func NewValidator(errorHandler *apierrors.ErrorHandler) *Validator {
	tags := validator.New()
	tags.RegisterValidation("view", isValidView)
	tags.RegisterTagNameFunc(jsonFieldName)

	return &Validator{
		tags:         tags,
		errorHandler: errorHandler,
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// Struct runs tag validation on s and folds any failures into a single
// APIError listing every rejected field.
func (v *Validator) Struct(s interface{}) error {
	err := v.tags.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs := err.(validator.ValidationErrors)
	rejected := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rejected = append(rejected, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: fieldErrorMessage(fe),
		})
	}
	return apierrors.NewValidationErrors(rejected)
}

// fieldErrorMessage covers the tags the request contracts use; anything
// else falls through to a generic phrasing.
func fieldErrorMessage(err validator.FieldError) string {
	field, param := err.Field(), err.Param()

	switch err.Tag() {
	case "required":
		return field + " is required"
	case "view":
		return field + " must be a known dashboard view"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, err.Tag())
}

// isValidView accepts only registered dashboard view identifiers.
func isValidView(fl validator.FieldLevel) bool {
	return exporter.View(fl.Field().String()).Valid()
}

// QueryValidator checks individual query string parameters, writing a
// problem response itself when one is rejected.
type QueryValidator struct {
	errorHandler *apierrors.ErrorHandler
}

func NewQueryValidator(errorHandler *apierrors.ErrorHandler) *QueryValidator {
	return &QueryValidator{errorHandler: errorHandler}
}

// Int parses an integer parameter and enforces its range. A missing
// parameter yields def. The second return is false once an error response
// has been written.
func (qv *QueryValidator) Int(w http.ResponseWriter, r *http.Request, name string, low, high, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		qv.reject(w, r, name, fmt.Sprintf("%s must be a valid integer", name))
		return 0, false
	}
	if parsed < low || parsed > high {
		qv.reject(w, r, name, fmt.Sprintf("%s must be between %d and %d", name, low, high))
		return 0, false
	}
	return parsed, true
}

// Enum restricts a parameter to a fixed set of values. A missing parameter
// yields def.
func (qv *QueryValidator) Enum(w http.ResponseWriter, r *http.Request, name string, allowed []string, def string) (string, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	if !slices.Contains(allowed, raw) {
		qv.reject(w, r, name, fmt.Sprintf("%s must be one of: %s", name, strings.Join(allowed, ", ")))
		return "", false
	}
	return raw, true
}

func (qv *QueryValidator) reject(w http.ResponseWriter, r *http.Request, name, message string) {
	qv.errorHandler.HandleError(w, r, apierrors.FieldError(name, message))
}
