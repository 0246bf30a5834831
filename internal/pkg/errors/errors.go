// Package errors defines AppError, the error every query service returns and
// middleware.ErrorHandler renders as the Error schema of the API contract.
//
// Import Path: incidentlens.io/lens/internal/pkg/errors
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels wrapped by the constructors in codes.go.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

// AppError is a query failure with a stable code and HTTP status. Its JSON
// form is the response body.
type AppError struct {
	// Code is the stable identifier the frontend translates, e.g. "EVENT_NOT_FOUND".
	Code string `json:"code"`

	// Message is English text for logs and API consumers.
	Message string `json:"message"`

	HTTPStatus int `json:"-"`

	// Params names the key that was looked up. Raw identifiers are never
	// placed here.
	Params map[string]interface{} `json:"params,omitempty"`

	// FieldErrors lists rejected query or body fields.
	FieldErrors []FieldError `json:"field_errors,omitempty"`

	Err error `json:"-"`
}

// FieldError is one rejected query or body field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without a cause.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap creates an AppError caused by err.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

// WithParams sets Params unless params is empty.
func (e *AppError) WithParams(params map[string]interface{}) *AppError {
	if e == nil || len(params) == 0 {
		return e
	}
	e.Params = params
	return e
}

// WithFieldErrors sets FieldErrors unless fieldErrors is empty.
func (e *AppError) WithFieldErrors(fieldErrors []FieldError) *AppError {
	if e == nil || len(fieldErrors) == 0 {
		return e
	}
	e.FieldErrors = fieldErrors
	return e
}

// BadRequest creates a 400 error.
func BadRequest(code, message string) *AppError {
	return New(code, message, http.StatusBadRequest)
}

// Unavailable creates a 503 error.
func Unavailable(code, message string) *AppError {
	return New(code, message, http.StatusServiceUnavailable)
}

// Internal is the body sent for failures that carry no AppError, including
// recovered panics. The cause stays in the logs.
func Internal() *AppError {
	return New(CodeInternal, "An internal error occurred", http.StatusInternalServerError)
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
