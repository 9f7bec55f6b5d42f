// Package errors defines the storefront error taxonomy: validation
// failures, failed remote API requests, and wiring-time configuration
// problems. Errors carry an HTTP status so the handler layer can map them
// without inspecting messages.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the error categories the storefront distinguishes.
var (
	ErrValidation    = errors.New("validation failed")
	ErrRequest       = errors.New("request failed")
	ErrConfiguration = errors.New("invalid configuration")
	ErrConflict      = errors.New("conflict")
	ErrNotFound      = errors.New("resource not found")
)

// AppError is a structured application error with an HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
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

// Validation creates an error for user input that fails a precondition.
// The message is surfaced to the user inline.
func Validation(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrValidation,
	}
}

// Request creates the generic error for a remote call that returned a
// non-success status. The message names the request and the status code.
func Request(method, path string, status int) *AppError {
	return &AppError{
		Code:    "REQUEST_FAILED",
		Message: fmt.Sprintf("%s %s failed with status %d", method, path, status),
		Status:  status,
		Err:     ErrRequest,
	}
}

// RequestDetail creates a request error carrying the server-provided
// detail message verbatim.
func RequestDetail(detail string, status int) *AppError {
	return &AppError{
		Code:    "REQUEST_FAILED",
		Message: detail,
		Status:  status,
		Err:     ErrRequest,
	}
}

// Unreachable creates a request error for a remote call that could not be
// completed at the transport level.
func Unreachable(method, path string, err error) *AppError {
	return &AppError{
		Code:    "REQUEST_FAILED",
		Message: fmt.Sprintf("%s %s failed: %v", method, path, err),
		Status:  http.StatusBadGateway,
		Err:     errors.Join(ErrRequest, err),
	}
}

// Configuration creates an error for a component wired without its
// required collaborators. It fails at construction time, not at call time.
func Configuration(message string) *AppError {
	return &AppError{
		Code:    "CONFIGURATION_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     ErrConfiguration,
	}
}

// Conflict creates a 409 error, used to reject a second in-flight order
// submission for the same session.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Message returns the user-facing message for an error: the AppError
// message when available, the raw error text otherwise.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRequest):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
