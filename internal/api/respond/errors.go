// Package respond writes the JSON envelope shared by every API handler and
// maps domain errors onto HTTP statuses.
package respond

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/logging"
)

// APIError is the body of an error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusCode implements StatusError.
func (e *APIError) StatusCode() int { return e.Status }

// ErrorCode implements StatusError.
func (e *APIError) ErrorCode() string { return e.Code }

// StatusError is implemented by errors that carry their own HTTP mapping.
type StatusError interface {
	error
	StatusCode() int
	ErrorCode() string
}

// Common error codes
const (
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeBadRequest    = "BAD_REQUEST"
	CodeConflict      = "CONFLICT"
	CodeInternalError = "INTERNAL_ERROR"
	CodeRateLimited   = "RATE_LIMITED"
	CodeAccountLocked = "ACCOUNT_LOCKED"
	CodeInvalidScope  = "INVALID_SCOPE"
)

// Standard errors
var (
	ErrInternalServer = &APIError{
		Code:    CodeInternalError,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
	}

	ErrRateLimited = &APIError{
		Code:    CodeRateLimited,
		Message: "too many requests",
		Status:  http.StatusTooManyRequests,
	}

	ErrAccountLocked = &APIError{
		Code:    CodeAccountLocked,
		Message: "account temporarily locked due to too many failed attempts",
		Status:  http.StatusTooManyRequests,
	}
)

// BadRequest creates a bad request error with custom message.
func BadRequest(message string) *APIError {
	return &APIError{Code: CodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

// NotFound creates a not found error with custom message.
func NotFound(message string) *APIError {
	return &APIError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

// Forbidden creates a forbidden error with custom message.
func Forbidden(message string) *APIError {
	return &APIError{Code: CodeForbidden, Message: message, Status: http.StatusForbidden}
}

// Unauthorized creates an unauthorized error with custom message.
func Unauthorized(message string) *APIError {
	return &APIError{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

// Classify maps err onto the API error taxonomy. Unknown errors become
// INTERNAL_ERROR so storage details never reach the client.
func Classify(err error) *APIError {
	var se StatusError
	if errors.As(err, &se) {
		return &APIError{Code: se.ErrorCode(), Message: se.Error(), Status: se.StatusCode()}
	}

	if kind, ok := apperrors.KindOf(err); ok {
		return NotFound(fmt.Sprintf("%s not found", kind))
	}

	var ce *apperrors.ConflictError
	switch {
	case errors.As(err, &ce):
		return &APIError{Code: CodeConflict, Message: ce.Error(), Status: http.StatusConflict}
	case errors.Is(err, apperrors.ErrConflict):
		return &APIError{Code: CodeConflict, Message: "resource already exists", Status: http.StatusConflict}
	case errors.Is(err, apperrors.ErrNotFound):
		return NotFound("resource not found")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return Unauthorized("invalid credentials")
	case errors.Is(err, apperrors.ErrInvalidScope):
		return &APIError{Code: CodeInvalidScope, Message: "requested scope is not granted to this account", Status: http.StatusBadRequest}
	}
	return ErrInternalServer
}

// Error writes err as a JSON error response. Server errors are logged with
// the original cause.
func Error(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	apiErr := Classify(err)
	if apiErr.Status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("error", logging.SanitizeError(err)))
	}
	JSONError(w, apiErr)
}
