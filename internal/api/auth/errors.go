package auth

import "net/http"

// Error is an authentication or authorization failure with its HTTP mapping.
type Error struct {
	code    string
	status  int
	message string
}

func (e *Error) Error() string { return e.message }

// StatusCode returns the HTTP status for the failure.
func (e *Error) StatusCode() int { return e.status }

// ErrorCode returns the API error code for the failure.
func (e *Error) ErrorCode() string { return e.code }

var (
	// ErrMissingToken is returned when no Authorization header is present.
	ErrMissingToken = &Error{"UNAUTHORIZED", http.StatusUnauthorized, "missing authorization header"}
	// ErrMalformedHeader is returned when the header is not "Bearer <token>".
	ErrMalformedHeader = &Error{"BAD_REQUEST", http.StatusBadRequest, "malformed authorization header"}
	// ErrInvalidSignature covers unparsable tokens, bad MACs and foreign issuers.
	ErrInvalidSignature = &Error{"UNAUTHORIZED", http.StatusUnauthorized, "invalid token"}
	// ErrExpired is returned at or after the token's expiration instant.
	ErrExpired = &Error{"UNAUTHORIZED", http.StatusUnauthorized, "token expired"}
	// ErrInvalidClaims is returned when sub, id or exp is missing.
	ErrInvalidClaims = &Error{"UNAUTHORIZED", http.StatusUnauthorized, "invalid token claims"}
	// ErrUnknownSubject is returned when the token names no stored user.
	ErrUnknownSubject = &Error{"UNAUTHORIZED", http.StatusUnauthorized, "could not validate credentials"}
	// ErrInsufficientScope is returned when a required scope is absent.
	ErrInsufficientScope = &Error{"FORBIDDEN", http.StatusForbidden, "not enough permissions"}
)
