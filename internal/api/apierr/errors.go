package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/services/auth"
)

// ErrorResponse is the JSON body of every API error
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an ErrorResponse
type httpError struct {
	status   int
	apiError ErrorResponse
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.apiError)
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Map model errors
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, ErrorResponse{CodeGameNotFound, "Game not found!"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, ErrorResponse{CodeInvalidCredentials, "Invalid email or password!"}}
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, model.ErrDuplicateEmail):
		return &httpError{http.StatusConflict, ErrorResponse{CodeEmailExists, "Email already registered!"}}

	default:
		return &httpError{http.StatusInternalServerError, ErrorResponse{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, ErrorResponse{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an authentication-required error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, ErrorResponse{CodeUnauthorized, "Authentication required!"}}
}

// NewRateLimitedError creates a too-many-requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, ErrorResponse{CodeRateLimited, "Too many requests, slow down"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, ErrorResponse{CodeInternalError, "Internal server error"}}
}
