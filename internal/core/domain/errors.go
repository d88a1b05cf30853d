package domain

import (
	"fmt"
	"net/http"
)

// ErrorCode represents categorized error types.
// These codes are stable and can be used for programmatic error handling.
type ErrorCode string

const (
	ErrCodeConfigMissing       ErrorCode = "config_missing"
	ErrCodeInvalidAssertion    ErrorCode = "invalid_assertion"
	ErrCodeRegistryUnavailable ErrorCode = "registry_unavailable"
	ErrCodeUnknownProvider     ErrorCode = "unknown_provider"
	ErrCodeServiceError        ErrorCode = "service_error"
	ErrCodeBadRequest          ErrorCode = "bad_request"
	ErrCodeSignatureInvalid    ErrorCode = "signature_invalid"
)

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// AppError is a structured error with code, message, and optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the HTTP status code for this error code.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeInvalidAssertion:
		return http.StatusUnauthorized
	case ErrCodeUnknownProvider:
		return http.StatusNotFound
	case ErrCodeBadRequest, ErrCodeSignatureInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Title returns a user-friendly title for this error code.
func (c ErrorCode) Title() string {
	switch c {
	case ErrCodeConfigMissing:
		return "Configuration Error"
	case ErrCodeInvalidAssertion:
		return "Invalid Assertion"
	case ErrCodeRegistryUnavailable:
		return "Registry Unavailable"
	case ErrCodeUnknownProvider:
		return "Unknown Provider"
	case ErrCodeServiceError:
		return "Service Error"
	case ErrCodeBadRequest:
		return "Invalid Request"
	case ErrCodeSignatureInvalid:
		return "Signature Invalid"
	default:
		return "Error"
	}
}

// JSONErrorResponse is the standard JSON error format for API endpoints.
type JSONErrorResponse struct {
	Error JSONErrorDetail `json:"error"`
}

// JSONErrorDetail contains error details.
type JSONErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewJSONErrorResponse creates a JSON error response from an AppError.
func NewJSONErrorResponse(err *AppError) JSONErrorResponse {
	return JSONErrorResponse{
		Error: JSONErrorDetail{
			Code:    err.Code.String(),
			Message: err.Message,
		},
	}
}

// ConfigError creates a configuration error.
func ConfigError(message string) *AppError {
	return &AppError{Code: ErrCodeConfigMissing, Message: message}
}

// InvalidAssertionError creates the fatal error for an assertion missing its
// mandatory identifier header. It aborts principal construction.
func InvalidAssertionError(header ShibbolethHeader) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidAssertion,
		Message: fmt.Sprintf("mandatory assertion header %q is missing", header),
	}
}

// RegistryUnavailableError wraps a failed registry lookup. Non-fatal:
// callers treat it as an absent result and degrade to the USER tier.
func RegistryUnavailableError(registry string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeRegistryUnavailable,
		Message: fmt.Sprintf("%s registry lookup failed", registry),
		Cause:   cause,
	}
}

// BadRequestError creates a bad request error.
func BadRequestError(message string) *AppError {
	return &AppError{Code: ErrCodeBadRequest, Message: message}
}

// ServiceError creates a service error.
func ServiceError(message string) *AppError {
	return &AppError{Code: ErrCodeServiceError, Message: message}
}
