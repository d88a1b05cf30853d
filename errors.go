package conextaccess

import (
	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

// Re-export error types from domain package so library consumers only need
// the root import.
type ErrorCode = domain.ErrorCode
type AppError = domain.AppError
type JSONErrorResponse = domain.JSONErrorResponse
type JSONErrorDetail = domain.JSONErrorDetail

// Re-export error code constants
const (
	ErrCodeConfigMissing       = domain.ErrCodeConfigMissing
	ErrCodeInvalidAssertion    = domain.ErrCodeInvalidAssertion
	ErrCodeRegistryUnavailable = domain.ErrCodeRegistryUnavailable
	ErrCodeUnknownProvider     = domain.ErrCodeUnknownProvider
	ErrCodeServiceError        = domain.ErrCodeServiceError
	ErrCodeBadRequest          = domain.ErrCodeBadRequest
	ErrCodeSignatureInvalid    = domain.ErrCodeSignatureInvalid
)

// Re-export error constructors and sentinels
var (
	ConfigError              = domain.ConfigError
	InvalidAssertionError    = domain.InvalidAssertionError
	RegistryUnavailableError = domain.RegistryUnavailableError
	BadRequestError          = domain.BadRequestError
	ServiceError             = domain.ServiceError
	NewJSONErrorResponse     = domain.NewJSONErrorResponse

	ErrProviderNotFound = domain.ErrProviderNotFound
	ErrRolesNotFound    = domain.ErrRolesNotFound
)
