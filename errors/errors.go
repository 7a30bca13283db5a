package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by who is at fault: the caller,
// an upstream provider, or our own infrastructure.

type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota

	// Client-caused errors
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeRateLimited

	// Upstream provider errors
	ErrorTypeExternalAPI
	ErrorTypeMalformedResponse

	// Infrastructure errors - recovered locally, never shown to callers
	ErrorTypeCache
	ErrorTypeEventStore
	ErrorTypeDataStore

	// System/Configuration errors
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeRateLimited:
		return "RATE_LIMITED_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeMalformedResponse:
		return "MALFORMED_RESPONSE_ERROR"
	case ErrorTypeCache:
		return "CACHE_ERROR"
	case ErrorTypeEventStore:
		return "EVENT_STORE_ERROR"
	case ErrorTypeDataStore:
		return "DATA_STORE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Client-caused error constructors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

func NewRateLimitedError(message string) *AppError {
	return New(ErrorTypeRateLimited, message)
}

// Upstream provider error constructors
func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ErrorTypeExternalAPI, message, cause)
}

// NewMalformedResponseError marks a provider response that arrived as a
// well-formed HTTP success but lacks required fields. Treated as an external
// API failure for response purposes, kept distinct for diagnosis.
func NewMalformedResponseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeMalformedResponse, message, cause)
}

// Infrastructure error constructors
func NewCacheError(message string, cause error) *AppError {
	return Wrap(ErrorTypeCache, message, cause)
}

func NewEventStoreError(message string, cause error) *AppError {
	return Wrap(ErrorTypeEventStore, message, cause)
}

func NewDataStoreError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDataStore, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

func typeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// Helper functions for error type checking
func IsValidationError(err error) bool {
	return typeOf(err) == ErrorTypeValidation
}

func IsNotFoundError(err error) bool {
	return typeOf(err) == ErrorTypeNotFound
}

func IsRateLimitedError(err error) bool {
	return typeOf(err) == ErrorTypeRateLimited
}

func IsExternalAPIError(err error) bool {
	return typeOf(err) == ErrorTypeExternalAPI
}

func IsMalformedResponseError(err error) bool {
	return typeOf(err) == ErrorTypeMalformedResponse
}

// IsUpstreamError reports whether err came from an upstream provider,
// regardless of whether the failure was transport-level or a bad body.
func IsUpstreamError(err error) bool {
	t := typeOf(err)
	return t == ErrorTypeExternalAPI || t == ErrorTypeMalformedResponse
}

func IsCacheError(err error) bool {
	return typeOf(err) == ErrorTypeCache
}

func IsConfigurationError(err error) bool {
	return typeOf(err) == ErrorTypeConfiguration
}
