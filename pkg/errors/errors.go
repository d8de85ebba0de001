package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

// Domain errors - caller supplied bad input or asked for something that isn't there
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeAlreadyExists

	// Remote errors - the weather or geocoding service misbehaved
	ErrorTypeRemote
	ErrorTypeIncompleteData
	ErrorTypeDecode
	ErrorTypeCancelled

	// Infrastructure errors - local storage and cache
	ErrorTypeDatabase
	ErrorTypeCache

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeAlreadyExists:
		return "ALREADY_EXISTS_ERROR"
	case ErrorTypeRemote:
		return "REMOTE_ERROR"
	case ErrorTypeIncompleteData:
		return "INCOMPLETE_DATA_ERROR"
	case ErrorTypeDecode:
		return "DECODE_ERROR"
	case ErrorTypeCancelled:
		return "CANCELLED"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeCache:
		return "CACHE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Retryable reports whether a user action (pull-to-refresh, retry button) can fix the failure.
func (e ErrorType) Retryable() bool {
	switch e {
	case ErrorTypeRemote, ErrorTypeIncompleteData, ErrorTypeDecode, ErrorTypeCache:
		return true
	default:
		return false
	}
}

// Short aliases used across the code base
const (
	ValidationError     = ErrorTypeValidation
	NotFoundError       = ErrorTypeNotFound
	AlreadyExistsError  = ErrorTypeAlreadyExists
	RemoteError         = ErrorTypeRemote
	IncompleteDataError = ErrorTypeIncompleteData
	DecodeError         = ErrorTypeDecode
	Cancelled           = ErrorTypeCancelled
	DatabaseError       = ErrorTypeDatabase
	CacheError          = ErrorTypeCache
	ConfigurationError  = ErrorTypeConfiguration
)

type AppError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
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

// Domain Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

func NewAlreadyExistsError(message string) *AppError {
	return New(AlreadyExistsError, message)
}

// Remote Error Constructors

// NewRemoteError reports a non-2xx answer (statusCode > 0) or a transport failure (statusCode == 0).
func NewRemoteError(message string, statusCode int, cause error) *AppError {
	return &AppError{
		Type:       RemoteError,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

func NewIncompleteDataError(message string) *AppError {
	return New(IncompleteDataError, message)
}

func NewDecodeError(message string, cause error) *AppError {
	return Wrap(DecodeError, message, cause)
}

func NewCancelledError(message string, cause error) *AppError {
	return Wrap(Cancelled, message, cause)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewCacheError(message string, cause error) *AppError {
	return Wrap(CacheError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// TypeOf returns the type of the outermost AppError in err's chain.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func is(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// Helper functions for error type checking
func IsNotFoundError(err error) bool {
	return is(err, NotFoundError)
}

func IsAlreadyExistsError(err error) bool {
	return is(err, AlreadyExistsError)
}

func IsValidationError(err error) bool {
	return is(err, ValidationError)
}

func IsRemoteError(err error) bool {
	return is(err, RemoteError)
}

func IsIncompleteDataError(err error) bool {
	return is(err, IncompleteDataError)
}

func IsDecodeError(err error) bool {
	return is(err, DecodeError)
}

func IsDatabaseError(err error) bool {
	return is(err, DatabaseError)
}

func IsConfigurationError(err error) bool {
	return is(err, ConfigurationError)
}

// IsCancelled also treats bare context errors as cancellation so callers that never
// reached the gateway classify the same way.
func IsCancelled(err error) bool {
	if err == nil {
		return false
	}
	if is(err, Cancelled) {
		return true
	}
	return stderrors.Is(err, context.Canceled)
}

// UserMessage renders the single line shown to the user for a failed operation.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return "Something went wrong. Please try again."
	}

	switch appErr.Type {
	case ValidationError, NotFoundError, AlreadyExistsError:
		return appErr.Message
	case RemoteError:
		if appErr.StatusCode > 0 {
			return fmt.Sprintf("Weather service returned an error (HTTP %d). Pull to refresh to try again.", appErr.StatusCode)
		}
		return "Weather service is unreachable. Pull to refresh to try again."
	case IncompleteDataError, DecodeError:
		return "Weather service sent unexpected data. Pull to refresh to try again."
	case ConfigurationError:
		return "Weather service is misconfigured."
	case DatabaseError, CacheError:
		return "Could not save weather data locally."
	default:
		return "Something went wrong. Please try again."
	}
}
