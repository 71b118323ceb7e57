package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType string

// Domain/Business Logic Errors - errors related to input validation
const (
	ValidationError      ErrorType = "VALIDATION_ERROR"
	InvalidLocationError ErrorType = "INVALID_LOCATION_ERROR"
	NotFoundError        ErrorType = "NOT_FOUND_ERROR"
)

// Infrastructure Errors - errors related to external systems and services
const (
	NetworkError           ErrorType = "NETWORK_ERROR"
	UpstreamError          ErrorType = "UPSTREAM_ERROR"
	MalformedResponseError ErrorType = "MALFORMED_RESPONSE_ERROR"
	DatabaseError          ErrorType = "DATABASE_ERROR"
	PersistedStateError    ErrorType = "PERSISTED_STATE_ERROR"
)

// System/Configuration Errors - errors related to system setup and configuration
const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error

	// StatusCode and Body are set only for upstream (non-2xx) failures.
	StatusCode int
	Body       string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
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

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewInvalidLocationError(message string) *AppError {
	return New(InvalidLocationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Infrastructure Error Constructors
func NewNetworkError(message string, cause error) *AppError {
	return Wrap(NetworkError, message, cause)
}

// NewUpstreamError reports a non-2xx upstream response. The status code and
// body text are preserved so callers can surface them in notifications.
func NewUpstreamError(message string, statusCode int, body string) *AppError {
	return &AppError{
		Type:       UpstreamError,
		Message:    fmt.Sprintf("%s: status %d", message, statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

func NewMalformedResponseError(message string, cause error) *AppError {
	return Wrap(MalformedResponseError, message, cause)
}

func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewPersistedStateError(message string, cause error) *AppError {
	return Wrap(PersistedStateError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}
