package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an error for callers of the retrieval backend.
type ErrorType string

const (
	// Startup / configuration errors
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"
	ErrorTypeLoad          ErrorType = "LOAD"

	// Authentication and session errors
	ErrorTypeAuth           ErrorType = "AUTH"
	ErrorTypeSessionNotFound ErrorType = "SESSION_NOT_FOUND"
	ErrorTypeSessionExpired  ErrorType = "SESSION_EXPIRED"
	ErrorTypeForbidden       ErrorType = "FORBIDDEN"

	// Request errors
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeRateLimit  ErrorType = "RATE_LIMIT"

	// Service errors
	ErrorTypeUnavailable  ErrorType = "UNAVAILABLE"
	ErrorTypeConnectivity ErrorType = "CONNECTIVITY"
	ErrorTypeInternal     ErrorType = "INTERNAL"
)

// AppError is the error carried across the service boundary. Lower-level
// errors (I/O, parse) are wrapped into one of these before leaving the
// component that produced them.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds error details.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewConfigurationError creates a fatal configuration error. These are
// surfaced at process start and never retried.
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConfiguration,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewLoadError creates a corpus/index load error. Fatal for the process
// that needed the index; serving must not start on a partial load.
func NewLoadError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeLoad,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewAuthError creates an authentication failure (invalid principal or
// secret). Returned to the caller, not retried.
func NewAuthError(message string) *AppError {
	if message == "" {
		message = "invalid principal or secret"
	}
	return &AppError{
		Type:       ErrorTypeAuth,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewSessionNotFoundError creates an unknown-session error. The caller
// must re-authenticate.
func NewSessionNotFoundError() *AppError {
	return &AppError{
		Type:       ErrorTypeSessionNotFound,
		Message:    "session not found",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewSessionExpiredError creates an expired-session error. Distinguishable
// from SESSION_NOT_FOUND so the caller can choose to prompt for re-auth.
func NewSessionExpiredError(sessionID string) *AppError {
	return &AppError{
		Type:       ErrorTypeSessionExpired,
		Message:    "session has expired",
		Details:    map[string]interface{}{"session_id": sessionID},
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates an insufficient-role error.
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "insufficient permissions"
	}
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewValidationError creates a request validation error.
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewRateLimitError creates a rate limit error.
func NewRateLimitError(limit int, window string) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimit,
		Message:    fmt.Sprintf("rate limit exceeded: %d requests per %s", limit, window),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewUnavailableError creates a service-unavailable error. Emitted during a
// simulated outage window; callers are expected to retry with backoff.
func NewUnavailableError(message string) *AppError {
	if message == "" {
		message = "service is unavailable"
	}
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    message,
		Code:       "NETWORK_UNREACHABLE",
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NewConnectivityError creates a probe failure. Reported in status
// payloads; never thrown to interrupt callers.
func NewConnectivityError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeConnectivity,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type.
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsAuth checks if an error is an authentication failure.
func IsAuth(err error) bool {
	return IsType(err, ErrorTypeAuth)
}

// IsSessionNotFound checks if an error is an unknown-session error.
func IsSessionNotFound(err error) bool {
	return IsType(err, ErrorTypeSessionNotFound)
}

// IsSessionExpired checks if an error is an expired-session error.
func IsSessionExpired(err error) bool {
	return IsType(err, ErrorTypeSessionExpired)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsUnavailable checks if an error is a simulated-outage rejection.
func IsUnavailable(err error) bool {
	return IsType(err, ErrorTypeUnavailable)
}

// IsLoad checks if an error is an index load error.
func IsLoad(err error) bool {
	return IsType(err, ErrorTypeLoad)
}

// IsConfiguration checks if an error is a configuration error.
func IsConfiguration(err error) bool {
	return IsType(err, ErrorTypeConfiguration)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
