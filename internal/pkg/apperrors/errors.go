package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrNotLoggedIn        = errors.New("not logged in")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Transport errors
	ErrServer       = errors.New("server error")
	ErrBadResponse  = errors.New("malformed response")
	ErrFileTooLarge = errors.New("file too large")
	ErrFileType     = errors.New("unsupported file type")
)

// Student Errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrStudentIDAlreadyExists = errors.New("student ID already exists")
)

// DefaultMessage is shown when the server gives no usable message.
const DefaultMessage = "เกิดข้อผิดพลาด"

// APIError is a non-2xx response from the records API.
type APIError struct {
	Status  int
	Message string
	// Endpoint is the path the request was sent to, without the base URL.
	Endpoint string
	// Cause narrows the status sentinel, e.g. ErrTokenExpired for a 401.
	Cause error
}

// Error implements error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return DefaultMessage
}

// Unwrap maps the HTTP status onto the package sentinels so callers can use
// errors.Is(err, apperrors.ErrUnauthorized) and friends.
func (e *APIError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrPermissionDenied
	case e.Status == http.StatusNotFound:
		return ErrResourceNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		return ErrValidationFailed
	case e.Status == http.StatusRequestEntityTooLarge:
		return ErrFileTooLarge
	case e.Status >= 500:
		return ErrServer
	default:
		return nil
	}
}

// NewAPIError builds an APIError, falling back to the generic message.
func NewAPIError(status int, endpoint, message string) *APIError {
	if message == "" {
		message = DefaultMessage
	}
	return &APIError{Status: status, Message: message, Endpoint: endpoint}
}

// StatusCode extracts the HTTP status of an APIError anywhere in the chain.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Message returns a user-facing message for err, or fallback when err does
// not carry one from the server.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return NewCustomError(ErrConflict, message)
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return NewCustomError(ErrPermissionDenied, message)
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

// NewValidationError wraps ErrValidationFailed with a message
func NewValidationError(format string, args ...interface{}) error {
	return NewCustomError(ErrValidationFailed, fmt.Sprintf(format, args...))
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
