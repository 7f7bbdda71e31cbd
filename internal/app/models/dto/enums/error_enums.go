// Package enums holds the machine-readable codes of the mock API's error
// envelope.
package enums

// ErrorCode identifies the kind of failure in error.code
type ErrorCode string

// Auth failures
const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_INVALID_CREDENTIALS"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_REQUIRED"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_TOKEN_INVALID"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_TOKEN_EXPIRED"
	ErrorCodeForbidden          ErrorCode = "AUTH_FORBIDDEN"
)

// Record and request failures
const (
	ErrorCodeResourceNotFound      ErrorCode = "RECORD_NOT_FOUND"
	ErrorCodeResourceAlreadyExists ErrorCode = "RECORD_EXISTS"
	ErrorCodeConflict              ErrorCode = "RECORD_CONFLICT"
	ErrorCodeValidationFailed      ErrorCode = "FORM_INVALID"
	ErrorCodeBadRequest            ErrorCode = "BAD_REQUEST"
	ErrorCodeFileTooLarge          ErrorCode = "IMPORT_FILE_TOO_LARGE"
	ErrorCodeFileType              ErrorCode = "IMPORT_FILE_TYPE"
	ErrorCodeInternalServer        ErrorCode = "SERVER_ERROR"
)
