package dto

import (
	"strings"
	"time"

	"github.com/yigit/unirecords/internal/app/models/dto/enums"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    enums.ErrorCode `json:"code,omitempty"`
	Message string          `json:"message"`
	Field   string          `json:"field,omitempty"`
	Details interface{}     `json:"details,omitempty"`
}

// FieldError is one entry of the express-validator style errors array.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ErrorResponse is the envelope of every non-2xx response. Servers fill
// different parts of it, so clients read Message, then Errors, then Error.
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp *time.Time   `json:"timestamp,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code enums.ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	now := time.Now()
	resp := &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: &now,
	}
	if errorDetail != nil {
		resp.Message = errorDetail.Message
	}
	return resp
}

// NewFieldErrorResponse builds a validation envelope with one entry per
// name, in the given order. Clients show the first entry, so callers pass a
// stable order.
func NewFieldErrorResponse(names []string, fields map[string]string) *ErrorResponse {
	resp := &ErrorResponse{Success: false}
	for _, param := range names {
		msg, ok := fields[param]
		if !ok {
			continue
		}
		resp.Errors = append(resp.Errors, FieldError{Msg: msg, Param: param})
	}
	return resp
}

// ResolveMessage picks the user-facing text: message, then the first
// errors[].msg, then error.message. Empty when none is set.
func (r *ErrorResponse) ResolveMessage() string {
	if r == nil {
		return ""
	}
	if m := strings.TrimSpace(r.Message); m != "" {
		return m
	}
	if len(r.Errors) > 0 && strings.TrimSpace(r.Errors[0].Msg) != "" {
		return r.Errors[0].Msg
	}
	if r.Error != nil {
		return strings.TrimSpace(r.Error.Message)
	}
	return ""
}
