package dto

// APIResponse is the envelope of single-item and action responses
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// ListResponse is the envelope of paginated list responses
type ListResponse[T any] struct {
	Success    bool           `json:"success"`
	Data       []T            `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// CreatedID is the data of create endpoints
type CreatedID struct {
	ID int64 `json:"id"`
}

// NewSuccess wraps data in a successful envelope.
func NewSuccess[T any](data T, message string) APIResponse[T] {
	return APIResponse[T]{Success: true, Message: message, Data: data}
}

// NewList wraps rows in a successful list envelope.
func NewList[T any](rows []T, pagination PaginationInfo) ListResponse[T] {
	if rows == nil {
		rows = []T{}
	}
	return ListResponse[T]{Success: true, Data: rows, Pagination: pagination}
}
