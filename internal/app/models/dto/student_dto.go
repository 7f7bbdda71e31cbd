package dto

// StudentIDsRequest carries the numeric ids of students for graduation
type StudentIDsRequest struct {
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1"`
}

// BatchStatusRequest sets one status on many students
type BatchStatusRequest struct {
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1"`
	Status     string  `json:"status" binding:"required,oneof=Active Graduated Suspended"`
}

// BatchStatusResult reports how many rows changed
type BatchStatusResult struct {
	AffectedRows int `json:"affectedRows"`
}

// GraduateResult reports how many students moved to alumni
type GraduateResult struct {
	GraduatedCount int `json:"graduatedCount"`
}

// ListParams are the query parameters accepted by list endpoints
type ListParams struct {
	Page   int
	Limit  int
	Search string
	// Filters are passed through as extra query parameters, e.g. faculty.
	Filters map[string]string
}
