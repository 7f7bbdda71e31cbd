package dto

// CommentRequest adds a comment to a project
type CommentRequest struct {
	AuthorName string `json:"author_name" binding:"required"`
	AuthorRole string `json:"author_role" binding:"required"`
	Message    string `json:"message" binding:"required"`
}
