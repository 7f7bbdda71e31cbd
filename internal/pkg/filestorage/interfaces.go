package filestorage

import (
	"io"
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save writes r under name and returns the full path of the written file
	Save(name string, r io.Reader) (string, error)

	// SaveFileWithPath stores an uploaded file under a unique name in subPath
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a stored name
	GetFullPath(name string) string
}
