package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/yigit/unirecords/internal/app/models/dto"
)

// ImportFallbackMessage is used when an import fails without a server message.
const ImportFallbackMessage = "เกิดข้อผิดพลาดในการนำเข้าข้อมูล"

const importStudentsPath = "/import/students"

// ImportService covers /import endpoints
type ImportService struct {
	c *Client
}

// Students uploads a CSV or Excel file as multipart field "file".
func (s *ImportService) Students(ctx context.Context, filename string, r io.Reader) (dto.ImportResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return dto.ImportResult{}, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return dto.ImportResult{}, fmt.Errorf("read upload %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return dto.ImportResult{}, fmt.Errorf("build upload: %w", err)
	}

	req, requestID, err := s.c.newRequest(ctx, http.MethodPost, importStudentsPath, &buf, mw.FormDataContentType())
	if err != nil {
		return dto.ImportResult{}, err
	}

	var resp dto.APIResponse[dto.ImportResult]
	if err := s.c.send(req, requestID, importStudentsPath, ImportFallbackMessage, &resp); err != nil {
		return dto.ImportResult{}, err
	}
	return resp.Data, nil
}
