package client

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

const studentsPath = "/students"

// StudentsService covers /students endpoints
type StudentsService struct {
	c *Client
}

// List returns one page of students.
func (s *StudentsService) List(ctx context.Context, params dto.ListParams) ([]models.Student, dto.PaginationInfo, error) {
	return listRecords[models.StudentRow, models.Student](ctx, s.c, studentsPath, params)
}

// Get returns one student by record id.
func (s *StudentsService) Get(ctx context.Context, id string) (models.Student, error) {
	return getRecord[models.StudentRow, models.Student](ctx, s.c, studentsPath, id)
}

// Create adds a student and returns the new record id.
func (s *StudentsService) Create(ctx context.Context, student models.Student) (string, error) {
	student.ID = ""
	return createRecord(ctx, s.c, studentsPath, student)
}

// Update replaces a student record.
func (s *StudentsService) Update(ctx context.Context, id string, student models.Student) error {
	return updateRecord(ctx, s.c, studentsPath, id, student)
}

// Delete removes a student.
func (s *StudentsService) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, s.c, studentsPath, id)
}

// BatchUpdateStatus sets status on all ids and returns the affected row count.
func (s *StudentsService) BatchUpdateStatus(ctx context.Context, ids []string, status models.StudentStatus) (int, error) {
	numeric, err := numericIDs(ids)
	if err != nil {
		return 0, err
	}
	var resp dto.APIResponse[dto.BatchStatusResult]
	err = s.c.do(ctx, http.MethodPut, studentsPath+"/status/batch", dto.BatchStatusRequest{
		StudentIDs: numeric,
		Status:     string(status),
	}, &resp)
	return resp.Data.AffectedRows, err
}

// Graduate moves students to alumni on the server and returns the count moved.
func (s *StudentsService) Graduate(ctx context.Context, ids []string) (int, error) {
	numeric, err := numericIDs(ids)
	if err != nil {
		return 0, err
	}
	var resp dto.APIResponse[dto.GraduateResult]
	err = s.c.do(ctx, http.MethodPost, studentsPath+"/graduate", dto.StudentIDsRequest{StudentIDs: numeric}, &resp)
	return resp.Data.GraduatedCount, err
}

// numericIDs converts record ids to the numbers the batch endpoints expect.
func numericIDs(ids []string) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid record id " + strconv.Quote(id))
		}
		out = append(out, n)
	}
	return out, nil
}
