package client

import (
	"context"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
)

const alumniPath = "/alumni"

// AlumniService covers /alumni endpoints
type AlumniService struct {
	c *Client
}

// List returns one page of alumni.
func (s *AlumniService) List(ctx context.Context, params dto.ListParams) ([]models.Alumni, dto.PaginationInfo, error) {
	return listRecords[models.AlumniRow, models.Alumni](ctx, s.c, alumniPath, params)
}

// Get returns one alumni record.
func (s *AlumniService) Get(ctx context.Context, id string) (models.Alumni, error) {
	return getRecord[models.AlumniRow, models.Alumni](ctx, s.c, alumniPath, id)
}

// Create adds an alumni record and returns its id.
func (s *AlumniService) Create(ctx context.Context, a models.Alumni) (string, error) {
	a.ID = ""
	return createRecord(ctx, s.c, alumniPath, a)
}

// Update replaces an alumni record.
func (s *AlumniService) Update(ctx context.Context, id string, a models.Alumni) error {
	return updateRecord(ctx, s.c, alumniPath, id, a)
}

// Delete removes an alumni record.
func (s *AlumniService) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, s.c, alumniPath, id)
}
