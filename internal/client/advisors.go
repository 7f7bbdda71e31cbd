package client

import (
	"context"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
)

const advisorsPath = "/advisors"

// AdvisorsService covers /advisors endpoints
type AdvisorsService struct {
	c *Client
}

// List returns one page of advisors.
func (s *AdvisorsService) List(ctx context.Context, params dto.ListParams) ([]models.Advisor, dto.PaginationInfo, error) {
	return listRecords[models.AdvisorRow, models.Advisor](ctx, s.c, advisorsPath, params)
}

// Get returns one advisor.
func (s *AdvisorsService) Get(ctx context.Context, id string) (models.Advisor, error) {
	return getRecord[models.AdvisorRow, models.Advisor](ctx, s.c, advisorsPath, id)
}

// Create adds an advisor and returns its id.
func (s *AdvisorsService) Create(ctx context.Context, a models.Advisor) (string, error) {
	a.ID = ""
	return createRecord(ctx, s.c, advisorsPath, a)
}

// Update replaces an advisor.
func (s *AdvisorsService) Update(ctx context.Context, id string, a models.Advisor) error {
	return updateRecord(ctx, s.c, advisorsPath, id, a)
}

// Delete removes an advisor.
func (s *AdvisorsService) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, s.c, advisorsPath, id)
}
