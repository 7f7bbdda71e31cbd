package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
)

const projectsPath = "/projects"

// ProjectsService covers /projects endpoints
type ProjectsService struct {
	c *Client
}

// List returns one page of projects.
func (s *ProjectsService) List(ctx context.Context, params dto.ListParams) ([]models.Project, dto.PaginationInfo, error) {
	return listRecords[models.ProjectRow, models.Project](ctx, s.c, projectsPath, params)
}

// Get returns one project with its comments.
func (s *ProjectsService) Get(ctx context.Context, id string) (models.Project, error) {
	return getRecord[models.ProjectRow, models.Project](ctx, s.c, projectsPath, id)
}

// Create adds a project and returns its id.
func (s *ProjectsService) Create(ctx context.Context, p models.Project) (string, error) {
	p.ID = ""
	p.Comments = nil
	return createRecord(ctx, s.c, projectsPath, p)
}

// Update replaces a project. Comments are managed separately and not sent.
func (s *ProjectsService) Update(ctx context.Context, id string, p models.Project) error {
	p.Comments = nil
	return updateRecord(ctx, s.c, projectsPath, id, p)
}

// Delete removes a project.
func (s *ProjectsService) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, s.c, projectsPath, id)
}

// AddComment posts a comment and returns its id.
func (s *ProjectsService) AddComment(ctx context.Context, projectID, authorName, authorRole, message string) (string, error) {
	path, err := itemPath(projectsPath, projectID)
	if err != nil {
		return "", err
	}
	var resp dto.APIResponse[dto.CreatedID]
	err = s.c.do(ctx, http.MethodPost, path+"/comments", dto.CommentRequest{
		AuthorName: authorName,
		AuthorRole: authorRole,
		Message:    message,
	}, &resp)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(resp.Data.ID), nil
}
