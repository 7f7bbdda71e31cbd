package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/repositories"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/helpers"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

// ProjectController handles /projects and their comments
type ProjectController struct {
	repos     *repositories.Repositories
	validator *validation.Validator
	now       func() time.Time
	logger    zerolog.Logger
}

// NewProjectController creates a new ProjectController
func NewProjectController(repos *repositories.Repositories, v *validation.Validator, now func() time.Time, logger zerolog.Logger) *ProjectController {
	if now == nil {
		now = time.Now
	}
	return &ProjectController{repos: repos, validator: v, now: now, logger: logger}
}

// GetProjects lists projects
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	f := listFilter(ctx, "year", "status", "type", "advisor")
	rows, total := c.repos.ProjectRepository.List(f)
	ctx.JSON(http.StatusOK, dto.NewList(mapRows(rows, toProjectWire), helpers.NewPaginationInfo(total, f.Page, f.Limit)))
}

// GetProjectByID returns one project with its comments
func (c *ProjectController) GetProjectByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "โครงงาน")
	if !ok {
		return
	}
	project, err := c.repos.ProjectRepository.GetByID(id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(toProjectWire(project), ""))
}

func (c *ProjectController) bindProject(ctx *gin.Context) (models.Project, bool) {
	var project models.Project
	if !middleware.BindJSON(ctx, &project) {
		return project, false
	}
	project = validation.NormalizeProject(project)
	if project.Status == "" {
		project.Status = models.ProjectDraft
	}
	if err := c.validator.Project(project); err != nil {
		middleware.HandleAPIError(ctx, err)
		return project, false
	}
	return project, true
}

// CreateProject adds a project owned by the caller
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	project, ok := c.bindProject(ctx)
	if !ok {
		return
	}
	project.CreatedBy = ctx.GetString(middleware.ContextUsername)

	id := c.repos.ProjectRepository.Create(project)
	c.logger.Info().Int64("id", id).Str("createdBy", project.CreatedBy).Msg("Project created")
	ctx.JSON(http.StatusCreated, dto.NewSuccess(dto.CreatedID{ID: id}, "เพิ่มโปรเจคสำเร็จ"))
}

// UpdateProject replaces a project, keeping its comments
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	id, ok := parseID(ctx, "โครงงาน")
	if !ok {
		return
	}
	project, ok := c.bindProject(ctx)
	if !ok {
		return
	}
	project.CreatedBy = ""
	if err := c.repos.ProjectRepository.Update(id, project); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(struct{}{}, "แก้ไขโปรเจคสำเร็จ"))
}

// DeleteProject removes a project
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	id, ok := parseID(ctx, "โครงงาน")
	if !ok {
		return
	}
	if err := c.repos.ProjectRepository.Delete(id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(struct{}{}, "ลบโปรเจคสำเร็จ"))
}

// AddComment appends an advisor comment to a project
func (c *ProjectController) AddComment(ctx *gin.Context) {
	id, ok := parseID(ctx, "โครงงาน")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	commentID, err := c.repos.ProjectRepository.AddComment(id, req.AuthorName, req.AuthorRole, req.Message, c.now())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccess(dto.CreatedID{ID: commentID}, "เพิ่มความคิดเห็นสำเร็จ"))
}
