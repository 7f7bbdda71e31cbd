package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/repositories"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/helpers"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

// AdvisorController handles /advisors
type AdvisorController struct {
	repos     *repositories.Repositories
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewAdvisorController creates a new AdvisorController
func NewAdvisorController(repos *repositories.Repositories, v *validation.Validator, logger zerolog.Logger) *AdvisorController {
	return &AdvisorController{repos: repos, validator: v, logger: logger}
}

// GetAdvisors lists advisors
func (c *AdvisorController) GetAdvisors(ctx *gin.Context) {
	f := listFilter(ctx, "faculty", "department")
	rows, total := c.repos.AdvisorRepository.List(f)
	ctx.JSON(http.StatusOK, dto.NewList(mapRows(rows, toAdvisorWire), helpers.NewPaginationInfo(total, f.Page, f.Limit)))
}

// GetAdvisorByID returns one advisor
func (c *AdvisorController) GetAdvisorByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "อาจารย์")
	if !ok {
		return
	}
	advisor, err := c.repos.AdvisorRepository.GetByID(id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(toAdvisorWire(advisor), ""))
}

// CreateAdvisor adds an advisor
func (c *AdvisorController) CreateAdvisor(ctx *gin.Context) {
	var advisor models.Advisor
	if !middleware.BindJSON(ctx, &advisor) {
		return
	}
	if err := c.validator.Advisor(advisor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := c.repos.AdvisorRepository.Create(advisor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("id", id).Msg("Advisor created")
	ctx.JSON(http.StatusCreated, dto.NewSuccess(dto.CreatedID{ID: id}, "เพิ่มข้อมูลอาจารย์สำเร็จ"))
}

// UpdateAdvisor replaces an advisor
func (c *AdvisorController) UpdateAdvisor(ctx *gin.Context) {
	id, ok := parseID(ctx, "อาจารย์")
	if !ok {
		return
	}
	var advisor models.Advisor
	if !middleware.BindJSON(ctx, &advisor) {
		return
	}
	if err := c.validator.Advisor(advisor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.repos.AdvisorRepository.Update(id, advisor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(struct{}{}, "แก้ไขข้อมูลอาจารย์สำเร็จ"))
}

// DeleteAdvisor removes an advisor
func (c *AdvisorController) DeleteAdvisor(ctx *gin.Context) {
	id, ok := parseID(ctx, "อาจารย์")
	if !ok {
		return
	}
	if err := c.repos.AdvisorRepository.Delete(id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(struct{}{}, "ลบข้อมูลอาจารย์สำเร็จ"))
}
