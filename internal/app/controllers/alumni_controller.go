package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/repositories"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/helpers"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

// AlumniController handles /alumni
type AlumniController struct {
	repos     *repositories.Repositories
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewAlumniController creates a new AlumniController
func NewAlumniController(repos *repositories.Repositories, v *validation.Validator, logger zerolog.Logger) *AlumniController {
	return &AlumniController{repos: repos, validator: v, logger: logger}
}

// GetAlumni lists alumni
func (c *AlumniController) GetAlumni(ctx *gin.Context) {
	f := listFilter(ctx, "faculty", "department", "graduation_year", "employment_status")
	rows, total := c.repos.AlumniRepository.List(f)
	ctx.JSON(http.StatusOK, dto.NewList(mapRows(rows, toAlumniWire), helpers.NewPaginationInfo(total, f.Page, f.Limit)))
}

// GetAlumniByID returns one alumni record
func (c *AlumniController) GetAlumniByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "ศิษย์เก่า")
	if !ok {
		return
	}
	alumni, err := c.repos.AlumniRepository.GetByID(id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(toAlumniWire(alumni), ""))
}

// CreateAlumni adds an alumni record
func (c *AlumniController) CreateAlumni(ctx *gin.Context) {
	var alumni models.Alumni
	if !middleware.BindJSON(ctx, &alumni) {
		return
	}
	if alumni.EmploymentStatus == "" {
		alumni.EmploymentStatus = models.EmploymentSeeking
	}
	if err := c.validator.Alumni(alumni); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id := c.repos.AlumniRepository.Create(alumni)
	c.logger.Info().Int64("id", id).Msg("Alumni created")
	ctx.JSON(http.StatusCreated, dto.NewSuccess(dto.CreatedID{ID: id}, "เพิ่มข้อมูลศิษย์เก่าสำเร็จ"))
}

// UpdateAlumni replaces an alumni record. Admins may edit any record; an
// alumni account may edit only its own.
func (c *AlumniController) UpdateAlumni(ctx *gin.Context) {
	id, ok := parseID(ctx, "ศิษย์เก่า")
	if !ok {
		return
	}

	if ctx.GetString(middleware.ContextRole) != string(models.RoleAdmin) {
		account, err := currentAccount(ctx, c.repos.UserRepository)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		if !account.IsAlumni || account.AlumniRef != id {
			middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
			return
		}
	}

	var alumni models.Alumni
	if !middleware.BindJSON(ctx, &alumni) {
		return
	}
	if alumni.EmploymentStatus == "" {
		alumni.EmploymentStatus = models.EmploymentSeeking
	}
	if err := c.validator.Alumni(alumni); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.repos.AlumniRepository.Update(id, alumni); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(struct{}{}, "แก้ไขข้อมูลศิษย์เก่าสำเร็จ"))
}

// DeleteAlumni removes an alumni record
func (c *AlumniController) DeleteAlumni(ctx *gin.Context) {
	id, ok := parseID(ctx, "ศิษย์เก่า")
	if !ok {
		return
	}
	if err := c.repos.AlumniRepository.Delete(id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(struct{}{}, "ลบข้อมูลศิษย์เก่าสำเร็จ"))
}
