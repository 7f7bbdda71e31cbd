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
	"github.com/yigit/unirecords/internal/pkg/auth"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

// UserController serves the signed-in user's profile and password
type UserController struct {
	repos        *repositories.Repositories
	validator    *validation.Validator
	passwordCost int
	logger       zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(repos *repositories.Repositories, v *validation.Validator, passwordCost int, logger zerolog.Logger) *UserController {
	return &UserController{repos: repos, validator: v, passwordCost: passwordCost, logger: logger}
}

// GetProfile returns the account merged with its linked student, advisor or
// alumni record
func (c *UserController) GetProfile(ctx *gin.Context) {
	account, err := currentAccount(ctx, c.repos.UserRepository)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile := profileWire{
		ID:       account.ID,
		Username: account.Username,
		Role:     string(account.Role),
		Name:     account.Name,
	}

	switch {
	case account.IsAlumni:
		profile.IsAlumni = 1
		if a, err := c.repos.AlumniRepository.GetByID(account.AlumniRef); err == nil {
			profile.AlumniID = a.AlumniID
			profile.FirstName = a.FirstName
			profile.LastName = a.LastName
			profile.Name = a.FullName()
			profile.Email = a.Email
			profile.Faculty = a.Faculty
			profile.Department = a.Department
			profile.Phone = a.Phone
		}
	case account.Role == models.RoleStudent:
		if s, err := c.repos.StudentRepository.GetByID(account.StudentRef); err == nil {
			profile.StudentID = s.StudentID
			profile.FirstName = s.FirstName
			profile.LastName = s.LastName
			profile.Name = s.FullName()
			profile.Email = s.Email
			profile.Faculty = s.Faculty
			profile.Department = s.Department
			profile.Phone = s.Phone
			profile.Year = s.Year
		}
	case account.Role == models.RoleAdvisor:
		if a, err := c.repos.AdvisorRepository.GetByID(account.AdvisorRef); err == nil {
			profile.AdvisorID = a.AdvisorID
			profile.Name = a.Name
			profile.Email = a.Email
			profile.Faculty = a.Faculty
			profile.Department = a.Department
			profile.Phone = a.Phone
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccess(profile, ""))
}

// ChangePassword replaces the password after checking the current one
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if err := c.validator.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	account, err := currentAccount(ctx, c.repos.UserRepository)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !auth.CheckPassword(account.PasswordHash, req.CurrentPassword) {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, "รหัสผ่านปัจจุบันไม่ถูกต้อง"))
		return
	}

	hash, err := auth.HashPasswordCost(req.NewPassword, c.passwordCost)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.repos.UserRepository.UpdatePassword(account.ID, hash); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", account.ID).Msg("Password changed")
	ctx.JSON(http.StatusOK, dto.NewSuccess(struct{}{}, "เปลี่ยนรหัสผ่านสำเร็จ"))
}
