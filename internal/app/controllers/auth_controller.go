// Package controllers handles HTTP request handling
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
)

// AuthController handles authentication related operations
type AuthController struct {
	users      *repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(users *repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks credentials and issues an access token
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	account, err := c.users.GetUserByUsername(req.Username)
	if err != nil || !auth.CheckPassword(account.PasswordHash, req.Password) {
		c.logger.Warn().Str("username", req.Username).Msg("Login rejected")
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredentials)
		return
	}

	token, _, err := c.jwtService.GenerateToken(auth.Subject{
		ID:       account.ID,
		Username: account.Username,
		Role:     string(account.Role),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", account.ID).Str("role", string(account.Role)).Msg("User logged in")
	ctx.JSON(http.StatusOK, dto.NewSuccess(loginWire{
		Token: token,
		User: loginUserWire{
			ID:       account.ID,
			Username: account.Username,
			Role:     string(account.Role),
		},
	}, "เข้าสู่ระบบสำเร็จ"))
}

// currentAccount loads the account behind the request's token.
func currentAccount(ctx *gin.Context, users *repositories.UserRepository) (models.Account, error) {
	account, err := users.GetUserByID(middleware.CurrentUserID(ctx))
	if err != nil {
		return account, apperrors.ErrUnauthorized
	}
	return account, nil
}
