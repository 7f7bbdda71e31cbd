package client

import (
	"context"
	"net/http"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
)

// AuthService covers /auth endpoints
type AuthService struct {
	c *Client
}

// Login posts credentials. A 2xx response may still carry success=false.
func (s *AuthService) Login(ctx context.Context, username, password string) (dto.APIResponse[dto.LoginData], error) {
	var resp dto.APIResponse[dto.LoginData]
	err := s.c.do(ctx, http.MethodPost, loginEndpoint, dto.LoginRequest{Username: username, Password: password}, &resp)
	return resp, err
}

// Profile fetches the signed-in user's profile.
func (s *AuthService) Profile(ctx context.Context) (dto.APIResponse[*models.Profile], error) {
	var resp dto.APIResponse[*models.Profile]
	err := s.c.do(ctx, http.MethodGet, "/auth/profile", nil, &resp)
	return resp, err
}

// ChangePassword changes the signed-in user's password.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	return s.c.do(ctx, http.MethodPut, "/auth/change-password", dto.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	}, nil)
}
