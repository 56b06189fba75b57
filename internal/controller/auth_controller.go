package controller

import (
	"context"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/service"
	"github.com/sefazor/maeum-backend/internal/session"
)

type AuthController struct {
	authService *service.AuthService
	sessions    *session.Sessions
}

func NewAuthController(authService *service.AuthService, sessions *session.Sessions) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
	}
}

// Register and Login open a fresh per-token session for the new token.
func (c *AuthController) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return c.authService.Register(ctx, c.sessions.Open(""), req)
}

func (c *AuthController) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return c.authService.Login(ctx, c.sessions.Open(""), req)
}

func (c *AuthController) Logout(ctx context.Context, sess session.Store) error {
	return c.authService.Logout(ctx, sess)
}

func (c *AuthController) CurrentUser(ctx context.Context, sess session.Store) (*models.User, error) {
	user, err := c.authService.CurrentUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrUnauthorized
	}
	return user, nil
}
