package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/session"
	"github.com/sefazor/maeum-backend/pkg/bcrypt"
	"github.com/sefazor/maeum-backend/pkg/utils"
)

type UserService struct {
	userRepo  UserRepository
	validator *utils.Validator
	now       func() time.Time
}

func NewUserService(userRepo UserRepository, validator *utils.Validator) *UserService {
	return &UserService{
		userRepo:  userRepo,
		validator: validator,
		now:       time.Now,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateUser applies the non-nil fields of req, then refreshes every
// session of the user that sess can reach, not only the caller's.
func (s *UserService) UpdateUser(ctx context.Context, sess session.Store, userID string, req models.UpdateUserRequest) (*models.User, error) {
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Update(ctx, userID, func(u *models.StoredUser) error {
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Phone != nil {
			u.Phone = strings.TrimSpace(*req.Phone)
		}
		u.UpdatedAt = timestamp(s.now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	user := updated.Public()

	if sess != nil {
		if err := sess.RefreshUser(ctx, user); err != nil {
			return nil, fmt.Errorf("refresh sessions: %w", err)
		}
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := validateRequest(s.validator, req); err != nil {
		return err
	}
	hashedPassword, err := bcrypt.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.userRepo.Update(ctx, userID, func(u *models.StoredUser) error {
		if err := bcrypt.ComparePassword(u.PasswordHash, req.CurrentPassword); err != nil {
			return models.ErrInvalidCredentials
		}
		u.PasswordHash = hashedPassword
		u.UpdatedAt = timestamp(s.now)
		return nil
	})
	return err
}
