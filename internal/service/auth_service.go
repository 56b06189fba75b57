package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/maeum-backend/internal/metrics"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/session"
	"github.com/sefazor/maeum-backend/pkg/bcrypt"
	jwtPkg "github.com/sefazor/maeum-backend/pkg/jwt"
	"github.com/sefazor/maeum-backend/pkg/utils"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo  UserRepository
	tokens    *jwtPkg.Manager
	validator *utils.Validator
	mailer    Mailer
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
	compare   func(hash, password string) error
}

func NewAuthService(userRepo UserRepository, tokens *jwtPkg.Manager, validator *utils.Validator, mailer Mailer, m *metrics.Metrics, logger *zap.Logger) *AuthService {
	// Hash once up front so the first unknown-email login is not faster.
	bcrypt.DummyHash()
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		validator: validator,
		mailer:    mailer,
		metrics:   m,
		logger:    logger.Named("auth"),
		now:       time.Now,
		compare:   bcrypt.ComparePassword,
	}
}

// Register creates the account and signs the new user in on sess.
func (s *AuthService) Register(ctx context.Context, sess session.Store, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return nil, models.ValidationError("passwords do not match")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := timestamp(s.now)
	user := &models.StoredUser{
		User: models.User{
			ID:        uuid.NewString(),
			Email:     req.Email,
			Name:      req.Name,
			Phone:     strings.TrimSpace(req.Phone),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))

	if s.mailer != nil {
		go func(email, name string) {
			if err := s.mailer.SendWelcomeEmail(email, name); err != nil {
				s.logger.Warn("welcome email failed", zap.String("user_id", user.ID), zap.Error(err))
			}
		}(user.Email, user.Name)
	}

	return s.startSession(ctx, sess, user.Public())
}

// Login verifies the credentials and signs the user in on sess. Unknown
// email and wrong password fail with the same error and run the same
// bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, sess session.Store, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrNotFound) {
		_ = s.compare(bcrypt.DummyHash(), req.Password)
		s.metrics.Login(false)
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := s.compare(user.PasswordHash, req.Password); err != nil {
		s.metrics.Login(false)
		return nil, models.ErrInvalidCredentials
	}

	s.metrics.Login(true)
	return s.startSession(ctx, sess, user.Public())
}

func (s *AuthService) startSession(ctx context.Context, sess session.Store, user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}
	if err := sess.Save(ctx, &models.Session{User: user, Token: token}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

// Logout clears sess. Calling it without a session is fine.
func (s *AuthService) Logout(ctx context.Context, sess session.Store) error {
	return sess.Clear(ctx)
}

// CurrentUser returns the signed-in user, or nil when signed out.
func (s *AuthService) CurrentUser(ctx context.Context, sess session.Store) (*models.User, error) {
	current, err := sess.Load(ctx)
	if err != nil || current == nil {
		return nil, err
	}
	return current.User, nil
}

func (s *AuthService) IsAuthenticated(ctx context.Context, sess session.Store) (bool, error) {
	current, err := sess.Load(ctx)
	if err != nil {
		return false, err
	}
	return current.Valid(), nil
}

func (s *AuthService) validate(req interface{}) error {
	return validateRequest(s.validator, req)
}

func validateRequest(v *utils.Validator, req interface{}) error {
	if err := v.Struct(req); err != nil {
		return models.ValidationError("%s", utils.ValidationMessage(err))
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// timestamp is the storage precision shared by every backend.
func timestamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Millisecond)
}
