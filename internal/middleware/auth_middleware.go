package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/session"
	jwtPkg "github.com/sefazor/maeum-backend/pkg/jwt"
	"go.uber.org/zap"
)

// Locals keys set for authenticated requests.
const (
	LocalUserID  = "userID"
	LocalSession = "session"
)

type Auth struct {
	tokens   *jwtPkg.Manager
	sessions *session.Sessions
	logger   *zap.Logger
}

func NewAuth(tokens *jwtPkg.Manager, sessions *session.Sessions, logger *zap.Logger) *Auth {
	return &Auth{tokens: tokens, sessions: sessions, logger: logger.Named("auth-middleware")}
}

// Required rejects requests without a live session with 401.
func (a *Auth) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "Invalid authorization header format")
		}
		status, msg := a.authenticate(c, strings.TrimPrefix(authHeader, "Bearer "))
		switch status {
		case fiber.StatusOK:
		case fiber.StatusServiceUnavailable:
			return c.Status(status).JSON(models.FailureResponse(models.ErrStorageUnavailable, msg))
		default:
			return unauthorized(c, msg)
		}
		return c.Next()
	}
}

// Optional attaches the session when a valid token is present and lets
// anonymous requests through otherwise.
func (a *Auth) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(authHeader, "Bearer ") {
			a.authenticate(c, strings.TrimPrefix(authHeader, "Bearer "))
		}
		return c.Next()
	}
}

func (a *Auth) authenticate(c *fiber.Ctx, token string) (int, string) {
	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		a.logger.Debug("token rejected", zap.Error(err))
		return fiber.StatusUnauthorized, "Invalid token"
	}

	store := a.sessions.Open(token)
	sess, err := store.Load(c.UserContext())
	if err != nil {
		a.logger.Error("session lookup failed", zap.Error(err))
		return fiber.StatusServiceUnavailable, "Session store unavailable"
	}
	if !sess.Valid() || sess.User.ID != claims.UserID() {
		return fiber.StatusUnauthorized, "Session expired"
	}

	c.Locals(LocalUserID, sess.User.ID)
	c.Locals(LocalSession, session.Store(store))
	return fiber.StatusOK, ""
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.FailureResponse(models.ErrUnauthorized, msg))
}

// UserID is the authenticated user's id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// Session returns the request's session store, or nil when anonymous.
func Session(c *fiber.Ctx) session.Store {
	sess, _ := c.Locals(LocalSession).(session.Store)
	return sess
}
