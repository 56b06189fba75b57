package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sefazor/maeum-backend/internal/config"
	"github.com/sefazor/maeum-backend/internal/handler"
	"github.com/sefazor/maeum-backend/internal/metrics"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/repository"
	"github.com/sefazor/maeum-backend/internal/service"
	"github.com/sefazor/maeum-backend/internal/session"
	"github.com/sefazor/maeum-backend/pkg/database"
	"github.com/sefazor/maeum-backend/pkg/email"
	jwtPkg "github.com/sefazor/maeum-backend/pkg/jwt"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
	"github.com/sefazor/maeum-backend/pkg/qrcode"
	"github.com/sefazor/maeum-backend/pkg/storage"
	"github.com/sefazor/maeum-backend/pkg/utils"
	"go.uber.org/zap"
)

const bodyLimit = service.MaxImageSize + 2*1024*1024

// Stores groups the repositories and the session backend chosen by
// STORE_DRIVER and SESSION_DRIVER.
type Stores struct {
	Users    service.UserRepository
	Events   service.EventRepository
	Sessions kvstore.Backend
}

// openStores opens each configured backend once; a kv driver shared by
// the repositories and sessions is opened a single time.
func openStores(cfg *config.Config, logger *zap.Logger) (*Stores, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("close store", zap.Error(err))
			}
		}
	}
	backends := map[string]kvstore.Backend{}
	backend := func(driver string) (kvstore.Backend, error) {
		if b, ok := backends[driver]; ok {
			return b, nil
		}
		var (
			b   kvstore.Backend
			err error
		)
		switch driver {
		case config.DriverMemory:
			b = kvstore.NewMemoryBackend()
		case config.DriverSQLite:
			b, err = kvstore.OpenSQLite(cfg.SQLitePath)
		case config.DriverRedis:
			b, err = kvstore.OpenRedis(ctx, cfg.RedisURL, "maeum:")
		default:
			err = fmt.Errorf("unsupported key/value driver %q", driver)
		}
		if err != nil {
			return nil, err
		}
		backends[driver] = b
		closers = append(closers, b.Close)
		return b, nil
	}

	stores := &Stores{}
	if cfg.StoreDriver == config.DriverPostgres {
		db, err := database.NewDatabase(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() error { return database.Close(db) })
		stores.Users = repository.NewUserRepository(db)
		stores.Events = repository.NewEventRepository(db)
	} else {
		b, err := backend(cfg.StoreDriver)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		stores.Users = repository.NewKVUserRepository(b)
		stores.Events = repository.NewKVEventRepository(b)
	}

	sessions, err := backend(cfg.SessionDriver)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	stores.Sessions = sessions

	logger.Info("stores ready",
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("session_driver", cfg.SessionDriver),
	)
	return stores, cleanup, nil
}

func provideUserRepository(s *Stores) service.UserRepository { return s.Users }

func provideEventRepository(s *Stores) service.EventRepository { return s.Events }

func provideSessions(s *Stores, tokens *jwtPkg.Manager) *session.Sessions {
	return session.NewSessions(s.Sessions, tokens.TTL())
}

func provideTokens(cfg *config.Config) (*jwtPkg.Manager, error) {
	return jwtPkg.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
}

// provideMailer always returns a mailer; without an API key it logs and
// drops mail.
func provideMailer(cfg *config.Config, logger *zap.Logger) service.Mailer {
	return email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, logger)
}

// provideObjectStorage returns a nil interface when R2 is not configured
// so image uploads answer 503 instead of failing at startup.
func provideObjectStorage(cfg *config.Config, logger *zap.Logger) (storage.ObjectStorage, error) {
	store, err := storage.NewCloudflareStorage(context.Background(), cfg.R2, logger)
	if errors.Is(err, storage.ErrNotConfigured) {
		logger.Warn("R2 is not configured; image uploads are disabled")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func provideEventService(
	eventRepo service.EventRepository,
	userRepo service.UserRepository,
	validator *utils.Validator,
	mailer service.Mailer,
	m *metrics.Metrics,
	logger *zap.Logger,
	cfg *config.Config,
) *service.EventService {
	return service.NewEventService(eventRepo, userRepo, validator, mailer, m, logger, cfg.PublicBaseURL)
}

func provideShareService(qr *qrcode.QRService, cfg *config.Config) *service.ShareService {
	return service.NewShareService(qr, cfg.PublicBaseURL)
}

func newFiberApp(cfg *config.Config, router *handler.Router, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "maeum",
		BodyLimit:    bodyLimit,
		UnescapePath: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(models.ErrorResponse(err.Error()))
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: !strings.Contains(cfg.CORSOrigins, "*"),
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	router.Mount(app)
	return app
}
