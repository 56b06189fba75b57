package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type R2Config struct {
	AccountID       string `env:"R2_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	Bucket          string `env:"R2_BUCKET"`
	PublicURL       string `env:"R2_PUBLIC_URL"`
}

// Enabled reports whether enough of R2 is configured to upload.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != ""
}

type EmailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromAddress  string `env:"EMAIL_FROM_ADDRESS" envDefault:"noreply@maeum.local"`
	FromName     string `env:"EMAIL_FROM_NAME" envDefault:"마음전하기"`
}

type Config struct {
	AppEnv        string        `env:"APP_ENV" envDefault:"development"`
	Port          string        `env:"PORT" envDefault:"8080"`
	PublicBaseURL string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:5173"`
	CORSOrigins   string        `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`
	StoreDriver   string        `env:"STORE_DRIVER" envDefault:"sqlite"`
	SessionDriver string        `env:"SESSION_DRIVER" envDefault:"sqlite"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"maeum.db"`
	RedisURL      string        `env:"REDIS_URL"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"maeum"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	RateLimitMax  int           `env:"RATE_LIMIT_MAX" envDefault:"60"`
	R2            R2Config
	Email         EmailConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate rejects combinations the selected drivers cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for STORE_DRIVER=redis"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for STORE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	switch c.SessionDriver {
	case DriverMemory, DriverSQLite:
	case DriverRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for SESSION_DRIVER=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_DRIVER %q", c.SessionDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if c.IsProduction() && len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 bytes in production"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.RateLimitMax <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX must be positive"))
	}
	return errors.Join(errs...)
}
