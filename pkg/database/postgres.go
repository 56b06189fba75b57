package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/maeum-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNoDatabaseURL = errors.New("DATABASE_URL is not set")

// NewDatabase opens postgres, applies migrations and returns the handle.
// Unique violations surface as gorm.ErrDuplicatedKey.
func NewDatabase(databaseURL string, log *zap.Logger) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, ErrNoDatabaseURL
	}
	dsn := withLocalSSLMode(databaseURL)

	gLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withLocalSSLMode disables TLS for localhost DSNs that do not say
// otherwise.
func withLocalSSLMode(dsn string) string {
	if !strings.Contains(dsn, "localhost") || strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&sslmode=disable"
	}
	return dsn + "?sslmode=disable"
}
