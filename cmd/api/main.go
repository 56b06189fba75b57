package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sefazor/maeum-backend/internal/config"
	"github.com/sefazor/maeum-backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := cfg.Validate(); err != nil {
		zapLogger.Fatal("invalid configuration", zap.Error(err))
	}

	app, cleanup, err := InitializeAPI(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize api", zap.Error(err))
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		zapLogger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := app.Listen(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLogger.Error("server stopped", zap.Error(err))
	}
}
