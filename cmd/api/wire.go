//go:build wireinject
// +build wireinject

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/sefazor/maeum-backend/internal/config"
	"github.com/sefazor/maeum-backend/internal/controller"
	"github.com/sefazor/maeum-backend/internal/handler"
	"github.com/sefazor/maeum-backend/internal/metrics"
	"github.com/sefazor/maeum-backend/internal/middleware"
	"github.com/sefazor/maeum-backend/internal/service"
	"github.com/sefazor/maeum-backend/pkg/qrcode"
	"github.com/sefazor/maeum-backend/pkg/utils"
	"go.uber.org/zap"
)

func InitializeAPI(cfg *config.Config, logger *zap.Logger) (*fiber.App, func(), error) {
	wire.Build(
		// Stores
		openStores,
		provideUserRepository,
		provideEventRepository,
		provideSessions,

		// Infrastructure
		provideTokens,
		provideMailer,
		provideObjectStorage,
		utils.NewValidator,
		metrics.New,
		qrcode.NewQRService,

		// Services
		service.NewAuthService,
		service.NewUserService,
		provideEventService,
		provideShareService,
		service.NewMediaService,

		// Controllers
		controller.NewAuthController,

		// Handlers
		handler.NewAuthHandler,
		handler.NewUserHandler,
		handler.NewEventHandler,
		handler.NewPublicHandler,
		middleware.NewAuth,
		handler.NewRouter,

		// App
		newFiberApp,
	)
	return nil, nil, nil
}
