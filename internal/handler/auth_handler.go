package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/maeum-backend/internal/controller"
	"github.com/sefazor/maeum-backend/internal/middleware"
	"github.com/sefazor/maeum-backend/internal/models"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authController *controller.AuthController
	logger         *zap.Logger
}

func NewAuthHandler(authController *controller.AuthController, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authController: authController,
		logger:         logger.Named("auth-handler"),
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "User registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authController.Logout(c.UserContext(), middleware.Session(c)); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Logged out"))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authController.CurrentUser(c.UserContext(), middleware.Session(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(user, ""))
}
