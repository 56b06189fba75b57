package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
	"go.uber.org/zap"
)

// errorStatus maps the error taxonomy onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrDuplicateEmail):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrStorageUnavailable), errors.Is(err, kvstore.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// respondError writes the error envelope. Server side failures are logged
// and reported without their details.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	switch status {
	case fiber.StatusServiceUnavailable:
		logger.Error("storage unavailable", zap.String("path", c.Path()), zap.Error(err))
		msg = "Service temporarily unavailable"
	case fiber.StatusInternalServerError:
		logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		msg = "Internal server error"
	}
	return c.Status(status).JSON(models.FailureResponse(err, msg))
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
}
