package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/maeum-backend/internal/middleware"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/service"
	"github.com/sefazor/maeum-backend/pkg/qrcode"
	"go.uber.org/zap"
)

const maxQRSize = 1024

// PublicHandler serves the visitor facing /{type}/{url} pages.
type PublicHandler struct {
	eventService *service.EventService
	shareService *service.ShareService
	logger       *zap.Logger
}

func NewPublicHandler(eventService *service.EventService, shareService *service.ShareService, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{
		eventService: eventService,
		shareService: shareService,
		logger:       logger.Named("public-handler"),
	}
}

func (h *PublicHandler) GetEvent(c *fiber.Ctx) error {
	eventType, ok := routeType(c)
	if !ok {
		return respondError(c, h.logger, models.ErrEventNotFound)
	}
	event, err := h.eventService.GetPublicEvent(c.UserContext(), eventType, c.Params("url"), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(event, ""))
}

func (h *PublicHandler) QRCode(c *fiber.Ctx) error {
	eventType, ok := routeType(c)
	if !ok {
		return respondError(c, h.logger, models.ErrEventNotFound)
	}
	event, err := h.eventService.FindPublicEvent(c.UserContext(), eventType, c.Params("url"), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	size := c.QueryInt("size", qrcode.DefaultSize)
	if size <= 0 || size > maxQRSize {
		return respondError(c, h.logger, models.ValidationError("size must be between 1 and %d", maxQRSize))
	}
	png, filename, err := h.shareService.QRCode(event, size)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(png)
}

func (h *PublicHandler) AddCondolence(c *fiber.Ctx) error {
	var req models.CondolenceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if t, _ := routeType(c); t != models.EventTypeFuneral {
		return respondError(c, h.logger, models.ErrEventNotFound)
	}
	condolence, err := h.eventService.AddCondolence(c.UserContext(), c.Params("url"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(condolence, "Condolence added"))
}

func (h *PublicHandler) AddRSVP(c *fiber.Ctx) error {
	var req models.RSVPRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if t, _ := routeType(c); t != models.EventTypeWedding {
		return respondError(c, h.logger, models.ErrEventNotFound)
	}
	rsvp, err := h.eventService.AddRSVP(c.UserContext(), c.Params("url"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(rsvp, "RSVP recorded"))
}

func (h *PublicHandler) AddGuestbookEntry(c *fiber.Ctx) error {
	var req models.GuestbookRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if t, _ := routeType(c); t != models.EventTypeWedding {
		return respondError(c, h.logger, models.ErrEventNotFound)
	}
	entry, err := h.eventService.AddGuestbookEntry(c.UserContext(), c.Params("url"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(entry, "Guestbook entry added"))
}

func routeType(c *fiber.Ctx) (models.EventType, bool) {
	t := models.EventType(c.Params("type"))
	return t, t.Valid()
}
