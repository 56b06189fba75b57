package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/maeum-backend/internal/middleware"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/service"
	"github.com/sefazor/maeum-backend/pkg/utils"
	"go.uber.org/zap"
)

type EventHandler struct {
	eventService *service.EventService
	shareService *service.ShareService
	mediaService *service.MediaService
	validator    *utils.Validator
	logger       *zap.Logger
}

func NewEventHandler(
	eventService *service.EventService,
	shareService *service.ShareService,
	mediaService *service.MediaService,
	validator *utils.Validator,
	logger *zap.Logger,
) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		shareService: shareService,
		mediaService: mediaService,
		validator:    validator,
		logger:       logger.Named("event-handler"),
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, models.ValidationError("%s", utils.ValidationMessage(err)))
	}

	in, err := req.Input()
	if err != nil {
		return respondError(c, h.logger, err)
	}

	event, err := h.eventService.CreateEvent(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) GetUserEvents(c *fiber.Ctx) error {
	events, err := h.eventService.GetUserEvents(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.ownedEvent(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(event, ""))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	var req models.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, models.ValidationError("%s", utils.ValidationMessage(err)))
	}

	// The payload is decoded against the stored type, so look it up first.
	current, err := h.ownedEvent(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	upd, err := req.Update(current.Type)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	event, err := h.eventService.UpdateOwnedEvent(c.UserContext(), middleware.UserID(c), current.ID, upd)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.eventService.DeleteOwnedEvent(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Event deleted successfully"))
}

func (h *EventHandler) GetShareLinks(c *fiber.Ctx) error {
	event, err := h.ownedEvent(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(h.shareService.Links(event), ""))
}

// UploadImage accepts one multipart "image" file for the event gallery.
func (h *EventHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("image file is required"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	defer f.Close()

	url, err := h.mediaService.UploadImage(c.UserContext(), middleware.UserID(c), c.Params("id"), service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(fiber.Map{"url": url}, "Image uploaded successfully"))
}

func (h *EventHandler) ownedEvent(c *fiber.Ctx) (*models.Event, error) {
	event, err := h.eventService.GetEventByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if event.UserID != middleware.UserID(c) {
		return nil, models.ErrForbidden
	}
	return event, nil
}
