package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/maeum-backend/internal/metrics"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/utils"
	"go.uber.org/zap"
)

// slugAttempts bounds how many timestamps a generated url may try.
const slugAttempts = 5

type EventService struct {
	eventRepo EventRepository
	userRepo  UserRepository
	validator *utils.Validator
	mailer    Mailer
	metrics   *metrics.Metrics
	logger    *zap.Logger
	baseURL   string
	now       func() time.Time
}

func NewEventService(eventRepo EventRepository, userRepo UserRepository, validator *utils.Validator, mailer Mailer, m *metrics.Metrics, logger *zap.Logger, baseURL string) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		validator: validator,
		mailer:    mailer,
		metrics:   m,
		logger:    logger.Named("events"),
		baseURL:   strings.TrimRight(baseURL, "/"),
		now:       time.Now,
	}
}

// CreateEvent stores a new event owned by userID. Without an explicit url
// one is generated as "{type}-{title slug}-{base36 millis}".
func (s *EventService) CreateEvent(ctx context.Context, userID string, in models.EventInput) (*models.Event, error) {
	if userID == "" {
		return nil, models.ErrUnauthorized
	}
	if in.Type == "" {
		in.Type = models.EventTypeWedding
	}
	if !in.Type.Valid() {
		return nil, models.ValidationError("unknown event type %q", in.Type)
	}
	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if !in.Status.Valid() {
		return nil, models.ValidationError("unknown status %q", in.Status)
	}
	data := in.Data
	if data == nil {
		data, _ = models.NewEventData(in.Type)
	}
	if data.EventType() != in.Type {
		return nil, models.ValidationError("payload is %s, event is %s", data.EventType(), in.Type)
	}
	data.Normalize()

	now := timestamp(s.now)
	event := &models.Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      in.Type,
		Title:     strings.TrimSpace(in.Title),
		Date:      strings.TrimSpace(in.Date),
		Status:    in.Status,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if event.Title == "" {
		event.Title = data.DisplayTitle()
	}
	if event.Date == "" {
		event.Date = data.EventDate()
	}

	if in.URL != "" {
		if err := s.createWithURL(ctx, event, in.URL); err != nil {
			return nil, err
		}
	} else if err := s.createWithGeneratedURL(ctx, event, now); err != nil {
		return nil, err
	}

	s.metrics.EventCreated(string(event.Type))
	s.logger.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("url", event.URL),
	)
	if event.Status == models.StatusPublished {
		s.notifyPublished(event)
	}
	return event, nil
}

func (s *EventService) createWithURL(ctx context.Context, event *models.Event, url string) error {
	if !utils.IsSlug(url) {
		return models.ValidationError("url may only contain a-z, 0-9, 가-힣 and '-'")
	}
	exists, err := s.eventRepo.URLExists(ctx, url)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrURLTaken
	}
	event.URL = url
	return s.eventRepo.Create(ctx, event)
}

// createWithGeneratedURL moves the timestamp suffix forward one
// millisecond per collision.
func (s *EventService) createWithGeneratedURL(ctx context.Context, event *models.Event, at time.Time) error {
	var err error
	for i := 0; i < slugAttempts; i++ {
		event.URL = utils.GenerateSlug(string(event.Type), event.Title, at.Add(time.Duration(i)*time.Millisecond))
		var exists bool
		exists, err = s.eventRepo.URLExists(ctx, event.URL)
		if err != nil {
			return err
		}
		if exists {
			err = models.ErrURLTaken
			continue
		}
		err = s.eventRepo.Create(ctx, event)
		if !errors.Is(err, models.ErrURLTaken) {
			return err
		}
	}
	return err
}

func (s *EventService) GetUserEvents(ctx context.Context, userID string) ([]models.Event, error) {
	return s.eventRepo.ListByUser(ctx, userID)
}

// GetEventByID returns models.ErrEventNotFound for unknown ids.
func (s *EventService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) GetEventByURL(ctx context.Context, url string) (*models.Event, error) {
	return s.eventRepo.GetByURL(ctx, url)
}

// UpdateEvent merges upd into the event. Top-level fields are merged one
// by one; a non-nil Data replaces the previous payload entirely.
func (s *EventService) UpdateEvent(ctx context.Context, id string, upd models.EventUpdate) (*models.Event, error) {
	return s.update(ctx, id, upd, nil)
}

// UpdateOwnedEvent is UpdateEvent restricted to the event's owner.
func (s *EventService) UpdateOwnedEvent(ctx context.Context, userID, id string, upd models.EventUpdate) (*models.Event, error) {
	return s.update(ctx, id, upd, func(e *models.Event) error {
		if e.UserID != userID {
			return models.ErrForbidden
		}
		return nil
	})
}

func (s *EventService) update(ctx context.Context, id string, upd models.EventUpdate, guard func(*models.Event) error) (*models.Event, error) {
	var wasPublished bool
	updated, err := s.eventRepo.Update(ctx, id, func(e *models.Event) error {
		if guard != nil {
			if err := guard(e); err != nil {
				return err
			}
		}
		wasPublished = e.Status == models.StatusPublished
		return applyUpdate(e, upd, timestamp(s.now))
	})
	if err != nil {
		return nil, err
	}
	if !wasPublished && updated.Status == models.StatusPublished {
		s.notifyPublished(updated)
	}
	return updated, nil
}

func applyUpdate(e *models.Event, upd models.EventUpdate, now time.Time) error {
	if upd.Type != nil && *upd.Type != e.Type {
		return models.ValidationError("event type cannot change")
	}
	if upd.URL != nil && *upd.URL != e.URL {
		return models.ValidationError("event url cannot change")
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return models.ValidationError("unknown status %q", *upd.Status)
		}
		e.Status = *upd.Status
	}
	if upd.Title != nil {
		e.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Date != nil {
		e.Date = strings.TrimSpace(*upd.Date)
	}
	if upd.Data != nil {
		if upd.Data.EventType() != e.Type {
			return models.ValidationError("payload is %s, event is %s", upd.Data.EventType(), e.Type)
		}
		e.Data = upd.Data
	}
	if e.Data != nil {
		e.Data.Normalize()
	}
	e.UpdatedAt = now
	return nil
}

// DeleteEvent removes the event; unknown ids are not an error.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}

func (s *EventService) DeleteOwnedEvent(ctx context.Context, userID, id string) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.UserID != userID {
		return models.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("event deleted", zap.String("event_id", id))
	return nil
}

// IncrementViews adds one view. Unknown ids are ignored.
func (s *EventService) IncrementViews(ctx context.Context, id string) error {
	return s.eventRepo.IncrementViews(ctx, id)
}

// CheckUserOwnsEvent is false both for a missing event and for an event
// owned by someone else.
func (s *EventService) CheckUserOwnsEvent(ctx context.Context, userID, eventID string) (bool, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return event.UserID == userID, nil
}

// GetPublicEvent resolves /{type}/{url} for a visitor and counts the
// view. Drafts are only visible to their owner and are not counted.
func (s *EventService) GetPublicEvent(ctx context.Context, eventType models.EventType, url, viewerID string) (*models.Event, error) {
	event, err := s.publicEvent(ctx, eventType, url, viewerID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.StatusPublished {
		return event, nil
	}
	if err := s.eventRepo.IncrementViews(ctx, event.ID); err != nil {
		return nil, err
	}
	event.Views++
	s.metrics.EventViewed(string(event.Type))
	return event, nil
}

// FindPublicEvent resolves /{type}/{url} like GetPublicEvent without
// counting a view.
func (s *EventService) FindPublicEvent(ctx context.Context, eventType models.EventType, url, viewerID string) (*models.Event, error) {
	return s.publicEvent(ctx, eventType, url, viewerID)
}

func (s *EventService) publicEvent(ctx context.Context, eventType models.EventType, url, viewerID string) (*models.Event, error) {
	event, err := s.eventRepo.GetByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if eventType != "" && event.Type != eventType {
		return nil, models.ErrEventNotFound
	}
	if event.Status != models.StatusPublished && (viewerID == "" || viewerID != event.UserID) {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

// AddCondolence appends a visitor's message to a published funeral notice.
func (s *EventService) AddCondolence(ctx context.Context, url string, req models.CondolenceRequest) (*models.Condolence, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}
	condolence := models.Condolence{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: timestamp(s.now),
	}
	err := s.appendToPublished(ctx, models.EventTypeFuneral, url, func(data models.EventData) error {
		funeral := data.(*models.FuneralData)
		funeral.Condolences = append(funeral.Condolences, condolence)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &condolence, nil
}

// AddRSVP records an attendance reply while the invitation accepts them.
func (s *EventService) AddRSVP(ctx context.Context, url string, req models.RSVPRequest) (*models.RSVPResponse, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}
	now := timestamp(s.now)
	response := models.RSVPResponse{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Attending:  req.Attending,
		Companions: req.Companions,
		Message:    strings.TrimSpace(req.Message),
		CreatedAt:  now,
	}
	err := s.appendToPublished(ctx, models.EventTypeWedding, url, func(data models.EventData) error {
		wedding := data.(*models.WeddingData)
		if wedding.RSVP == nil || !wedding.RSVP.Enabled {
			return models.ValidationError("rsvp is not enabled for this event")
		}
		if deadlinePassed(wedding.RSVP.Deadline, now) {
			return models.ValidationError("rsvp deadline has passed")
		}
		wedding.RSVP.Responses = append(wedding.RSVP.Responses, response)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *EventService) AddGuestbookEntry(ctx context.Context, url string, req models.GuestbookRequest) (*models.GuestbookEntry, error) {
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}
	entry := models.GuestbookEntry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: timestamp(s.now),
	}
	err := s.appendToPublished(ctx, models.EventTypeWedding, url, func(data models.EventData) error {
		wedding := data.(*models.WeddingData)
		wedding.Guestbook = append(wedding.Guestbook, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// appendToPublished runs add on the payload of the published event at
// url, which must be of type t, then re-derives the payload counts.
func (s *EventService) appendToPublished(ctx context.Context, t models.EventType, url string, add func(models.EventData) error) error {
	event, err := s.publicEvent(ctx, t, url, "")
	if err != nil {
		return err
	}
	_, err = s.eventRepo.Update(ctx, event.ID, func(e *models.Event) error {
		if e.Data == nil || e.Data.EventType() != t {
			return models.ValidationError("event is not a %s", t)
		}
		if err := add(e.Data); err != nil {
			return err
		}
		e.Data.Normalize()
		return nil
	})
	return err
}

// deadlinePassed treats the deadline as inclusive of its whole day.
// Unparsable deadlines never close the form.
func deadlinePassed(deadline string, now time.Time) bool {
	if deadline == "" {
		return false
	}
	day, err := time.Parse(models.DateLayout, deadline)
	if err != nil {
		return false
	}
	return !now.Before(day.AddDate(0, 0, 1))
}

func (s *EventService) notifyPublished(event *models.Event) {
	if s.mailer == nil || s.userRepo == nil {
		return
	}
	link := PublicURL(s.baseURL, event)
	go func(userID, title string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		owner, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			s.logger.Warn("publish notice: owner lookup failed", zap.String("user_id", userID), zap.Error(err))
			return
		}
		if err := s.mailer.SendPublishedEmail(owner.Email, title, link); err != nil {
			s.logger.Warn("publish notice failed", zap.String("user_id", userID), zap.Error(err))
		}
	}(event.UserID, event.Title)
}
