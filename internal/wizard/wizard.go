// Package wizard drives the multi-step wedding and funeral forms. A
// Wizard owns one draft payload, walks its steps in order and saves the
// draft through the event service on the last step.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/session"
)

var (
	ErrFirstStep   = errors.New("already at the first step")
	ErrLastStep    = errors.New("already at the last step")
	ErrNotLastStep = errors.New("save is only available on the last step")
)

// EventSaver is the slice of the event service a wizard needs.
type EventSaver interface {
	CreateEvent(ctx context.Context, userID string, in models.EventInput) (*models.Event, error)
	UpdateOwnedEvent(ctx context.Context, userID, id string, upd models.EventUpdate) (*models.Event, error)
}

// Field is one input of a step. Set parses raw user input into the draft.
type Field[D models.EventData] struct {
	Label string
	Get   func(D) string
	Set   func(D, string) error
}

type Step[D models.EventData] struct {
	Title  string
	Fields []Field[D]
}

type Wizard[D models.EventData] struct {
	eventType models.EventType
	steps     []Step[D]
	step      int
	draft     D
	eventID   string
	saver     EventSaver
}

func newWizard[D models.EventData](t models.EventType, steps []Step[D], draft D, saver EventSaver) *Wizard[D] {
	return &Wizard[D]{
		eventType: t,
		steps:     steps,
		step:      1,
		draft:     draft,
		saver:     saver,
	}
}

// Load switches the wizard to edit mode for event.
func (w *Wizard[D]) Load(event *models.Event) error {
	if event.Type != w.eventType {
		return models.ValidationError("cannot edit a %s with the %s form", event.Type, w.eventType)
	}
	draft, ok := event.Data.(D)
	if !ok {
		return models.ValidationError("event %s has no %s payload", event.ID, w.eventType)
	}
	w.draft = draft
	w.eventID = event.ID
	w.step = 1
	return nil
}

func (w *Wizard[D]) Type() models.EventType { return w.eventType }

// Step is the current 1-based position.
func (w *Wizard[D]) Step() int { return w.step }

func (w *Wizard[D]) Steps() []Step[D] { return w.steps }

func (w *Wizard[D]) Current() Step[D] { return w.steps[w.step-1] }

func (w *Wizard[D]) Draft() D { return w.draft }

// EventID is empty until the draft has been saved or loaded.
func (w *Wizard[D]) EventID() string { return w.eventID }

func (w *Wizard[D]) IsLast() bool { return w.step == len(w.steps) }

func (w *Wizard[D]) Next() error {
	if w.IsLast() {
		return ErrLastStep
	}
	w.step++
	return nil
}

func (w *Wizard[D]) Prev() error {
	if w.step == 1 {
		return ErrFirstStep
	}
	w.step--
	return nil
}

// Save publishes the draft for the user signed in on sess. It creates the
// event the first time and updates it afterwards. On error the wizard
// stays where it is.
func (w *Wizard[D]) Save(ctx context.Context, sess session.Store) (*models.Event, error) {
	if !w.IsLast() {
		return nil, ErrNotLastStep
	}
	current, err := sess.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !current.Valid() {
		return nil, models.ErrUnauthorized
	}

	w.draft.Normalize()
	title := w.draft.DisplayTitle()
	date := w.draft.EventDate()
	status := models.StatusPublished

	var event *models.Event
	if w.eventID == "" {
		event, err = w.saver.CreateEvent(ctx, current.User.ID, models.EventInput{
			Type:   w.eventType,
			Title:  title,
			Date:   date,
			Status: status,
			Data:   w.draft,
		})
	} else {
		event, err = w.saver.UpdateOwnedEvent(ctx, current.User.ID, w.eventID, models.EventUpdate{
			Title:  &title,
			Date:   &date,
			Status: &status,
			Data:   w.draft,
		})
	}
	if err != nil {
		return nil, err
	}
	w.eventID = event.ID
	return event, nil
}
