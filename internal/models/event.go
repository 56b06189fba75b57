package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type EventType string

const (
	EventTypeWedding EventType = "wedding"
	EventTypeFuneral EventType = "funeral"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeWedding, EventTypeFuneral:
		return true
	}
	return false
}

type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
)

func (s EventStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// EventData is the type specific payload of an Event. The set of
// implementations is closed: *WeddingData and *FuneralData.
type EventData interface {
	EventType() EventType
	// DisplayTitle derives the envelope title from the payload.
	DisplayTitle() string
	// EventDate is the date the event takes place on, as entered.
	EventDate() string
	// Normalize recomputes derived fields in place.
	Normalize()
	isEventData()
}

// Event is the persisted document for one invitation or notice.
type Event struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Type      EventType   `json:"type"`
	Title     string      `json:"title"`
	Date      string      `json:"date"`
	URL       string      `json:"url"`
	Views     int         `json:"views"`
	Status    EventStatus `json:"status"`
	Data      EventData   `json:"data"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type eventJSON struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Type      EventType       `json:"type"`
	Title     string          `json:"title"`
	Date      string          `json:"date"`
	URL       string          `json:"url"`
	Views     int             `json:"views"`
	Status    EventStatus     `json:"status"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	data := []byte("null")
	if e.Data != nil {
		if e.Data.EventType() != e.Type {
			return nil, fmt.Errorf("event %s: payload type %q does not match %q", e.ID, e.Data.EventType(), e.Type)
		}
		b, err := json.Marshal(e.Data)
		if err != nil {
			return nil, err
		}
		data = b
	}
	return json.Marshal(eventJSON{
		ID:        e.ID,
		UserID:    e.UserID,
		Type:      e.Type,
		Title:     e.Title,
		Date:      e.Date,
		URL:       e.URL,
		Views:     e.Views,
		Status:    e.Status,
		Data:      data,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	})
}

func (e *Event) UnmarshalJSON(b []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	data, err := DecodeEventData(raw.Type, raw.Data)
	if err != nil {
		return err
	}
	*e = Event{
		ID:        raw.ID,
		UserID:    raw.UserID,
		Type:      raw.Type,
		Title:     raw.Title,
		Date:      raw.Date,
		URL:       raw.URL,
		Views:     raw.Views,
		Status:    raw.Status,
		Data:      data,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
	return nil
}

// NewEventData returns an empty payload for t.
func NewEventData(t EventType) (EventData, error) {
	switch t {
	case EventTypeWedding:
		return &WeddingData{}, nil
	case EventTypeFuneral:
		return &FuneralData{}, nil
	}
	return nil, ValidationError("unknown event type %q", t)
}

// DecodeEventData decodes raw into the payload type selected by t. An
// empty or null payload yields an empty payload of that type.
func DecodeEventData(t EventType, raw json.RawMessage) (EventData, error) {
	data, err := NewEventData(t)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return data, nil
	}
	if err := json.Unmarshal(trimmed, data); err != nil {
		return nil, ValidationError("invalid %s payload: %v", t, err)
	}
	return data, nil
}

// CreateEventRequest is the wire form of a new event. Data is decoded
// according to Type.
type CreateEventRequest struct {
	Type   EventType       `json:"type" validate:"omitempty,oneof=wedding funeral"`
	Title  string          `json:"title"`
	Date   string          `json:"date"`
	URL    string          `json:"url"`
	Status EventStatus     `json:"status" validate:"omitempty,oneof=draft published"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Input converts the request into a typed EventInput. A missing type
// defaults to wedding.
func (r CreateEventRequest) Input() (EventInput, error) {
	t := r.Type
	if t == "" {
		t = EventTypeWedding
	}
	data, err := DecodeEventData(t, r.Data)
	if err != nil {
		return EventInput{}, err
	}
	return EventInput{
		Type:   t,
		Title:  r.Title,
		Date:   r.Date,
		URL:    r.URL,
		Status: r.Status,
		Data:   data,
	}, nil
}

// UpdateEventRequest is a partial update. Absent fields are left
// untouched; a present data object replaces the whole payload.
type UpdateEventRequest struct {
	Type   *EventType      `json:"type,omitempty"`
	Title  *string         `json:"title,omitempty"`
	Date   *string         `json:"date,omitempty"`
	URL    *string         `json:"url,omitempty"`
	Status *EventStatus    `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Update converts the request for an event of type t.
func (r UpdateEventRequest) Update(t EventType) (EventUpdate, error) {
	u := EventUpdate{
		Type:   r.Type,
		Title:  r.Title,
		Date:   r.Date,
		URL:    r.URL,
		Status: r.Status,
	}
	if len(bytes.TrimSpace(r.Data)) > 0 {
		data, err := DecodeEventData(t, r.Data)
		if err != nil {
			return EventUpdate{}, err
		}
		u.Data = data
	}
	return u, nil
}

// EventInput carries the caller supplied fields of a new event.
type EventInput struct {
	Type   EventType
	Title  string
	Date   string
	URL    string
	Status EventStatus
	Data   EventData
}

// EventUpdate is a shallow patch over an Event. Data, when non-nil,
// replaces the previous payload entirely.
type EventUpdate struct {
	Type   *EventType
	Title  *string
	Date   *string
	URL    *string
	Status *EventStatus
	Data   EventData
}
