package repository

import (
	"context"
	"errors"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
)

// KVEventRepository keeps every event in the "events" collection. Writes,
// view increments included, are atomic Collection.Update calls.
type KVEventRepository struct {
	events kvstore.Collection[models.Event]
}

func NewKVEventRepository(backend kvstore.Backend) *KVEventRepository {
	return &KVEventRepository{
		events: kvstore.NewCollection[models.Event](backend, kvstore.KeyEvents),
	}
}

func (r *KVEventRepository) Create(ctx context.Context, event *models.Event) error {
	err := r.events.Update(ctx, func(events []models.Event) ([]models.Event, error) {
		for _, e := range events {
			if e.URL == event.URL {
				return nil, models.ErrURLTaken
			}
		}
		return append(events, *event), nil
	})
	return storageError("create event", err)
}

func (r *KVEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return r.find(ctx, func(e *models.Event) bool { return e.ID == id })
}

func (r *KVEventRepository) GetByURL(ctx context.Context, url string) (*models.Event, error) {
	return r.find(ctx, func(e *models.Event) bool { return e.URL == url })
}

func (r *KVEventRepository) find(ctx context.Context, match func(*models.Event) bool) (*models.Event, error) {
	events, err := r.events.Read(ctx)
	if err != nil {
		return nil, storageError("read events", err)
	}
	for i := range events {
		if match(&events[i]) {
			return &events[i], nil
		}
	}
	return nil, models.ErrEventNotFound
}

func (r *KVEventRepository) URLExists(ctx context.Context, url string) (bool, error) {
	_, err := r.GetByURL(ctx, url)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, models.ErrEventNotFound):
		return false, nil
	default:
		return false, err
	}
}

// ListByUser returns the user's events in insertion order.
func (r *KVEventRepository) ListByUser(ctx context.Context, userID string) ([]models.Event, error) {
	events, err := r.events.Read(ctx)
	if err != nil {
		return nil, storageError("read events", err)
	}
	out := make([]models.Event, 0)
	for _, e := range events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Update applies mutate to a copy of the stored event. mutate may run
// again if the write is retried.
func (r *KVEventRepository) Update(ctx context.Context, id string, mutate func(*models.Event) error) (*models.Event, error) {
	var updated models.Event
	err := r.events.Update(ctx, func(events []models.Event) ([]models.Event, error) {
		for i := range events {
			if events[i].ID != id {
				continue
			}
			next := events[i]
			if err := mutate(&next); err != nil {
				return nil, err
			}
			events[i] = next
			updated = next
			return events, nil
		}
		return nil, models.ErrEventNotFound
	})
	if err != nil {
		return nil, storageError("update event", err)
	}
	return &updated, nil
}

// Delete is idempotent; a missing event writes nothing.
func (r *KVEventRepository) Delete(ctx context.Context, id string) error {
	err := r.events.Update(ctx, func(events []models.Event) ([]models.Event, error) {
		kept := events[:0]
		for _, e := range events {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(events) {
			return nil, kvstore.ErrUnchanged
		}
		return kept, nil
	})
	return storageError("delete event", err)
}

func (r *KVEventRepository) IncrementViews(ctx context.Context, id string) error {
	err := r.events.Update(ctx, func(events []models.Event) ([]models.Event, error) {
		for i := range events {
			if events[i].ID == id {
				events[i].Views++
				return events, nil
			}
		}
		return nil, kvstore.ErrUnchanged
	})
	return storageError("increment views", err)
}
