package repository

import (
	"context"
	"errors"

	"github.com/sefazor/maeum-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository stores events in postgres. The payload lives in a
// jsonb column and is replaced whole on every save.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	rec, err := newEventRecord(event)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrURLTaken
	}
	return dbError("create event", err, nil)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EventRepository) GetByURL(ctx context.Context, url string) (*models.Event, error) {
	return r.first(ctx, "url = ?", url)
}

func (r *EventRepository) first(ctx context.Context, query string, arg string) (*models.Event, error) {
	var rec eventRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		return nil, dbError("get event", err, models.ErrEventNotFound)
	}
	return rec.model()
}

func (r *EventRepository) URLExists(ctx context.Context, url string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&eventRecord{}).Where("url = ?", url).Count(&count).Error
	if err != nil {
		return false, dbError("count events", err, nil)
	}
	return count > 0, nil
}

func (r *EventRepository) ListByUser(ctx context.Context, userID string) ([]models.Event, error) {
	var recs []eventRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, dbError("list events", err, nil)
	}
	events := make([]models.Event, 0, len(recs))
	for i := range recs {
		e, err := recs[i].model()
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, nil
}

// Update locks the row for the duration of mutate; concurrent writers are
// applied one after another, last writer wins.
func (r *EventRepository) Update(ctx context.Context, id string, mutate func(*models.Event) error) (*models.Event, error) {
	var updated *models.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec eventRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return dbError("lock event", err, models.ErrEventNotFound)
		}
		event, err := rec.model()
		if err != nil {
			return err
		}
		if err := mutate(event); err != nil {
			return err
		}
		next, err := newEventRecord(event)
		if err != nil {
			return err
		}
		// views is owned by IncrementViews
		err = tx.Model(&eventRecord{}).Where("id = ?", id).Select("title", "date", "status", "data", "updated_at").Updates(next).Error
		if err != nil {
			return dbError("save event", err, nil)
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Delete(&eventRecord{}, "id = ?", id).Error
	return dbError("delete event", err, nil)
}

// IncrementViews is a single atomic UPDATE; a missing id touches no rows.
func (r *EventRepository) IncrementViews(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Model(&eventRecord{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	return dbError("increment views", err, nil)
}
