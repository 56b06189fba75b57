package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sefazor/maeum-backend/internal/models"
	"gorm.io/gorm"
)

type userRecord struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Phone        string
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (userRecord) TableName() string { return "users" }

func newUserRecord(u *models.StoredUser) *userRecord {
	return &userRecord{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *userRecord) model() *models.StoredUser {
	return &models.StoredUser{
		User: models.User{
			ID:        r.ID,
			Email:     r.Email,
			Name:      r.Name,
			Phone:     r.Phone,
			CreatedAt: r.CreatedAt.UTC(),
			UpdatedAt: r.UpdatedAt.UTC(),
		},
		PasswordHash: r.PasswordHash,
	}
}

type eventRecord struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"index;not null;type:varchar(36)"`
	Type      string    `gorm:"not null;type:varchar(16)"`
	Title     string    `gorm:"not null"`
	Date      string    `gorm:"type:varchar(32)"`
	URL       string    `gorm:"uniqueIndex;not null"`
	Views     int       `gorm:"not null;default:0"`
	Status    string    `gorm:"not null;default:'draft';type:varchar(16)"`
	Data      []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (eventRecord) TableName() string { return "events" }

func newEventRecord(e *models.Event) (*eventRecord, error) {
	data := []byte("{}")
	if e.Data != nil {
		b, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("encode event data: %w", err)
		}
		data = b
	}
	return &eventRecord{
		ID:        e.ID,
		UserID:    e.UserID,
		Type:      string(e.Type),
		Title:     e.Title,
		Date:      e.Date,
		URL:       e.URL,
		Views:     e.Views,
		Status:    string(e.Status),
		Data:      data,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

func (r *eventRecord) model() (*models.Event, error) {
	t := models.EventType(r.Type)
	data, err := models.DecodeEventData(t, r.Data)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", r.ID, err)
	}
	return &models.Event{
		ID:        r.ID,
		UserID:    r.UserID,
		Type:      t,
		Title:     r.Title,
		Date:      r.Date,
		URL:       r.URL,
		Views:     r.Views,
		Status:    models.EventStatus(r.Status),
		Data:      data,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}, nil
}

// Migrate creates or updates the relational schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRecord{}, &eventRecord{}); err != nil {
		return err
	}
	// e-mail uniqueness ignores case
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))").Error
}
