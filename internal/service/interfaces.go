package service

import (
	"context"

	"github.com/sefazor/maeum-backend/internal/models"
)

// UserRepository is implemented by the key/value and the postgres stores.
type UserRepository interface {
	Create(ctx context.Context, user *models.StoredUser) error
	GetByID(ctx context.Context, id string) (*models.StoredUser, error)
	GetByEmail(ctx context.Context, email string) (*models.StoredUser, error)
	// Update applies mutate to the stored record under the store's lock.
	Update(ctx context.Context, id string, mutate func(*models.StoredUser) error) (*models.StoredUser, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetByURL(ctx context.Context, url string) (*models.Event, error)
	URLExists(ctx context.Context, url string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Event, error)
	Update(ctx context.Context, id string, mutate func(*models.Event) error) (*models.Event, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	// IncrementViews adds one atomically; unknown ids are ignored.
	IncrementViews(ctx context.Context, id string) error
}

// Mailer sends transactional mail. *email.EmailService implements it.
type Mailer interface {
	SendWelcomeEmail(email, name string) error
	SendPublishedEmail(email, title, link string) error
}
