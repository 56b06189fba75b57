// Package session holds the "who is signed in" state. A Store is handed
// to the identity service explicitly instead of living in a global.
package session

import (
	"context"

	"github.com/sefazor/maeum-backend/internal/models"
)

// Store persists one session.
type Store interface {
	// Load returns nil, nil when there is no valid session.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	// Clear is idempotent.
	Clear(ctx context.Context) error
	// RefreshUser rewrites the user snapshot of every live session the
	// store can reach that belongs to user.ID. Expiries are unchanged.
	RefreshUser(ctx context.Context, user *models.User) error
}
