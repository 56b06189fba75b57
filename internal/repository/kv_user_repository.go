package repository

import (
	"context"
	"strings"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
)

// KVUserRepository keeps every user in the "users" collection. Writes go
// through Collection.Update, so they stay atomic when several processes
// share the backend.
type KVUserRepository struct {
	users kvstore.Collection[models.StoredUser]
}

func NewKVUserRepository(backend kvstore.Backend) *KVUserRepository {
	return &KVUserRepository{
		users: kvstore.NewCollection[models.StoredUser](backend, kvstore.KeyUsers),
	}
}

func (r *KVUserRepository) Create(ctx context.Context, user *models.StoredUser) error {
	err := r.users.Update(ctx, func(users []models.StoredUser) ([]models.StoredUser, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, user.Email) {
				return nil, models.ErrDuplicateEmail
			}
		}
		return append(users, *user), nil
	})
	return storageError("create user", err)
}

func (r *KVUserRepository) GetByID(ctx context.Context, id string) (*models.StoredUser, error) {
	return r.find(ctx, func(u *models.StoredUser) bool { return u.ID == id })
}

func (r *KVUserRepository) GetByEmail(ctx context.Context, email string) (*models.StoredUser, error) {
	return r.find(ctx, func(u *models.StoredUser) bool { return strings.EqualFold(u.Email, email) })
}

func (r *KVUserRepository) find(ctx context.Context, match func(*models.StoredUser) bool) (*models.StoredUser, error) {
	users, err := r.users.Read(ctx)
	if err != nil {
		return nil, storageError("read users", err)
	}
	for i := range users {
		if match(&users[i]) {
			return &users[i], nil
		}
	}
	return nil, models.ErrUserNotFound
}

// Update applies mutate to a copy of the stored user. mutate may run again
// if the write is retried.
func (r *KVUserRepository) Update(ctx context.Context, id string, mutate func(*models.StoredUser) error) (*models.StoredUser, error) {
	var updated models.StoredUser
	err := r.users.Update(ctx, func(users []models.StoredUser) ([]models.StoredUser, error) {
		idx := -1
		for i := range users {
			if users[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, models.ErrUserNotFound
		}

		next := users[idx]
		if err := mutate(&next); err != nil {
			return nil, err
		}
		for i := range users {
			if i != idx && strings.EqualFold(users[i].Email, next.Email) {
				return nil, models.ErrDuplicateEmail
			}
		}
		users[idx] = next
		updated = next
		return users, nil
	})
	if err != nil {
		return nil, storageError("update user", err)
	}
	return &updated, nil
}
