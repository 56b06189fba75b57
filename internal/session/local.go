package session

import (
	"context"
	"errors"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
)

// LocalStore is the single-slot session of a local client: the current
// user snapshot and the token live under two separate keys.
type LocalStore struct {
	backend kvstore.Backend
	user    kvstore.Document[models.User]
}

func NewLocalStore(backend kvstore.Backend) *LocalStore {
	return &LocalStore{
		backend: backend,
		user:    kvstore.NewDocument[models.User](backend, kvstore.KeyCurrentUser),
	}
}

// Load hydrates the session. Either key missing means signed out.
func (s *LocalStore) Load(ctx context.Context) (*models.Session, error) {
	user, err := s.user.Load(ctx)
	if err != nil {
		return nil, err
	}
	token, err := s.backend.Get(ctx, kvstore.KeyAuthToken)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sess := &models.Session{User: user, Token: string(token)}
	if !sess.Valid() {
		return nil, nil
	}
	return sess, nil
}

func (s *LocalStore) Save(ctx context.Context, sess *models.Session) error {
	if err := s.user.Store(ctx, sess.User, 0); err != nil {
		return err
	}
	return s.backend.Set(ctx, kvstore.KeyAuthToken, []byte(sess.Token), 0)
}

func (s *LocalStore) Clear(ctx context.Context) error {
	if err := s.user.Remove(ctx); err != nil {
		return err
	}
	return s.backend.Delete(ctx, kvstore.KeyAuthToken)
}

// RefreshUser replaces the snapshot when the local slot holds user.
func (s *LocalStore) RefreshUser(ctx context.Context, user *models.User) error {
	current, err := s.user.Load(ctx)
	if err != nil || current == nil || current.ID != user.ID {
		return err
	}
	_, err = s.user.Replace(ctx, user)
	return err
}
