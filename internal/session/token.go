package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
)

// TokenStore keeps one session record per issued token, keyed by the
// token's SHA-256 so raw tokens are never stored.
type TokenStore struct {
	backend kvstore.Backend
	ttl     time.Duration
	token   string
}

// NewTokenStore binds a store to token. An empty token is a fresh,
// signed-out request; Save adopts the token of the saved session.
func NewTokenStore(backend kvstore.Backend, ttl time.Duration, token string) *TokenStore {
	return &TokenStore{backend: backend, ttl: ttl, token: token}
}

func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}

// userSessions indexes the session keys issued to one user.
func userSessions(backend kvstore.Backend, userID string) kvstore.Collection[string] {
	return kvstore.NewCollection[string](backend, "sessions:user:"+userID)
}

// Token returns the token the store is currently bound to.
func (s *TokenStore) Token() string { return s.token }

func (s *TokenStore) doc() kvstore.Document[models.User] {
	return kvstore.NewDocument[models.User](s.backend, sessionKey(s.token))
}

func (s *TokenStore) Load(ctx context.Context) (*models.Session, error) {
	if s.token == "" {
		return nil, nil
	}
	user, err := s.doc().Load(ctx)
	if err != nil || user == nil {
		return nil, err
	}
	return &models.Session{User: user, Token: s.token}, nil
}

func (s *TokenStore) Save(ctx context.Context, sess *models.Session) error {
	s.token = sess.Token
	if err := s.doc().Store(ctx, sess.User, s.ttl); err != nil {
		return err
	}
	key := sessionKey(s.token)
	return userSessions(s.backend, sess.User.ID).Update(ctx, func(keys []string) ([]string, error) {
		if slices.Contains(keys, key) {
			return nil, kvstore.ErrUnchanged
		}
		return append(keys, key), nil
	})
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if s.token == "" {
		return nil
	}
	user, err := s.doc().Load(ctx)
	if err != nil {
		return err
	}
	if err := s.doc().Remove(ctx); err != nil {
		return err
	}
	if user != nil {
		if err := forget(ctx, s.backend, user.ID, sessionKey(s.token)); err != nil {
			return err
		}
	}
	s.token = ""
	return nil
}

// RefreshUser rewrites every live session of user, whichever token this
// store is bound to. Sessions that expired are dropped from the index.
func (s *TokenStore) RefreshUser(ctx context.Context, user *models.User) error {
	keys, err := userSessions(s.backend, user.ID).Read(ctx)
	if err != nil {
		return err
	}
	var stale []string
	for _, key := range keys {
		ok, err := kvstore.NewDocument[models.User](s.backend, key).Replace(ctx, user)
		if err != nil {
			return err
		}
		if !ok {
			stale = append(stale, key)
		}
	}
	return forget(ctx, s.backend, user.ID, stale...)
}

func forget(ctx context.Context, backend kvstore.Backend, userID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return userSessions(backend, userID).Update(ctx, func(indexed []string) ([]string, error) {
		kept := slices.DeleteFunc(indexed, func(k string) bool { return slices.Contains(keys, k) })
		if len(kept) == len(indexed) {
			return nil, kvstore.ErrUnchanged
		}
		return kept, nil
	})
}

// Sessions opens TokenStores over a shared backend, one per request.
type Sessions struct {
	backend kvstore.Backend
	ttl     time.Duration
}

func NewSessions(backend kvstore.Backend, ttl time.Duration) *Sessions {
	return &Sessions{backend: backend, ttl: ttl}
}

// Open binds a store to token; "" opens a signed-out store.
func (s *Sessions) Open(token string) *TokenStore {
	return NewTokenStore(s.backend, s.ttl, token)
}
