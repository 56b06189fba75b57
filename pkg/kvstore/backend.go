// Package kvstore is the persistent key/value store behind the user,
// session and event collections. Values are JSON documents that are read
// and replaced whole.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Well known keys.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyAuthToken   = "authToken"
	KeyEvents      = "events"
)

var (
	ErrKeyNotFound = errors.New("kvstore: key not found")
	ErrUnavailable = errors.New("kvstore: backend unavailable")
	// ErrUnchanged is returned from an UpdateFunc to skip the write.
	ErrUnchanged = errors.New("kvstore: unchanged")
)

// UpdateFunc maps the current value to the next one. current is nil when
// the key is absent or expired. It may run more than once and must not
// call back into the backend.
type UpdateFunc func(current []byte) ([]byte, error)

// Backend is a flat byte-oriented key/value store.
type Backend interface {
	// Get returns ErrKeyNotFound when key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Update atomically replaces the value under key with fn's result,
	// across every process sharing the store. The key keeps its expiry; a
	// new key never expires. Errors from fn are returned unchanged, except
	// ErrUnchanged which makes Update a no-op.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
