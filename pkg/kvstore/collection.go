package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Collection is a JSON array of T stored under one key. Reads return the
// whole sequence, writes replace it.
type Collection[T any] struct {
	backend Backend
	key     string
}

func NewCollection[T any](backend Backend, key string) Collection[T] {
	return Collection[T]{backend: backend, key: key}
}

// Read returns the stored records; a missing or empty value reads as an
// empty slice.
func (c Collection[T]) Read(ctx context.Context) ([]T, error) {
	raw, err := c.backend.Get(ctx, c.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	return c.decode(raw)
}

func (c Collection[T]) decode(raw []byte) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c Collection[T]) Write(ctx context.Context, items []T) error {
	raw, err := c.encode(items)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, c.key, raw, 0)
}

func (c Collection[T]) encode(items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.key, err)
	}
	return raw, nil
}

// Update replaces the records with fn's result as one atomic step. fn gets
// a freshly decoded slice on every attempt; returning ErrUnchanged skips
// the write.
func (c Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return c.backend.Update(ctx, c.key, func(raw []byte) ([]byte, error) {
		items, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		return c.encode(next)
	})
}

// Document is a single JSON value stored under one key.
type Document[T any] struct {
	backend Backend
	key     string
}

func NewDocument[T any](backend Backend, key string) Document[T] {
	return Document[T]{backend: backend, key: key}
}

// Load returns nil, nil when the key is absent.
func (d Document[T]) Load(ctx context.Context) (*T, error) {
	raw, err := d.backend.Get(ctx, d.key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.key, err)
	}
	return &v, nil
}

func (d Document[T]) Store(ctx context.Context, v *T, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.key, err)
	}
	return d.backend.Set(ctx, d.key, raw, ttl)
}

// Replace overwrites an existing value and keeps its expiry. It reports
// false, writing nothing, when the key is absent or expired.
func (d Document[T]) Replace(ctx context.Context, v *T) (bool, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", d.key, err)
	}
	replaced := false
	err = d.backend.Update(ctx, d.key, func(current []byte) ([]byte, error) {
		replaced = current != nil
		if !replaced {
			return nil, ErrUnchanged
		}
		return raw, nil
	})
	if err != nil {
		return false, err
	}
	return replaced, nil
}

func (d Document[T]) Remove(ctx context.Context) error {
	return d.backend.Delete(ctx, d.key)
}
