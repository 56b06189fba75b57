package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores values in Redis, optionally under a key prefix so
// several deployments can share one instance.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects using a redis:// URL.
func OpenRedis(ctx context.Context, url, prefix string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, unavailable("ping", err)
	}
	return NewRedisBackend(client, prefix), nil
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (r *RedisBackend) key(k string) string {
	return r.prefix + k
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, unavailable("get", err)
	}
	return value, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return unavailable("set", err)
	}
	return nil
}

// maxUpdateAttempts bounds optimistic retries when the watched key keeps
// changing under Update.
const maxUpdateAttempts = 32

// ErrContended is returned when Update loses every optimistic retry.
var ErrContended = errors.New("kvstore: too much contention on key")

// Update is an optimistic WATCH/MULTI transaction, retried while another
// client changes the key between the read and the write.
func (r *RedisBackend) Update(ctx context.Context, key string, fn UpdateFunc) error {
	k := r.key(key)
	var fnErr error
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, next, redis.KeepTTL)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		fnErr = nil
		err := r.client.Watch(ctx, txf, k)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case fnErr != nil:
			if errors.Is(fnErr, ErrUnchanged) {
				return nil
			}
			return fnErr
		default:
			return unavailable("update", err)
		}
	}
	return unavailable("update", ErrContended)
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return unavailable("delete", err)
	}
	return nil
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
