package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteUpsert = `INSERT INTO kv (key, value, expires_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
)`

// SQLiteBackend persists values in a single-table SQLite file. It is the
// on-disk stand-in for browser local storage.
type SQLiteBackend struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the key/value file at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Cross-process ordering comes from BEGIN IMMEDIATE in Update; one
	// connection keeps this process from contending with itself.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLiteBackend{db: db, now: time.Now}, nil
}

func (s *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		value     []byte
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT value, expires_at FROM kv WHERE key = ?`, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, unavailable("get", err)
	}
	if s.expired(expiresAt) {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
			return nil, unavailable("expire", err)
		}
		return nil, ErrKeyNotFound
	}
	return value, nil
}

func (s *SQLiteBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixMilli()
	}
	if _, err := s.db.ExecContext(ctx, sqliteUpsert, key, value, expiresAt); err != nil {
		return unavailable("set", err)
	}
	return nil
}

// Update runs fn inside a BEGIN IMMEDIATE transaction, which takes the
// database write lock up front. Other connections, in this process or
// another, wait up to busy_timeout for it.
func (s *SQLiteBackend) Update(ctx context.Context, key string, fn UpdateFunc) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return unavailable("update conn", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return unavailable("update begin", err)
	}
	committed := false
	defer func() {
		if !committed {
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	var (
		current   []byte
		expiresAt int64
	)
	err = conn.QueryRowContext(ctx, `SELECT value, expires_at FROM kv WHERE key = ?`, key).Scan(&current, &expiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		current = nil
	case err != nil:
		return unavailable("update read", err)
	case s.expired(expiresAt):
		current, expiresAt = nil, 0
	}

	next, err := fn(current)
	if errors.Is(err, ErrUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, sqliteUpsert, key, next, expiresAt); err != nil {
		return unavailable("update write", err)
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return unavailable("update commit", err)
	}
	committed = true
	return nil
}

func (s *SQLiteBackend) expired(expiresAt int64) bool {
	return expiresAt > 0 && s.now().UnixMilli() >= expiresAt
}

func (s *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return unavailable("delete", err)
	}
	return nil
}

func (s *SQLiteBackend) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
