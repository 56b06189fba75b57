package storage

import (
	"context"
	"io"
)

// ObjectStorage stores gallery images and serves them from a public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
