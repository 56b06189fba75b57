package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/storage"
	"github.com/sefazor/maeum-backend/pkg/utils"
	"go.uber.org/zap"
)

// MaxImageSize is the largest gallery upload accepted, in bytes.
const MaxImageSize = 10 * 1024 * 1024

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageUpload is one file taken from a multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type MediaService struct {
	eventRepo EventRepository
	storage   storage.ObjectStorage
	logger    *zap.Logger
}

// NewMediaService accepts a nil store; uploads then fail with
// ErrStorageUnavailable.
func NewMediaService(eventRepo EventRepository, store storage.ObjectStorage, logger *zap.Logger) *MediaService {
	return &MediaService{
		eventRepo: eventRepo,
		storage:   store,
		logger:    logger.Named("media"),
	}
}

// UploadImage stores a gallery image for an event the user owns and
// returns its public URL.
func (s *MediaService) UploadImage(ctx context.Context, userID, eventID string, file ImageUpload) (string, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	if event.UserID != userID {
		return "", models.ErrForbidden
	}

	contentType := strings.ToLower(strings.TrimSpace(file.ContentType))
	if !utils.IsSupportedImageType(contentType) {
		return "", models.ValidationError("unsupported image type %q", file.ContentType)
	}
	if file.Size > MaxImageSize {
		return "", models.ValidationError("image exceeds %d MB", MaxImageSize/(1024*1024))
	}
	if s.storage == nil {
		return "", fmt.Errorf("upload image: %w", models.ErrStorageUnavailable)
	}

	key := "events/" + event.ID + "/" + uuid.NewString() + imageExtension(file.Filename, contentType)
	if err := s.storage.Upload(ctx, key, file.Body, file.Size, contentType); err != nil {
		return "", fmt.Errorf("upload image: %w: %v", models.ErrStorageUnavailable, err)
	}
	s.logger.Info("image uploaded", zap.String("event_id", event.ID), zap.String("key", key))
	return s.storage.PublicURL(key), nil
}

func imageExtension(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return imageExtensions[contentType]
}
