package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	internalConfig "github.com/sefazor/maeum-backend/internal/config"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// CloudflareStorage talks to Cloudflare R2 through its S3 API.
type CloudflareStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

func NewCloudflareStorage(ctx context.Context, cfg internalConfig.R2Config, logger *zap.Logger) (*CloudflareStorage, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &CloudflareStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
	}, nil
}

// Upload puts body under key. When size is unknown (< 0) the body is
// buffered so R2 gets a Content-Length.
func (s *CloudflareStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if size < 0 {
		buf, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("failed to read file content: %w", err)
		}
		body = bytes.NewReader(buf)
		size = int64(len(buf))
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error("r2 upload failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to upload to R2: %w", err)
	}

	s.logger.Debug("r2 upload complete", zap.String("key", key), zap.Int64("size", size))
	return nil
}

func (s *CloudflareStorage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if _, err := s.client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

func (s *CloudflareStorage) PublicURL(key string) string {
	return s.publicURL + "/" + key
}
