package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface abstracts the object store holding rendered recap videos
// and thumbnails.
type StorageInterface interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) error
	UploadWithMetadata(ctx context.Context, key string, data io.Reader, contentType string, metadata map[string]string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	GetMetadata(ctx context.Context, key string) (map[string]string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	BucketName() string
}
