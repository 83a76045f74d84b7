package storage

import (
	"fmt"

	"github.com/recapio/recapio/internal/config"
)

// NewStorage creates the configured storage backend. S3 is the only backend
// today; the factory keeps callers off the concrete type.
func NewStorage(cfg *config.S3Config) (StorageInterface, error) {
	s3Storage, err := NewS3Storage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 storage: %w", err)
	}
	return s3Storage, nil
}
