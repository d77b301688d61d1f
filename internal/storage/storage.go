package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/config"
)

// ErrObjectNotFound is returned by GetObject when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo represents metadata for a stored object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal key/value blob operations the model
// artifact store needs. Keys are flat names such as "product_42.json".
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, data []byte) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// New builds the artifact backend selected by cfg.Backend ("fs" or "s3").
func New(ctx context.Context, cfg config.ArtifactConfig) (ObjectStorage, error) {
	switch cfg.Backend {
	case "", "fs":
		local, err := NewLocalStorage(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "s3":
		s3, err := NewS3Client(ctx, S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Prefix:    cfg.S3Prefix,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unknown artifact backend %q", cfg.Backend)
	}
}
