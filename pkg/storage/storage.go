// Package storage holds the content store for generated QR images.
//
// Two drivers are available:
//   - "local" writes files under a root directory (default static/qr_codes)
//   - "s3"    writes objects into an S3-compatible bucket (AWS, MinIO, R2)
package storage

import (
	"context"
	"errors"
	"fmt"

	"go-inventory-qr/pkg/config"
)

// ErrNotExist is returned by Get when no object lives at the given name.
var ErrNotExist = errors.New("storage: object does not exist")

// Disk is implemented by every driver. Names are flat file names such as
// "qr_12.png"; drivers decide where they end up.
type Disk interface {
	// Put writes content under name, replacing any previous content.
	Put(ctx context.Context, name string, content []byte) error

	// Get returns the content stored under name, or ErrNotExist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Exists reports whether something is stored under name.
	Exists(ctx context.Context, name string) (bool, error)

	// Delete removes name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
}

// New builds the disk selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Disk, error) {
	switch cfg.Driver {
	case config.StorageLocal, "":
		return NewLocalDisk(cfg.LocalRoot)
	case config.StorageS3:
		return NewS3Disk(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
