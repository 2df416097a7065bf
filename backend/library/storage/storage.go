// Package storage holds the bytes of uploaded files and their QR images.
// Objects are addressed by a flat name; no directories are involved.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"qrdrop/backend/common"
)

var (
	ErrNotExist    = errors.New("object does not exist")
	ErrExist       = errors.New("object already exists")
	ErrInvalidName = errors.New("invalid object name")
)

// Object is an open stored object. Callers must close it.
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

type Storage interface {
	// Save writes r under name. It fails with ErrExist if name is taken.
	// size may be -1 when unknown.
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	// Rename moves oldName to newName, failing with ErrExist if newName is taken.
	Rename(ctx context.Context, oldName, newName string) error
	Remove(ctx context.Context, name string) error
	Open(ctx context.Context, name string) (*Object, error)
	Driver() string
}

// New builds the storage selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *common.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case common.StorageDriverDisk:
		return NewDisk(cfg.UploadPath)
	case common.StorageDriverMinio:
		return NewMinio(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func checkName(name string) error {
	if !common.ValidFilename(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
