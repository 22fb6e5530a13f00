package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"hancock/internal/config"
)

// Package storage reads document payloads from S3-compatible object stores.
// Objects are streamed; nothing is written to local disk.

// ErrUnknownDriver is returned by New for an unsupported STORAGE_DRIVER value.
var ErrUnknownDriver = errors.New("unknown storage driver")

// ErrObjectNotFound is returned by Get when the key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is a read-only object store client.
type Storage interface {
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}

// New builds the store selected by cfg.Driver. An empty driver returns a nil Storage and
// no error; documents can then only come from files, inline data or uploads.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "minio":
		return NewMinIO(ctx, cfg.MinIO)
	case "s3":
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// ObjectSource is a document payload held in object storage under Key.
type ObjectSource struct {
	Store Storage
	Key   string
}

func (o ObjectSource) Name() string { return path.Base(o.Key) }

func (o ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if o.Store == nil {
		return nil, fmt.Errorf("object %q: no object storage configured", o.Key)
	}
	rc, _, err := o.Store.Get(ctx, o.Key)
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", o.Key, err)
	}
	return rc, nil
}
