package core

import (
	"context"
	"errors"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is an opaque key-value store holding whole serialized documents.
type BlobStore interface {
	// Get returns ErrBlobNotFound when nothing was ever saved under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Close() error
}
