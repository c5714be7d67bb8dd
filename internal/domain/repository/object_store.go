package repository

import (
	"context"
	"io"
)

// ObjectStore defines the interface for reading inputs from and publishing
// reports to object storage.
type ObjectStore interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
	Upload(ctx context.Context, localPath, uri string) error
	AccountID(ctx context.Context) (string, error)
}
