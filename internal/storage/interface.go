package storage

import (
	"context"
	"io"
)

// ObjectStorage is the export target for meme images and collection snapshots.
type ObjectStorage interface {
	// Upload writes an object. size may be -1 when unknown.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetURL returns where the object can be reached: a public URL for
	// buckets, a file path for local storage.
	GetURL(key string) string

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// EnsureBucket prepares the destination (bucket or directory).
	EnsureBucket(ctx context.Context) error
}
