package storage

import (
	"context"
	"io"
)

// MediaStorage abstracts where visit media files live. The mock
// implementation uses the local filesystem; a cloud backend can be swapped
// in without touching the services.
type MediaStorage interface {
	// Save writes the file under key and returns the number of bytes stored.
	Save(ctx context.Context, key string, reader io.Reader) (int64, error)

	// Open returns a reader for the stored file.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file from storage.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a file exists and returns its size.
	Exists(ctx context.Context, key string) (bool, int64, error)
}
