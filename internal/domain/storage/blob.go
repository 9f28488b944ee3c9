package storage

import (
	"context"
	"io"
)

// BlobStore is the external object-storage collaborator. The core never
// interprets refs; it stores whatever handle Put returns and passes it
// back to Open and Delete.
type BlobStore interface {
	// Put writes the content under the suggested key and returns the
	// handle to retrieve or delete it later.
	Put(ctx context.Context, key string, r io.Reader) (string, error)

	// Open streams the blob back. Size is -1 when unknown.
	Open(ctx context.Context, ref string) (io.ReadCloser, int64, error)

	// Delete removes the blob. Deleting a ref that is already gone is
	// not an error.
	Delete(ctx context.Context, ref string) error
}
