package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"docvault/internal/domain"
	"docvault/internal/domain/storage"
)

// BlobCoordinator sequences blob-store calls against metadata
// mutations. It owns the failure policy: an orphaned blob is acceptable
// residual garbage, a metadata row pointing at nothing is not.
type BlobCoordinator struct {
	store  storage.BlobStore
	logger *slog.Logger
}

// NewBlobCoordinator creates a new blob coordinator.
func NewBlobCoordinator(store storage.BlobStore, logger *slog.Logger) *BlobCoordinator {
	return &BlobCoordinator{
		store:  store,
		logger: logger,
	}
}

// Upload writes the content and returns the storage ref. Failures are
// wrapped in ErrStorage so the boundary can tell blob errors from
// metadata errors.
func (c *BlobCoordinator) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	ref, err := c.store.Put(ctx, key, r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return ref, nil
}

// Compensate deletes a blob that was written before a later step
// failed. Best effort: a failure here is logged and dropped so the
// original error stays visible to the caller.
func (c *BlobCoordinator) Compensate(ctx context.Context, ref string) {
	if err := c.store.Delete(ctx, ref); err != nil {
		c.logger.Warn("compensating blob delete failed",
			"ref", ref,
			"error", err,
		)
	}
}

// Remove deletes a blob after its metadata row is already gone.
// Metadata is the source of truth for existence, so failures are
// swallowed and logged.
func (c *BlobCoordinator) Remove(ctx context.Context, ref string) {
	if err := c.store.Delete(ctx, ref); err != nil {
		c.logger.Warn("blob delete failed, leaving stray blob",
			"ref", ref,
			"error", err,
		)
	}
}

// Purge deletes a batch of blobs after a cascading metadata delete has
// committed. Each deletion is independent; failed refs are returned
// for an out-of-band sweep, never rolled back.
func (c *BlobCoordinator) Purge(ctx context.Context, refs []string) (failed []string) {
	for _, ref := range refs {
		if err := c.store.Delete(ctx, ref); err != nil {
			c.logger.Warn("blob purge failed",
				"ref", ref,
				"error", err,
			)
			failed = append(failed, ref)
		}
	}
	return failed
}

// Open streams a blob back.
func (c *BlobCoordinator) Open(ctx context.Context, ref string) (io.ReadCloser, int64, error) {
	rc, size, err := c.store.Open(ctx, ref)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return rc, size, nil
}
