package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// DocumentRepository is the persistence contract for document metadata.
// Owner scoping works the same way as FolderRepository: unowned rows are
// indistinguishable from missing ones.
type DocumentRepository interface {
	// Create inserts a document, filling ID and UploadedAt. The storage
	// ref must already be committed to blob storage by the caller.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID returns ErrNotFound if missing or not owned.
	GetByID(ctx context.Context, id, ownerID string) (*models.Document, error)

	// ListByFolder returns documents directly inside the folder, ordered
	// by uploaded_at descending. A nil folderID selects root-level
	// documents only (not recursive).
	ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error)

	// ListByOwner returns every document the owner has, ordered by
	// uploaded_at descending.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error)

	// ListByFolderIDs returns documents located in any of the given
	// folders.
	ListByFolderIDs(ctx context.Context, ownerID string, folderIDs []string) ([]models.Document, error)

	// Update writes name and folder_id as a single conditioned update
	// (WHERE id AND owner_id). Returns ErrNotFound if missing or not
	// owned.
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes the metadata row as a conditioned delete.
	// Returns ErrNotFound if missing or not owned.
	Delete(ctx context.Context, id, ownerID string) error

	// DeleteByFolderIDs removes every document located in the given
	// folders and returns how many rows went away.
	DeleteByFolderIDs(ctx context.Context, ownerID string, folderIDs []string) (int64, error)
}
