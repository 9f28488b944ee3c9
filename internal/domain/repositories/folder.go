package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// FolderRepository is the persistence contract for the folder tree.
// Every method is owner-scoped: a folder that exists but belongs to a
// different owner behaves exactly like a missing folder (ErrNotFound).
type FolderRepository interface {
	// Create inserts a folder, filling ID and CreatedAt.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID returns ErrNotFound if missing or not owned.
	GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// Rename updates the name as a single conditioned update
	// (WHERE id AND owner_id) and returns the updated row.
	// Returns ErrNotFound if missing or not owned.
	Rename(ctx context.Context, id, ownerID, name string) (*models.Folder, error)

	// ListChildren returns immediate children ordered by name ascending.
	// A nil parentID selects top-level folders.
	ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error)

	// ListAll returns the owner's entire folder forest ordered by name
	// ascending.
	ListAll(ctx context.Context, ownerID string) ([]models.Folder, error)

	// CollectDescendants computes the descendant closure of a folder:
	// the folder itself plus every folder transitively reachable through
	// parent_id, with no duplicates. Returns ErrNotFound if the starting
	// folder is missing or not owned.
	CollectDescendants(ctx context.Context, id, ownerID string) ([]string, error)

	// DeleteByIDs removes the given folders and returns how many rows
	// went away.
	DeleteByIDs(ctx context.Context, ownerID string, ids []string) (int64, error)
}
