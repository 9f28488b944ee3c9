package services

import (
	"context"

	"docvault/internal/domain/models"
)

// FolderService handles the per-owner folder hierarchy.
type FolderService interface {
	// Create makes a folder under the given parent (nil = root). The
	// parent must exist and belong to the same owner; otherwise the call
	// fails with ErrNotFound.
	Create(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// Rename changes the folder's name. Fails with ErrNotFound if the
	// folder is missing or not owned.
	Rename(ctx context.Context, ownerID, folderID, name string) (*models.Folder, error)

	// ListChildren returns immediate children ordered by name; nil
	// parent selects the top level.
	ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error)

	// ListAll returns the owner's whole forest ordered by name.
	ListAll(ctx context.Context, ownerID string) ([]models.Folder, error)

	// Delete removes the folder, every descendant folder, and every
	// document anywhere in that subtree. Metadata deletion is one
	// transaction; blob purge runs afterwards and is best effort.
	Delete(ctx context.Context, ownerID, folderID string) (*DeletionReport, error)
}

type CreateFolderRequest struct {
	OwnerID  string  `json:"-"` // set by the handler from the auth context
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

// DeletionReport describes what a cascading folder delete did.
type DeletionReport struct {
	DeletedFolderIDs []string `json:"deleted_folder_ids"`
	DeletedDocuments int      `json:"deleted_documents"`
	PurgedBlobRefs   []string `json:"-"`
	PurgeFailures    []string `json:"-"` // refs whose blob delete failed; left for an out-of-band sweep
}
