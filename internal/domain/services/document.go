package services

import (
	"context"
	"io"

	"docvault/internal/domain/models"
)

// DocumentService handles document metadata and the blob protocols
// around it.
type DocumentService interface {
	// Upload writes the content to blob storage first, then inserts the
	// metadata row. If the insert fails the just-written blob is
	// compensated away (best effort) and the metadata error is returned.
	Upload(ctx context.Context, req *UploadRequest) (*models.Document, error)

	// Get returns ErrNotFound for missing and unowned documents alike.
	Get(ctx context.Context, ownerID, documentID string) (*models.Document, error)

	// ListByFolder returns documents directly in the folder, newest
	// first; nil = root-level documents only.
	ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error)

	// Update renames and/or moves a document. Moving validates the
	// target folder's ownership the same way Upload does.
	Update(ctx context.Context, ownerID, documentID string, req *UpdateDocumentRequest) (*models.Document, error)

	// Delete removes the metadata row first, then tries to delete the
	// blob; a blob failure at that point is logged and swallowed.
	Delete(ctx context.Context, ownerID, documentID string) error

	// OpenContent streams the document's bytes for download. Size is -1
	// when unknown.
	OpenContent(ctx context.Context, ownerID, documentID string) (*models.Document, io.ReadCloser, int64, error)
}

type UploadRequest struct {
	OwnerID          string
	DisplayName      string
	OriginalFileName string
	MimeType         string
	FolderID         *string // nil = root
	Content          io.Reader
}

// MoveTarget expresses an optional folder reassignment.
//   - Set=false: leave the location unchanged
//   - Set=true, ID=nil: move to root
//   - Set=true, ID=&id: move into that folder
type MoveTarget struct {
	Set bool
	ID  *string
}

type UpdateDocumentRequest struct {
	Name   *string
	Folder MoveTarget
}
