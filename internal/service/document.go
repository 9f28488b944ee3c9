package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type documentService struct {
	docRepo    repositories.DocumentRepository
	folderRepo repositories.FolderRepository
	blobs      *BlobCoordinator
	logger     *slog.Logger
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	blobs *BlobCoordinator,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:    docRepo,
		folderRepo: folderRepo,
		blobs:      blobs,
		logger:     logger,
	}
}

// Upload writes the blob first, then the metadata row. If the row
// insert fails the blob is compensated away so no unreachable content
// survives; the metadata error is what the caller sees.
func (s *documentService) Upload(ctx context.Context, req *services.UploadRequest) (*models.Document, error) {
	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.OwnerID); err != nil {
			return nil, fmt.Errorf("target folder: %w", err)
		}
	}

	ref, err := s.blobs.Upload(ctx, s.blobKey(req), req.Content)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		Name:             req.DisplayName,
		OriginalFileName: req.OriginalFileName,
		MimeType:         req.MimeType,
		StorageRef:       ref,
		FolderID:         req.FolderID,
		OwnerID:          req.OwnerID,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		s.blobs.Compensate(ctx, ref)
		return nil, err
	}

	s.logger.Info("document uploaded",
		"id", doc.ID,
		"name", doc.Name,
		"owner_id", doc.OwnerID,
		"folder_id", doc.FolderID,
		"mime_type", doc.MimeType,
	)

	return doc, nil
}

// Get returns ErrNotFound for missing and unowned documents alike.
func (s *documentService) Get(ctx context.Context, ownerID, documentID string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, documentID, ownerID)
}

// ListByFolder returns documents directly in the folder, newest first.
func (s *documentService) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error) {
	if folderID != nil && *folderID == "" {
		folderID = nil
	}
	return s.docRepo.ListByFolder(ctx, ownerID, folderID)
}

// Update renames and/or moves a document. The blob never moves; only
// the metadata row changes.
func (s *documentService) Update(ctx context.Context, ownerID, documentID string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validateDocumentName(*req.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		doc.Name = *req.Name
	}

	if req.Folder.Set {
		target := req.Folder.ID
		if target != nil && *target == "" {
			target = nil
		}
		if target != nil {
			if _, err := s.folderRepo.GetByID(ctx, *target, ownerID); err != nil {
				return nil, fmt.Errorf("target folder: %w", err)
			}
		}
		doc.FolderID = target
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"name", doc.Name,
		"folder_id", doc.FolderID,
	)

	return doc, nil
}

// Delete removes the metadata row first; only then is the blob deleted.
// If the blob delete fails the document is still gone, the blob is
// stray, and nobody is blocked.
func (s *documentService) Delete(ctx context.Context, ownerID, documentID string) error {
	doc, err := s.docRepo.GetByID(ctx, documentID, ownerID)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, documentID, ownerID); err != nil {
		return err
	}

	s.blobs.Remove(ctx, doc.StorageRef)

	s.logger.Info("document deleted",
		"id", documentID,
		"owner_id", ownerID,
	)

	return nil
}

// OpenContent streams the document's bytes for download.
func (s *documentService) OpenContent(ctx context.Context, ownerID, documentID string) (*models.Document, io.ReadCloser, int64, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID, ownerID)
	if err != nil {
		return nil, nil, 0, err
	}

	rc, size, err := s.blobs.Open(ctx, doc.StorageRef)
	if err != nil {
		return nil, nil, 0, err
	}

	return doc, rc, size, nil
}

// blobKey scatters uploads under owner and folder so the store's layout
// mirrors the tree, with a random stem so two uploads of the same file
// never collide.
func (s *documentService) blobKey(req *services.UploadRequest) string {
	folderSeg := "root"
	if req.FolderID != nil {
		folderSeg = *req.FolderID
	}
	return path.Join(req.OwnerID, folderSeg, uuid.NewString()+path.Ext(req.OriginalFileName))
}

func (s *documentService) validateUploadRequest(req *services.UploadRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.DisplayName,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		),
		validation.Field(&req.OriginalFileName, validation.Required),
		validation.Field(&req.Content, validation.Required),
	)
}

func validateDocumentName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxDocumentNameLength),
	)
}
