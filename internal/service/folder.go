package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	txManager  repositories.TransactionManager
	blobs      *BlobCoordinator
	logger     *slog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	blobs *BlobCoordinator,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		txManager:  txManager,
		blobs:      blobs,
		logger:     logger,
	}
}

// Create makes a folder under the given parent (nil = root).
func (s *folderService) Create(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	// The insert's foreign key would catch a missing parent, but it
	// cannot catch a parent owned by someone else. Check up front.
	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
		s.logger.Debug("parent folder found",
			"parent_id", parent.ID,
			"parent_name", parent.Name,
		)
	}

	folder := &models.Folder{
		Name:     req.Name,
		ParentID: req.ParentID,
		OwnerID:  req.OwnerID,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", folder.OwnerID,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// Rename changes the folder's name; the location stays put.
func (s *folderService) Rename(ctx context.Context, ownerID, folderID, name string) (*models.Folder, error) {
	if err := validateFolderName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.Rename(ctx, folderID, ownerID, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", ownerID,
	)

	return folder, nil
}

// ListChildren returns immediate children ordered by name.
func (s *folderService) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	return s.folderRepo.ListChildren(ctx, ownerID, parentID)
}

// ListAll returns the owner's entire forest ordered by name.
func (s *folderService) ListAll(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return s.folderRepo.ListAll(ctx, ownerID)
}

// Delete removes the folder and its whole subtree: descendant folders,
// the documents inside them, and the blobs those documents point at.
//
// The metadata delete (documents then folders) runs in one transaction
// so a crash never leaves a half-deleted tree. Blobs are purged only
// after the transaction commits; purge failures become stray blobs, not
// rollbacks.
func (s *folderService) Delete(ctx context.Context, ownerID, folderID string) (*services.DeletionReport, error) {
	folderIDs, err := s.folderRepo.CollectDescendants(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByFolderIDs(ctx, ownerID, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("collect documents: %w", err)
	}

	var docsDeleted int64
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		n, err := s.docRepo.DeleteByFolderIDs(txCtx, ownerID, folderIDs)
		if err != nil {
			return fmt.Errorf("delete documents: %w", err)
		}
		docsDeleted = n

		if _, err := s.folderRepo.DeleteByIDs(txCtx, ownerID, folderIDs); err != nil {
			return fmt.Errorf("delete folders: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, doc.StorageRef)
	}
	failed := s.blobs.Purge(ctx, refs)

	s.logger.Info("folder subtree deleted",
		"folder_id", folderID,
		"owner_id", ownerID,
		"folders_deleted", len(folderIDs),
		"documents_deleted", docsDeleted,
		"purge_failures", len(failed),
	)

	return &services.DeletionReport{
		DeletedFolderIDs: folderIDs,
		DeletedDocuments: int(docsDeleted),
		PurgedBlobRefs:   refs,
		PurgeFailures:    failed,
	}, nil
}

func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}

func validateFolderName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	)
}
