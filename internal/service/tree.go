package service

import (
	"context"
	"fmt"
	"log/slog"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type treeService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service.
func NewTreeService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	logger *slog.Logger,
) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		logger:     logger,
	}
}

// GetTree loads the owner's whole forest in two queries and nests it in
// memory. Folders keep the repository's name ordering, documents keep
// newest-first.
func (s *treeService) GetTree(ctx context.Context, ownerID string) (*models.Tree, error) {
	allFolders, err := s.folderRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	allDocuments, err := s.docRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	// First pass: create all folder nodes
	folderMap := make(map[string]*models.FolderNode, len(allFolders))
	var rootFolderIDs []string
	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			CreatedAt: folder.CreatedAt,
			Folders:   []*models.FolderNode{},
			Documents: []models.DocumentNode{},
		}
	}

	// Second pass: nest folders under their parents
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			rootFolderIDs = append(rootFolderIDs, folder.ID)
			continue
		}
		if parent, exists := folderMap[*folder.ParentID]; exists {
			parent.Folders = append(parent.Folders, node)
		}
	}

	// Third pass: attach documents
	rootDocuments := []models.DocumentNode{}
	for _, doc := range allDocuments {
		docNode := models.DocumentNode{
			ID:         doc.ID,
			Name:       doc.Name,
			MimeType:   doc.MimeType,
			FolderID:   doc.FolderID,
			UploadedAt: doc.UploadedAt,
		}
		if doc.FolderID == nil {
			rootDocuments = append(rootDocuments, docNode)
			continue
		}
		if parent, exists := folderMap[*doc.FolderID]; exists {
			parent.Documents = append(parent.Documents, docNode)
		}
	}

	rootFolders := []*models.FolderNode{}
	for _, id := range rootFolderIDs {
		rootFolders = append(rootFolders, folderMap[id])
	}

	s.logger.Debug("tree built",
		"owner_id", ownerID,
		"folders", len(allFolders),
		"documents", len(allDocuments),
	)

	return &models.Tree{
		Folders:   rootFolders,
		Documents: rootDocuments,
	}, nil
}
