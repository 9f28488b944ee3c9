package services

import (
	"context"

	"docvault/internal/domain/models"
)

// TreeService renders an owner's folders and documents as one nested
// structure for the dashboard.
type TreeService interface {
	GetTree(ctx context.Context, ownerID string) (*models.Tree, error)
}
