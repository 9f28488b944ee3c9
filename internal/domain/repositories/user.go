package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// UserRepository is the persistence contract for the identity store.
type UserRepository interface {
	// Create inserts a user, filling ID and CreatedAt.
	// Returns ErrConflict if the email is already registered.
	Create(ctx context.Context, user *models.User) error

	// GetByID returns ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail returns ErrNotFound if no such user exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns all users ordered by created_at descending.
	List(ctx context.Context) ([]models.User, error)

	// UpdateRole sets the role for the given user and returns the updated
	// row. Returns ErrNotFound if the user does not exist.
	UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error)

	// Delete removes the user row. Folder and document rows owned by the
	// user go with it (schema cascade); blob cleanup is the caller's job.
	// Returns ErrNotFound if the user does not exist.
	Delete(ctx context.Context, id string) error

	// CountAdmins returns the current number of admin-role users.
	CountAdmins(ctx context.Context) (int, error)
}
