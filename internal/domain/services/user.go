package services

import (
	"context"

	"docvault/internal/domain/models"
)

// UserService handles registration, credential checks and admin user
// management.
type UserService interface {
	// Register creates a member-role user. Fails with ErrConflict if the
	// email is taken and ErrValidation on a malformed request.
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)

	// Login verifies the credential pair. The error for an unknown email
	// and for a wrong password is identical (ErrUnauthorized) so callers
	// cannot tell which part was wrong.
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)

	// Get returns a user's public details. Admins can fetch anyone,
	// members only themselves.
	Get(ctx context.Context, actorID, targetID string) (*models.User, error)

	// List returns all users, admin only, newest first.
	List(ctx context.Context, actorID string) ([]models.User, error)

	// ChangeRole sets the target's role subject to the access policy.
	ChangeRole(ctx context.Context, actorID, targetID string, role models.Role) (*models.User, error)

	// Delete removes the target user and everything they own: folders,
	// documents and the blobs behind them. Blob purge is best effort.
	Delete(ctx context.Context, actorID, targetID string) error
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
