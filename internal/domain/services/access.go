package services

import (
	"context"

	"docvault/internal/domain/models"
)

// AccessPolicy resolves whether an actor may perform privileged
// operations. It is a pure decision layer: it consults the identity
// store but never mutates anything, and the counts it reads are the
// state at decision time (see the known last-admin race note).
type AccessPolicy interface {
	// CanManageUsers fails with ErrForbidden unless the actor is an
	// admin.
	CanManageUsers(ctx context.Context, actorID string) error

	// CanReadUser allows admins to read anyone and members to read
	// themselves.
	CanReadUser(ctx context.Context, actorID, targetID string) error

	// CanChangeRole fails with ErrForbidden for non-admins and with
	// ErrLastAdmin when the actor would demote themselves while being
	// the only admin.
	CanChangeRole(ctx context.Context, actorID, targetID string, newRole models.Role) error

	// CanDeleteUser fails with ErrForbidden for non-admins, with
	// ErrSelfDeletion when actor and target match, and with ErrLastAdmin
	// when the target is the only remaining admin.
	CanDeleteUser(ctx context.Context, actorID, targetID string) error
}
