// Package auth implements the authorization gate: role checks for user
// management and the last-admin invariant. Ownership checks for folders
// and documents live in the repositories' owner scoping; this package
// only decides role-gated operations.
package auth

import (
	"context"
	"fmt"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

// RolePolicy is an AccessPolicy over the user repository.
//
// The admin count is read at decision time with no lock; two admins
// demoting or deleting each other concurrently can both pass the check.
// That race is known and accepted - fixing it needs a serializable
// transaction around count-and-mutate.
type RolePolicy struct {
	userRepo repositories.UserRepository
}

// NewRolePolicy creates a new role-based access policy.
func NewRolePolicy(userRepo repositories.UserRepository) services.AccessPolicy {
	return &RolePolicy{userRepo: userRepo}
}

// CanManageUsers requires the actor to exist and hold the admin role.
func (p *RolePolicy) CanManageUsers(ctx context.Context, actorID string) error {
	actor, err := p.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("resolve actor: %w", err)
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("user management requires admin role: %w", domain.ErrForbidden)
	}
	return nil
}

// CanReadUser allows admins to read anyone and members only themselves.
func (p *RolePolicy) CanReadUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return nil
	}
	return p.CanManageUsers(ctx, actorID)
}

// CanChangeRole enforces the admin requirement and the last-admin
// invariant on self-demotion.
func (p *RolePolicy) CanChangeRole(ctx context.Context, actorID, targetID string, newRole models.Role) error {
	if err := p.CanManageUsers(ctx, actorID); err != nil {
		return err
	}

	if actorID == targetID && newRole == models.RoleMember {
		count, err := p.userRepo.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if count <= 1 {
			return fmt.Errorf("demoting yourself would leave no admin: %w", domain.ErrLastAdmin)
		}
	}

	return nil
}

// CanDeleteUser enforces the admin requirement, forbids self-deletion
// outright, and protects the last admin.
func (p *RolePolicy) CanDeleteUser(ctx context.Context, actorID, targetID string) error {
	if err := p.CanManageUsers(ctx, actorID); err != nil {
		return err
	}

	if actorID == targetID {
		return fmt.Errorf("admins cannot delete their own account: %w", domain.ErrSelfDeletion)
	}

	target, err := p.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("resolve target: %w", err)
	}

	if target.IsAdmin() {
		count, err := p.userRepo.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if count <= 1 {
			return fmt.Errorf("deleting the only admin: %w", domain.ErrLastAdmin)
		}
	}

	return nil
}
