package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type userService struct {
	userRepo repositories.UserRepository
	docRepo  repositories.DocumentRepository
	policy   services.AccessPolicy
	blobs    *BlobCoordinator
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repositories.UserRepository,
	docRepo repositories.DocumentRepository,
	policy services.AccessPolicy,
	blobs *BlobCoordinator,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		userRepo: userRepo,
		docRepo:  docRepo,
		policy:   policy,
		blobs:    blobs,
		logger:   logger,
	}
}

// Register creates a member-role account. The first admin comes from
// seeding, not registration.
func (s *userService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	if err := s.validateCredentials(req.Email, req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         models.RoleMember,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		"id", user.ID,
		"email", user.Email,
	)

	return user, nil
}

// Login verifies the credential pair. Unknown email and wrong password
// produce the same error so the response leaks nothing about which
// accounts exist.
func (s *userService) Login(ctx context.Context, req *services.LoginRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	s.logger.Info("user logged in", "id", user.ID)

	return user, nil
}

// Get returns a user subject to the read policy: self or admin.
func (s *userService) Get(ctx context.Context, actorID, targetID string) (*models.User, error) {
	if err := s.policy.CanReadUser(ctx, actorID, targetID); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, targetID)
}

// List returns all users, newest first. Admin only.
func (s *userService) List(ctx context.Context, actorID string) ([]models.User, error) {
	if err := s.policy.CanManageUsers(ctx, actorID); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

// ChangeRole sets the target's role subject to the access policy.
func (s *userService) ChangeRole(ctx context.Context, actorID, targetID string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be admin or member", domain.ErrValidation)
	}

	if err := s.policy.CanChangeRole(ctx, actorID, targetID, role); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user role changed",
		"id", targetID,
		"role", role,
		"actor_id", actorID,
	)

	return user, nil
}

// Delete removes the target user. The schema cascades folder and
// document rows away with the user; blob refs are collected up front
// and purged best-effort after the row delete succeeds.
func (s *userService) Delete(ctx context.Context, actorID, targetID string) error {
	if err := s.policy.CanDeleteUser(ctx, actorID, targetID); err != nil {
		return err
	}

	docs, err := s.docRepo.ListByOwner(ctx, targetID)
	if err != nil {
		return fmt.Errorf("collect document refs: %w", err)
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	refs := make([]string, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, doc.StorageRef)
	}
	failed := s.blobs.Purge(ctx, refs)

	s.logger.Info("user deleted",
		"id", targetID,
		"actor_id", actorID,
		"documents_purged", len(refs)-len(failed),
		"purge_failures", len(failed),
	)

	return nil
}

func (s *userService) validateCredentials(email, password string) error {
	req := struct {
		Email    string
		Password string
	}{Email: strings.TrimSpace(email), Password: password}

	return validation.ValidateStruct(&req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password,
			validation.Required,
			validation.Length(config.MinPasswordLength, config.MaxPasswordLength),
		),
	)
}
