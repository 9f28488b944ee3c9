package domain

import "errors"

// Sentinel errors for the core taxonomy - match with errors.Is().
// ErrNotFound deliberately covers both "missing" and "not owned by the
// actor" so handlers cannot leak resource existence to non-owners.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrLastAdmin    = errors.New("cannot remove the last admin")
	ErrSelfDeletion = errors.New("cannot delete own account")
	ErrStorage      = errors.New("blob storage failure")
)

// ConflictError represents a resource conflict with details about the
// existing resource.
type ConflictError struct {
	Message      string
	ResourceType string // user, folder, document
	ResourceID   string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
