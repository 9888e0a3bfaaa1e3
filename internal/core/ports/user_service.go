package ports

import (
	"context"
	"time"

	"github.com/aseds/hive-platform/internal/core/domain"
)

// RegisterInput is the transient registration request. Role is the raw
// caller-supplied token; it is resolved against the closed role set by the
// service, never trusted as-is.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// UserResult is the role-erased projection returned to callers after a
// successful registration. Credential material is deliberately absent.
type UserResult struct {
	ID        string
	FirstName string
	LastName  string
	Username  string
	Email     string
	Role      string
	CreatedAt time.Time
}

// UserService defines the identity use cases.
type UserService interface {
	// Register runs the registration flow: uniqueness check, role
	// resolution, variant construction, persistence, projection. Any step
	// failing leaves no record behind.
	Register(ctx context.Context, in RegisterInput) (*UserResult, error)
	// GetByIdentifier resolves a user by email. Blank identifiers fail with
	// domain.ErrInvalidIdentifier, unmatched ones with domain.ErrUserNotFound.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	// Exists reports whether a user with the given identifier is registered.
	// A blank identifier is never registered, so it reports false.
	Exists(ctx context.Context, identifier string) (bool, error)
}
