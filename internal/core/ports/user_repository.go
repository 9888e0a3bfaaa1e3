package ports

import (
	"context"

	"github.com/aseds/hive-platform/internal/core/domain"
)

// UserRepository defines the persistence boundary for identities. The
// storage layer must enforce email uniqueness with a hard constraint; the
// service-level existence check is only an optimization for a friendlier
// error.
type UserRepository interface {
	// Create persists the user and returns it with the storage-assigned ID.
	// A unique-constraint violation on email surfaces as domain.ErrDuplicateUser.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns the user with the exact email, or domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
