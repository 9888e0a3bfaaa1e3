package ports

import (
	"context"

	"github.com/aseds/hive-platform/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects. Name
// uniqueness is enforced by the storage layer as a backstop to the
// service-level check.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// AddEmployees unions the given IDs into the project's employee set and
	// returns the updated project.
	AddEmployees(ctx context.Context, id string, employeeIDs []string) (*domain.Project, error)
	ListByManager(ctx context.Context, managerID string) ([]*domain.Project, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Project, error)
}
