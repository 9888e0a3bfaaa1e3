package ports

import (
	"context"
	"time"

	"github.com/aseds/hive-platform/internal/core/domain"
)

// CreateProjectInput carries all data needed to create a new project.
type CreateProjectInput struct {
	Name             string
	Description      string
	StartDate        time.Time
	EndDate          time.Time
	ProjectManagerID string
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	AddEmployees(ctx context.Context, projectID string, employeeIDs []string) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ProjectsByManager(ctx context.Context, managerID string) ([]*domain.Project, error)
	ProjectsByEmployee(ctx context.Context, employeeID string) ([]*domain.Project, error)
}
