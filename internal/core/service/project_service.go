package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aseds/hive-platform/internal/core/domain"
	"github.com/aseds/hive-platform/internal/core/ports"
)

// ProjectService implements project creation and employee assignment.
type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// CreateProject creates a project with a unique name. The name check here is
// an optimization; the storage unique index is the backstop.
func (s *ProjectService) CreateProject(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	exists, err := s.repo.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateProject
	}

	project := &domain.Project{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Description:      in.Description,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		ProjectManagerID: in.ProjectManagerID,
		EmployeeIDs:      []string{},
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", project.ID).Str("name", project.Name).Msg("project created")
	return project, nil
}

// AddEmployees unions the given user IDs into the project's employee set.
// Duplicate IDs in the input collapse; IDs already assigned are no-ops.
func (s *ProjectService) AddEmployees(ctx context.Context, projectID string, employeeIDs []string) (*domain.Project, error) {
	seen := make(map[string]struct{}, len(employeeIDs))
	unique := make([]string, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	project, err := s.repo.AddEmployees(ctx, projectID, unique)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("project_id", projectID).
		Int("added", len(unique)).
		Msg("employees assigned to project")
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) ProjectsByManager(ctx context.Context, managerID string) ([]*domain.Project, error) {
	return s.repo.ListByManager(ctx, managerID)
}

func (s *ProjectService) ProjectsByEmployee(ctx context.Context, employeeID string) ([]*domain.Project, error) {
	return s.repo.ListByEmployee(ctx, employeeID)
}
