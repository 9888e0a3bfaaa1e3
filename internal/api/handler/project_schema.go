package handler

import (
	"time"

	"github.com/aseds/hive-platform/internal/core/domain"
)

type createProjectRequest struct {
	Name             string    `json:"name"               validate:"required"`
	Description      string    `json:"description"`
	StartDate        time.Time `json:"start_date"         validate:"required"`
	EndDate          time.Time `json:"end_date"`
	ProjectManagerID string    `json:"project_manager_id" validate:"required"`
}

type addEmployeesRequest struct {
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,required"`
}

type projectResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date,omitempty"`
	ProjectManagerID string    `json:"project_manager_id"`
	EmployeeIDs      []string  `json:"employee_ids"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	employeeIDs := p.EmployeeIDs
	if employeeIDs == nil {
		employeeIDs = []string{}
	}
	return projectResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		ProjectManagerID: p.ProjectManagerID,
		EmployeeIDs:      employeeIDs,
	}
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}
