package domain

import (
	"errors"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrDuplicateProject = errors.New("project with this name already exists")

// Project is the project-service aggregate. EmployeeIDs has set semantics:
// membership only, no ordering, duplicates collapse on assignment.
// ProjectManagerID and EmployeeIDs reference user IDs from the identity
// service but are not checked referentially across services.
type Project struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date,omitempty"`
	ProjectManagerID string    `json:"project_manager_id"`
	EmployeeIDs      []string  `json:"employee_ids"`
}
