package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aseds/hive-platform/internal/api/metrics"
	"github.com/aseds/hive-platform/internal/core/ports"
)

// ProjectHandler handles project CRUD and employee assignment. Domain errors
// propagate to the central HTTP error handler for status mapping.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /v1/projects.
//
// @Summary      Create a new project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	project, err := h.service.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		Name:             req.Name,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		ProjectManagerID: req.ProjectManagerID,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// AddEmployees handles POST /v1/projects/:id/employees.
//
// @Summary      Assign employees to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Project ID"
// @Param        body  body      addEmployeesRequest  true  "Employee IDs to assign"
// @Success      200   {object}  projectResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/employees [post]
func (h *ProjectHandler) AddEmployees(c echo.Context) error {
	var req addEmployeesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	project, err := h.service.AddEmployees(c.Request().Context(), c.Param("id"), req.EmployeeIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project by ID
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Project ID"
// @Success      200 {object}  projectResponse
// @Failure      404 {object}  map[string]string
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// ListByManager handles GET /v1/projects/manager/:managerId.
//
// @Summary      List projects managed by a user
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        managerId  path      string  true  "Project manager user ID"
// @Success      200        {array}   projectResponse
// @Router       /v1/projects/manager/{managerId} [get]
func (h *ProjectHandler) ListByManager(c echo.Context) error {
	projects, err := h.service.ProjectsByManager(c.Request().Context(), c.Param("managerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponses(projects))
}

// ListByEmployee handles GET /v1/projects/employee/:employeeId.
//
// @Summary      List projects an employee is assigned to
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId  path      string  true  "Employee user ID"
// @Success      200         {array}   projectResponse
// @Router       /v1/projects/employee/{employeeId} [get]
func (h *ProjectHandler) ListByEmployee(c echo.Context) error {
	projects, err := h.service.ProjectsByEmployee(c.Request().Context(), c.Param("employeeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponses(projects))
}
