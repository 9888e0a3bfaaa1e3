package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aseds/hive-platform/internal/api/metrics"
	"github.com/aseds/hive-platform/internal/core/domain"
	"github.com/aseds/hive-platform/internal/core/ports"
)

// UserHandler handles identity registration and lookup requests.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// userResponse is the role-erased client projection. The password hash is
// deliberately absent.
type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Register creates a new user account with the requested role.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	result, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		status := http.StatusInternalServerError
		reason := "persistence"
		switch {
		case errors.Is(err, domain.ErrDuplicateUser):
			status = http.StatusConflict
			reason = "duplicate_email"
		case errors.Is(err, domain.ErrInvalidRole):
			status = http.StatusBadRequest
			reason = "invalid_role"
		}
		metrics.RegistrationErrorsTotal.WithLabelValues(reason).Inc()
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	metrics.RegistrationsTotal.WithLabelValues(result.Role).Inc()

	return c.JSON(http.StatusCreated, userResponse{
		ID:        result.ID,
		FirstName: result.FirstName,
		LastName:  result.LastName,
		Username:  result.Username,
		Email:     result.Email,
		Role:      result.Role,
		CreatedAt: result.CreatedAt,
	})
}

// Lookup resolves a user by email.
//
// @Summary      Look up a user by identifier
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        identifier  path      string  true  "User email"
// @Success      200         {object}  userResponse
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /v1/users/{identifier} [get]
func (h *UserHandler) Lookup(c echo.Context) error {
	user, err := h.service.GetByIdentifier(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidIdentifier):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrUserNotFound):
			status = http.StatusNotFound
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	})
}
