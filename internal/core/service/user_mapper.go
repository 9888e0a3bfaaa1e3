package service

import (
	"fmt"

	"github.com/aseds/hive-platform/internal/core/domain"
	"github.com/aseds/hive-platform/internal/core/ports"
)

// variantConstructor builds the concrete user variant for one resolved role.
// The three constructors are structurally identical today; they stay
// separate so a future variant can diverge in fields without touching its
// siblings. CreatedAt and the final Role stamp belong to the registration
// flow, not to the constructor.
type variantConstructor func(in ports.RegisterInput, passwordHash string) *domain.User

func newAdmin(in ports.RegisterInput, passwordHash string) *domain.User {
	return &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		PasswordHash: passwordHash,
		Email:        in.Email,
		Role:         domain.RoleAdmin,
	}
}

func newProjectManager(in ports.RegisterInput, passwordHash string) *domain.User {
	return &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		PasswordHash: passwordHash,
		Email:        in.Email,
		Role:         domain.RoleProjectManager,
	}
}

func newEmployee(in ports.RegisterInput, passwordHash string) *domain.User {
	return &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		PasswordHash: passwordHash,
		Email:        in.Email,
		Role:         domain.RoleEmployee,
	}
}

// constructorFor selects the constructor for a resolved role. A resolved
// role without a constructor is a hard error rather than a silent fallback:
// growing the enumeration without updating this switch must fail loudly, not
// mis-construct the record as an Employee.
func constructorFor(role domain.Role) (variantConstructor, error) {
	switch role {
	case domain.RoleAdmin:
		return newAdmin, nil
	case domain.RoleProjectManager:
		return newProjectManager, nil
	case domain.RoleEmployee:
		return newEmployee, nil
	default:
		return nil, fmt.Errorf("%w: no constructor for role %q", domain.ErrInvalidRole, role)
	}
}
