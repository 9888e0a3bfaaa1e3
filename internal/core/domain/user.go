package domain

import (
	"errors"
	"time"
)

// Role is the closed enumeration of user variants. Every persisted user
// carries exactly one member of this set for its whole lifetime; the tag
// discriminates storage and dispatch, the base fields are shared.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleProjectManager Role = "PROJECT_MANAGER"
	RoleEmployee       Role = "EMPLOYEE"
)

var ErrInvalidRole = errors.New("invalid role")
var ErrDuplicateUser = errors.New("user with this email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidIdentifier = errors.New("identifier cannot be null or blank")

// ParseRole maps a caller-supplied role token onto the closed enumeration.
// Matching is exact: no trimming, no case folding. An empty or unknown
// token fails with ErrInvalidRole.
func ParseRole(token string) (Role, error) {
	switch Role(token) {
	case RoleAdmin, RoleProjectManager, RoleEmployee:
		return Role(token), nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User models a registered identity. The ID is assigned by the persistence
// layer on create and is immutable afterwards; CreatedAt is stamped once by
// the registration flow and never mutated.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
