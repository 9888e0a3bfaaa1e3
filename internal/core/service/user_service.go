package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aseds/hive-platform/internal/core/domain"
	"github.com/aseds/hive-platform/internal/core/ports"
)

// LookupCache abstracts the read-through cache in front of FindByEmail
// (Redis). Get returns (nil, nil) on a miss. Safe to cache indefinitely
// within the TTL because no update or delete mutations exist for users.
type LookupCache interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
}

// UserService implements registration and identity lookup.
type UserService struct {
	repo   ports.UserRepository
	cache  LookupCache
	audit  ports.AuditDispatcher
	logger zerolog.Logger
}

// NewUserService wires the service explicitly; cache and audit may be nil,
// in which case those paths are skipped.
func NewUserService(repo ports.UserRepository, cache LookupCache, audit ports.AuditDispatcher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, audit: audit, logger: logger}
}

// Register runs the registration flow end-to-end. All validation happens
// before the single persistence side effect: a failure at any step leaves no
// record behind.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*ports.UserResult, error) {
	// Step 1: uniqueness. An absent email skips the check; the storage
	// unique index remains the final arbiter either way.
	if in.Email != "" {
		exists, err := s.Exists(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateUser
		}
	}

	// Step 2: role resolution against the closed enumeration.
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Step 3: variant construction, then the orchestrator's stamps. Role is
	// re-stamped from the resolved value, overwriting whatever the
	// constructor set.
	construct, err := constructorFor(role)
	if err != nil {
		return nil, err
	}
	user := construct(in, string(hash))
	user.Role = role
	user.CreatedAt = time.Now().UTC()

	// Step 4: persistence assigns the ID.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateUser) {
			s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to persist user")
		}
		return nil, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Msg("user registered")

	// Audit is fire-and-forget after persistence; it never affects the
	// registration outcome.
	if s.audit != nil {
		s.audit.Enqueue(ports.RegistrationEvent{
			UserID:     created.ID,
			Email:      created.Email,
			Role:       string(created.Role),
			OccurredAt: created.CreatedAt,
		})
	}

	// Step 5: role-erased projection.
	return toUserResult(created), nil
}

// GetByIdentifier resolves a user by exact email match.
func (s *UserService) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	if isBlank(identifier) {
		return nil, domain.ErrInvalidIdentifier
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, identifier)
		if err != nil {
			s.logger.Warn().Err(err).Msg("lookup cache read failed, falling through")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.FindByEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Msg("lookup cache write failed")
		}
	}

	return user, nil
}

// Exists is the boolean-shaped existence probe used by the registration
// flow. A blank identifier is never registered, so it reports false rather
// than failing.
func (s *UserService) Exists(ctx context.Context, identifier string) (bool, error) {
	if isBlank(identifier) {
		return false, nil
	}
	_, err := s.repo.FindByEmail(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func toUserResult(u *domain.User) *ports.UserResult {
	return &ports.UserResult{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
