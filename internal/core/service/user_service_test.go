package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aseds/hive-platform/internal/core/domain"
	"github.com/aseds/hive-platform/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrDuplicateUser
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("usr_%d", r.nextID)
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubDispatcher struct {
	mu     sync.Mutex
	events []ports.RegistrationEvent
}

func (d *stubDispatcher) Enqueue(event ports.RegistrationEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *stubDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

func registerInput(email, role string) ports.RegisterInput {
	return ports.RegisterInput{
		Username:  "alice",
		Email:     email,
		Password:  "p",
		FirstName: "Alice",
		LastName:  "Miller",
		Role:      role,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubDispatcher{}
	svc := NewUserService(repo, nil, audit, zerolog.Nop())

	before := time.Now().UTC()
	result, err := svc.Register(context.Background(), registerInput("alice@x.com", "ADMIN"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.ID == "" {
		t.Fatalf("expected storage-assigned id")
	}
	if result.Role != "ADMIN" {
		t.Fatalf("expected role ADMIN, got %s", result.Role)
	}
	if result.CreatedAt.Before(before) {
		t.Fatalf("createdAt %v earlier than request time %v", result.CreatedAt, before)
	}
	if audit.count() != 1 {
		t.Fatalf("expected 1 audit event, got %d", audit.count())
	}

	stored, err := repo.FindByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("persisted user not found: %v", err)
	}
	if stored.Role != domain.RoleAdmin {
		t.Fatalf("persisted role %s does not match constructed variant", stored.Role)
	}
	if stored.PasswordHash == "p" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_EveryRoleVariant(t *testing.T) {
	for _, role := range []string{"ADMIN", "PROJECT_MANAGER", "EMPLOYEE"} {
		repo := newStubUserRepo()
		svc := NewUserService(repo, nil, nil, zerolog.Nop())

		result, err := svc.Register(context.Background(), registerInput(role+"@x.com", role))
		if err != nil {
			t.Fatalf("Register(%s) returned error: %v", role, err)
		}
		if result.Role != role {
			t.Fatalf("response role %s does not equal requested role %s", result.Role, role)
		}
	}
}

func TestUserService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, nil, zerolog.Nop())

	for _, role := range []string{"MANAGER", "", "admin"} {
		_, err := svc.Register(context.Background(), registerInput("bob@x.com", role))
		if !errors.Is(err, domain.ErrInvalidRole) {
			t.Fatalf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
	if len(repo.users) != 0 {
		t.Fatalf("no record may be persisted on invalid role, found %d", len(repo.users))
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("bob@x.com", "EMPLOYEE")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Repeated attempts are rejected idempotently and never create duplicates.
	for i := 0; i < 3; i++ {
		if _, err := svc.Register(context.Background(), registerInput("bob@x.com", "ADMIN")); !errors.Is(err, domain.ErrDuplicateUser) {
			t.Fatalf("attempt %d: expected ErrDuplicateUser, got %v", i, err)
		}
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly 1 persisted record, got %d", len(repo.users))
	}
}

func TestUserService_Register_EmptyEmailBypassesUniqueness(t *testing.T) {
	// An absent email skips the uniqueness check entirely; the request
	// proceeds to role resolution and persists.
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, nil, zerolog.Nop())

	result, err := svc.Register(context.Background(), registerInput("", "EMPLOYEE"))
	if err != nil {
		t.Fatalf("Register with empty email returned error: %v", err)
	}
	if result.Role != "EMPLOYEE" {
		t.Fatalf("unexpected role: %s", result.Role)
	}
}

func TestUserService_Register_RoundTripPreservesFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, nil, zerolog.Nop())

	in := ports.RegisterInput{
		Username:  "cwells",
		Email:     "carol@x.com",
		Password:  "s3cret",
		FirstName: "Carol",
		LastName:  "Wells",
		Role:      "PROJECT_MANAGER",
	}
	result, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if result.Username != in.Username || result.Email != in.Email ||
		result.FirstName != in.FirstName || result.LastName != in.LastName ||
		result.Role != in.Role {
		t.Fatalf("projection does not preserve request fields: %+v", result)
	}
}

func TestUserService_GetByIdentifier(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("dave@x.com", "EMPLOYEE")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.GetByIdentifier(context.Background(), "dave@x.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if user.Email != "dave@x.com" || user.Role != domain.RoleEmployee {
		t.Fatalf("unexpected user: %+v", user)
	}

	for _, identifier := range []string{"", "   "} {
		if _, err := svc.GetByIdentifier(context.Background(), identifier); !errors.Is(err, domain.ErrInvalidIdentifier) {
			t.Fatalf("identifier %q: expected ErrInvalidIdentifier, got %v", identifier, err)
		}
	}

	if _, err := svc.GetByIdentifier(context.Background(), "ghost@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

type stubCache struct {
	entries map[string]*domain.User
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.User)}
}

func (c *stubCache) Get(_ context.Context, email string) (*domain.User, error) {
	return cloneUser(c.entries[email]), nil
}

func (c *stubCache) Set(_ context.Context, user *domain.User) error {
	c.entries[user.Email] = cloneUser(user)
	c.sets++
	return nil
}

func TestUserService_GetByIdentifier_ReadThroughCache(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubCache()
	svc := NewUserService(repo, cache, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("erin@x.com", "ADMIN")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// First lookup misses the cache and fills it.
	if _, err := svc.GetByIdentifier(context.Background(), "erin@x.com"); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache fill, got %d sets", cache.sets)
	}

	// Second lookup is served from the cache even if storage loses the row.
	delete(repo.users, "erin@x.com")
	user, err := svc.GetByIdentifier(context.Background(), "erin@x.com")
	if err != nil {
		t.Fatalf("cached lookup failed: %v", err)
	}
	if user.Email != "erin@x.com" {
		t.Fatalf("unexpected cached user: %+v", user)
	}
}

func TestUserService_Exists(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("frank@x.com", "EMPLOYEE")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	cases := []struct {
		identifier string
		want       bool
	}{
		{"frank@x.com", true},
		{"ghost@x.com", false},
		{"", false},
		{"  ", false},
	}
	for _, tc := range cases {
		got, err := svc.Exists(context.Background(), tc.identifier)
		if err != nil {
			t.Fatalf("Exists(%q) returned error: %v", tc.identifier, err)
		}
		if got != tc.want {
			t.Fatalf("Exists(%q) = %v, want %v", tc.identifier, got, tc.want)
		}
	}
}
