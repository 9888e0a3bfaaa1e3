package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aseds/hive-platform/internal/api/metrics"
	"github.com/aseds/hive-platform/internal/core/domain"
)

const lookupTTL = 5 * time.Minute

// UserCache is a read-through cache for identity lookups, keyed by email.
// Users are never updated or deleted, so a TTL is the only invalidation
// needed. Key format: lookup:<email>
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// cachedUser carries the full record through the cache, including the
// credential hash that domain.User hides from JSON.
type cachedUser struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Get returns the cached user for the email, or (nil, nil) on a miss.
func (c *UserCache) Get(ctx context.Context, email string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		metrics.LookupCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup cache get: %w", err)
	}

	var cu cachedUser
	if err := json.Unmarshal([]byte(raw), &cu); err != nil {
		return nil, fmt.Errorf("lookup cache decode: %w", err)
	}

	metrics.LookupCacheTotal.WithLabelValues("hit").Inc()
	return &domain.User{
		ID:           cu.ID,
		FirstName:    cu.FirstName,
		LastName:     cu.LastName,
		Username:     cu.Username,
		PasswordHash: cu.PasswordHash,
		Email:        cu.Email,
		Role:         domain.Role(cu.Role),
		CreatedAt:    cu.CreatedAt,
	}, nil
}

// Set caches the user under its email (expires after lookupTTL).
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(cachedUser{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Email:        user.Email,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("lookup cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.Email), raw, lookupTTL).Err()
}

func (c *UserCache) key(email string) string {
	return fmt.Sprintf("lookup:%s", email)
}
