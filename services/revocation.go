package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList records the ids (jti) of tokens that were logged out before
// they expired
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedTokenKeyPrefix = "bloodlink:revoked:jti:"

// RedisRevocationList shares revocations between service instances
type RedisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList wraps an already connected client
func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

// Revoke marks jti as revoked until ttl elapses
func (r *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether jti was revoked and has not yet expired
func (r *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := r.client.Get(ctx, revokedTokenKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InMemoryRevocationList is used when no Redis is configured. Revocations are
// lost on restart and not shared between instances.
type InMemoryRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewInMemoryRevocationList creates an empty revocation list
func NewInMemoryRevocationList() *InMemoryRevocationList {
	return &InMemoryRevocationList{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *InMemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	// Drop expired entries so the map only holds live tokens
	for id, expiresAt := range r.revoked {
		if !now.Before(expiresAt) {
			delete(r.revoked, id)
		}
	}
	r.revoked[jti] = now.Add(ttl)
	return nil
}

func (r *InMemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiresAt, exists := r.revoked[jti]
	return exists && r.now().Before(expiresAt), nil
}
