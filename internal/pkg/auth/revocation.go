package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyTpl = "lms:revoked:%s" // lms:revoked:${jti}

// RevocationStore remembers revoked access tokens until they expire
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevocationStore keeps revoked token ids in Redis with a TTL
type RedisRevocationStore struct {
	redis *redis.Client
}

// NewRedisRevocationStore connects to redisURL and pings it
func NewRedisRevocationStore(ctx context.Context, redisURL string) (*RedisRevocationStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRevocationStore{redis: client}, nil
}

// Revoke stores tokenID until expiresAt
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, fmt.Sprintf(revokedKeyTpl, tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.redis.Get(ctx, fmt.Sprintf(revokedKeyTpl, tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

// Close closes the redis client
func (s *RedisRevocationStore) Close() error {
	return s.redis.Close()
}

// MemoryRevocationStore is used when no Redis URL is configured; revocations
// only live as long as the process. Expired entries are pruned on every Revoke.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationStore creates an empty in-process store
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !now.Before(exp) {
			delete(s.revoked, id)
		}
	}
	if now.Before(expiresAt) {
		s.revoked[tokenID] = expiresAt
	}
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

// size reports how many revocations are currently held
func (s *MemoryRevocationStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.revoked)
}
