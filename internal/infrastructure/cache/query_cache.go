// internal/infrastructure/cache/query_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a read-through cache for list query results. Mutation paths call
// Invalidate with the affected scope so subsequent reads refetch from the
// database. Cache failures never fail the surrounding request; readers fall
// through to the source and writers treat the cache as best-effort.
type Store interface {
	// Get unmarshals a cached value into dest, reporting whether it was found
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	// Set stores a value under key with the given TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Invalidate removes every key under the given scope prefixes
	Invalidate(ctx context.Context, scopes ...string) error
}

// Scope and key builders. A "scope" is a key prefix covering every cached
// page/variant of one logical list, so one Invalidate call marks all of them
// stale at once.

const ScopeDeals = "cache:deals"

func DealsPageKey(page int) string {
	return fmt.Sprintf("%s:active:page:%d", ScopeDeals, page)
}

func DealKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", ScopeDeals, id)
}

func CartScope(userID uint) string {
	return fmt.Sprintf("cache:cart:user:%d", userID)
}

func WishlistScope(userID uint) string {
	return fmt.Sprintf("cache:wishlist:user:%d", userID)
}

func WishlistPageKey(userID uint, page, limit int) string {
	return fmt.Sprintf("%s:page:%d:%d", WishlistScope(userID), page, limit)
}

func OrdersScope(userID uint) string {
	return fmt.Sprintf("cache:orders:user:%d", userID)
}

func OrdersPageKey(userID uint, page, limit int) string {
	return fmt.Sprintf("%s:page:%d:%d", OrdersScope(userID), page, limit)
}

func VehiclesScope(userID uint) string {
	return fmt.Sprintf("cache:vehicles:user:%d", userID)
}

// RedisStore implements Store on top of Redis with JSON values
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed query cache
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves and unmarshals a cached value
func (s *RedisStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// A corrupt entry behaves like a miss; the caller refetches
		return false, nil
	}

	return true, nil
}

// Set marshals and stores a value with a TTL
func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}

// Invalidate deletes every key under the given scope prefixes
func (s *RedisStore) Invalidate(ctx context.Context, scopes ...string) error {
	for _, scope := range scopes {
		iter := s.client.Scan(ctx, 0, scope+"*", 100).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("cache scan failed for scope %s: %w", scope, err)
		}

		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache invalidation failed for scope %s: %w", scope, err)
			}
		}
	}

	return nil
}

// MemoryStore is an in-process Store used by tests and as a fallback when
// Redis is not configured. Same JSON round-trip semantics as RedisStore.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory query cache
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get retrieves and unmarshals a cached value
func (s *MemoryStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, nil
	}

	return true, nil
}

// Set marshals and stores a value with a TTL
func (s *MemoryStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	s.mu.Lock()
	s.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()

	return nil
}

// Invalidate deletes every key under the given scope prefixes
func (s *MemoryStore) Invalidate(ctx context.Context, scopes ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, scope := range scopes {
		for key := range s.entries {
			if len(key) >= len(scope) && key[:len(scope)] == scope {
				delete(s.entries, key)
			}
		}
	}

	return nil
}
