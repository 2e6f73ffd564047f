// Package memcache holds the short-lived keyed state the services need,
// currently the checkout idempotency lock.
package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore is the exclusive short-lived lock behind checkout idempotency
// keys. Acquire returns false when the key is already held.
type LockStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisLockStore implements LockStore with SET NX, so the lock survives
// process restarts and is shared across replicas.
type RedisLockStore struct {
	client *redis.Client
	prefix string
}

func NewRedisLockStore(client *redis.Client) *RedisLockStore {
	return &RedisLockStore{client: client, prefix: "checkout:idem:"}
}

func (s *RedisLockStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.prefix+key, "locked", ttl).Result()
}

func (s *RedisLockStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// LocalLockStore is the in-process fallback used in tests and keyless dev
// runs. Expired entries are dropped lazily on the next Acquire.
type LocalLockStore struct {
	mu   sync.Mutex
	data map[string]time.Time
}

func NewLocalLockStore() *LocalLockStore {
	return &LocalLockStore{data: make(map[string]time.Time)}
}

func (s *LocalLockStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expiresAt, ok := s.data[key]; ok && time.Now().Before(expiresAt) {
		return false, nil
	}
	s.data[key] = time.Now().Add(ttl)
	return true, nil
}

func (s *LocalLockStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
