package permission

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cccteam/ccc/accesstypes"
	"github.com/go-playground/errors/v5"
	"github.com/redis/go-redis/v9"
)

// Store caches resolved role permission sets. A miss is reported with
// ok=false and is not an error.
type Store interface {
	Get(ctx context.Context, roleID int64) (perms []accesstypes.Permission, ok bool, err error)
	Put(ctx context.Context, roleID int64, perms []accesstypes.Permission) error
}

// MemoryStore is an in-process Store with per-entry expiration.
type MemoryStore struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[int64]memoryEntry
}

type memoryEntry struct {
	perms     []accesstypes.Permission
	expiresAt time.Time
}

// NewMemoryStore creates a MemoryStore. Entries older than ttl are
// treated as misses; a non-positive ttl keeps entries for the process
// lifetime.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[int64]memoryEntry),
	}
}

func (m *MemoryStore) Get(_ context.Context, roleID int64) ([]accesstypes.Permission, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[roleID]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return nil, false, nil
	}

	return e.perms, true, nil
}

func (m *MemoryStore) Put(_ context.Context, roleID int64, perms []accesstypes.Permission) error {
	var expiresAt time.Time
	if m.ttl > 0 {
		expiresAt = time.Now().Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[roleID] = memoryEntry{perms: perms, expiresAt: expiresAt}

	return nil
}

// RedisStore is a Store backed by Redis, for deployments running more
// than one gateway instance.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. The ttl bounds how long a role's
// permission set is served without consulting the upstream API.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, roleID int64) ([]accesstypes.Permission, bool, error) {
	val, err := r.client.Get(ctx, roleKey(roleID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, errors.Wrap(err, "redis.UniversalClient.Get()")
	}

	var perms []accesstypes.Permission
	if err := json.Unmarshal([]byte(val), &perms); err != nil {
		return nil, false, errors.Wrap(err, "json.Unmarshal()")
	}

	return perms, true, nil
}

func (r *RedisStore) Put(ctx context.Context, roleID int64, perms []accesstypes.Permission) error {
	val, err := json.Marshal(perms)
	if err != nil {
		return errors.Wrap(err, "json.Marshal()")
	}

	if err := r.client.Set(ctx, roleKey(roleID), val, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis.UniversalClient.Set()")
	}

	return nil
}

func roleKey(roleID int64) string {
	return fmt.Sprintf("backoffice:role:%d:permissions", roleID)
}
