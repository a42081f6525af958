package cachesvc

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

// ViewCache stores the rendered data of views, keyed by ViewKey.
type ViewCache interface {
	// Get returns the cached value of key; ok is false on a miss.
	Get(ctx context.Context, key core.ViewKey) (value []byte, ok bool, err error)
	Set(ctx context.Context, key core.ViewKey, value []byte, ttl time.Duration) error
	// Delete drops keys and bumps their version.
	Delete(ctx context.Context, keys ...core.ViewKey) error

	// Version returns the number of times key was deleted.
	Version(ctx context.Context, key core.ViewKey) (uint64, error)
	// SetIfVersion stores value only while the version of key is still version.
	SetIfVersion(ctx context.Context, key core.ViewKey, value []byte, ttl time.Duration, version uint64) (stored bool, err error)
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is a process-local ViewCache.
type MemoryCache struct {
	mu       sync.RWMutex
	entries  map[core.ViewKey]memoryEntry
	versions map[core.ViewKey]uint64
	now      func() time.Time
}

var _ ViewCache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries:  make(map[core.ViewKey]memoryEntry),
		versions: make(map[core.ViewKey]uint64),
		now:      time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key core.ViewKey) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, found := c.entries[key]; found && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) entry(value []byte, ttl time.Duration) memoryEntry {
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	return e
}

func (c *MemoryCache) Set(_ context.Context, key core.ViewKey, value []byte, ttl time.Duration) error {
	e := c.entry(value, ttl)
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...core.ViewKey) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
		c.versions[k]++
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Version(_ context.Context, key core.ViewKey) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.versions[key], nil
}

func (c *MemoryCache) SetIfVersion(_ context.Context, key core.ViewKey, value []byte, ttl time.Duration, version uint64) (bool, error) {
	e := c.entry(value, ttl)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[key] != version {
		return false, nil
	}
	c.entries[key] = e
	return true, nil
}

// Len returns the number of entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

const (
	redisKeyPrefix     = "view:"
	redisVersionPrefix = "view-version:"
)

// RedisCache is a ViewCache shared by every instance of the web host.
type RedisCache struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ ViewCache = (*RedisCache)(nil)

func NewRedisCache(rdb redis.UniversalClient) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: redisKeyPrefix}
}

func (c *RedisCache) key(k core.ViewKey) string { return c.prefix + string(k) }

func (c *RedisCache) versionKey(k core.ViewKey) string { return redisVersionPrefix + string(k) }

func (c *RedisCache) Get(ctx context.Context, key core.ViewKey) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "redis get %s", key)
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key core.ViewKey, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.rdb.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, keys ...core.ViewKey) error {
	if len(keys) == 0 {
		return nil
	}
	rkeys := make([]string, len(keys))
	for i, k := range keys {
		rkeys[i] = c.key(k)
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rkeys...)
		for _, k := range keys {
			pipe.Incr(ctx, c.versionKey(k))
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "redis del %v", keys)
	}
	return nil
}

func (c *RedisCache) Version(ctx context.Context, key core.ViewKey) (uint64, error) {
	v, err := c.rdb.Get(ctx, c.versionKey(key)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "redis get version %s", key)
	}
	return v, nil
}

// SetIfVersion watches the version key so that a Delete racing the write aborts it.
func (c *RedisCache) SetIfVersion(ctx context.Context, key core.ViewKey, value []byte, ttl time.Duration, version uint64) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	verKey := c.versionKey(key)
	var stored bool
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, verKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(key), value, ttl)
			return nil
		})
		stored = err == nil
		return err
	}, verKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "redis set %s", key)
	}
	return stored, nil
}
