package storage

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

const snapshotCacheKey = "doorstate:snapshot"

// Cache wraps a Strategy with Redis-backed caching for snapshot exports.
type Cache struct {
	base  Strategy
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching wrapper using the provided Redis client and TTL.
func NewCache(base Strategy, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base strategy is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

// Load passes through: startup state is read once and never cached.
func (c *Cache) Load(ctx context.Context) ([]domain.DoorState, error) {
	return c.base.Load(ctx)
}

func (c *Cache) Record(ctx context.Context, st domain.DoorState) error {
	return c.base.Record(ctx, st)
}

// Upsert writes through and evicts the cached snapshot.
func (c *Cache) Upsert(ctx context.Context, st domain.DoorState) error {
	if err := c.base.Upsert(ctx, st); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *Cache) Export(ctx context.Context) (domain.Snapshot, error) {
	if snap, ok := c.loadSnapshotFromCache(ctx); ok {
		return snap, nil
	}

	snap, err := c.base.Export(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	c.storeSnapshot(ctx, snap)
	return snap, nil
}

func (c *Cache) loadSnapshotFromCache(ctx context.Context) (domain.Snapshot, bool) {
	if c.redis == nil {
		return domain.Snapshot{}, false
	}
	data, err := c.redis.Get(ctx, snapshotCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing strategy without failing.
			_ = c.redis.Del(ctx, snapshotCacheKey).Err()
		}
		return domain.Snapshot{}, false
	}
	var snap domain.Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		_ = c.redis.Del(ctx, snapshotCacheKey).Err()
		return domain.Snapshot{}, false
	}
	return snap, true
}

func (c *Cache) storeSnapshot(ctx context.Context, snap domain.Snapshot) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := sonic.Marshal(snap)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, snapshotCacheKey, data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, snapshotCacheKey).Result()
}
