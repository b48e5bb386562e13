package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	dom "todoapp/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyList    = "todo:list:"
	keyVersion = "todo:ver:"
)

// TodoCache caches each owner's ordered todo list in Redis. Every owner has a
// version counter that Invalidate bumps; a list is only stored under the
// version it was read at, so a read that raced a write never lands in the cache.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for name, or nil on a miss.
func (c *TodoCache) GetList(ctx context.Context, name string) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, keyList+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := []dom.Todo{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Version returns the owner's current list version, 0 before the first Invalidate.
func (c *TodoCache) Version(ctx context.Context, name string) (int64, error) {
	v, err := c.rdb.Get(ctx, keyVersion+name).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetList stores the list for name if the owner's version still equals version.
// A stale list is dropped silently.
func (c *TodoCache) SetList(ctx context.Context, name string, version int64, list []dom.Todo) error {
	if list == nil {
		list = []dom.Todo{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, keyVersion+name).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, keyList+name, b, c.ttl)
			return nil
		})
		return err
	}, keyVersion+name)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate drops the cached list for name and bumps its version.
func (c *TodoCache) Invalidate(ctx context.Context, name string) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, keyVersion+name)
		p.Del(ctx, keyList+name)
		return nil
	})
	return err
}
