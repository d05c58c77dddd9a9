package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/wahho/rewards-platform/internal/core/domain"
	"github.com/wahho/rewards-platform/internal/core/ports"
)

const (
	catalogKey = "tasks:catalog"
	catalogTTL = 5 * time.Minute
)

// CatalogCache is a read-through Redis cache in front of a TaskRepository.
// The catalog is read-only at runtime, so a short TTL is the only
// invalidation needed. Cache faults fall back to the inner repository.
type CatalogCache struct {
	client *redis.Client
	next   ports.TaskRepository
	log    zerolog.Logger
}

func NewCatalogCache(client *redis.Client, next ports.TaskRepository, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, next: next, log: log}
}

func (c *CatalogCache) List(ctx context.Context) ([]domain.Task, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == nil {
		var tasks []domain.Task
		if err := json.Unmarshal(raw, &tasks); err == nil {
			return tasks, nil
		}
		c.log.Warn().Msg("corrupt catalog cache entry, refetching")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Msg("catalog cache read failed")
	}

	tasks, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(tasks); err == nil {
		if err := c.client.Set(ctx, catalogKey, raw, catalogTTL).Err(); err != nil {
			c.log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return tasks, nil
}

func (c *CatalogCache) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	tasks, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id {
			clone := t
			return &clone, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

// Seed delegates to the inner repository and drops the cached catalog so the
// next read observes the seeded state.
func (c *CatalogCache) Seed(ctx context.Context, tasks []domain.Task) error {
	if err := c.next.Seed(ctx, tasks); err != nil {
		return err
	}
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
	return nil
}
