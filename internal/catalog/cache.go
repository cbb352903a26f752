package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

type Cache interface {
	Get(ctx context.Context) ([]domain.Plugin, error)
	Set(ctx context.Context, plugins []domain.Plugin) error
}

var ErrCacheMiss = errors.New("cache miss")

const cacheKey = "catalog:plugins"

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, baseTTL: baseTTL}
}

func (r *RedisCache) Get(ctx context.Context) ([]domain.Plugin, error) {
	data, err := r.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var plugins []domain.Plugin
	if err2 := json.Unmarshal(data, &plugins); err2 != nil {
		return nil, fmt.Errorf("unmarshal catalog failed: %w", err2)
	}
	return plugins, nil
}

func (r *RedisCache) Set(ctx context.Context, plugins []domain.Plugin) error {
	data, err := json.Marshal(plugins)
	if err != nil {
		return fmt.Errorf("marshal catalog failed: %w", err)
	}

	// Jitter keeps a cold cache from expiring for every instance at once.
	ttl := r.baseTTL + time.Duration(rand.Intn(30))*time.Second
	if err := r.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
