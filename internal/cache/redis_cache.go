package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weiawesome/amigos-chat/internal/config"
)

var ErrCacheMiss = errors.New("cache miss")

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(cfg config.RedisConfig, prefix string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisCacheWithClient(client, prefix), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

func (c *RedisCache) BuildUserKey(walletAddress string) string {
	return fmt.Sprintf("%s:user:%s", c.prefix, walletAddress)
}

func (c *RedisCache) BuildGroupKey(groupID int64) string {
	return fmt.Sprintf("%s:group:%d", c.prefix, groupID)
}

func (c *RedisCache) GetUser(ctx context.Context, key string) (*UserCacheResult, error) {
	var result UserCacheResult
	if err := c.get(ctx, key, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RedisCache) SetUser(ctx context.Context, key string, result *UserCacheResult, ttl time.Duration) error {
	return c.set(ctx, key, result, ttl)
}

func (c *RedisCache) GetGroup(ctx context.Context, key string) (*GroupCacheResult, error) {
	var result GroupCacheResult
	if err := c.get(ctx, key, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RedisCache) SetGroup(ctx context.Context, key string, result *GroupCacheResult, ttl time.Duration) error {
	return c.set(ctx, key, result, ttl)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from redis: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

var _ Cache = (*RedisCache)(nil)
