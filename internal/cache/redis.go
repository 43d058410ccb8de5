package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps JSON encoded leaderboards in Redis with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(ctx context.Context, address, password string, db int, ttl time.Duration, log *logger.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl, log: log}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A stale entry from an older layout is treated as a miss
		c.log.Warn("dropping undecodable cache entry", "key", key, "error", err)
		c.client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Generation reads the household's cache generation, 0 when never invalidated
func (c *RedisCache) Generation(ctx context.Context, householdID uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(householdID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

// InvalidateHousehold advances the household's generation and removes every
// cached leaderboard. Entries written afterwards under an older generation
// are unreachable and expire with the TTL.
func (c *RedisCache) InvalidateHousehold(ctx context.Context, householdID uuid.UUID) error {
	if err := c.client.Incr(ctx, generationKey(householdID)).Err(); err != nil {
		return fmt.Errorf("failed to advance cache generation: %w", err)
	}

	pattern := householdPrefix(householdID) + "*"
	var cursor uint64
	var keysDeleted int

	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys: %w", err)
			}
			keysDeleted += len(keys)
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	c.log.Debug("leaderboard cache invalidated", "household_id", householdID, "keys_deleted", keysDeleted)
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
