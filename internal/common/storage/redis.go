// internal/common/storage/redis.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loanos-client/internal/common/config"
	apperrors "loanos-client/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "loanos:"

// RedisClient wraps the Redis client
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a new Redis client
func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     2,
	})

	return &RedisClient{Client: rdb}
}

// Ping tests the Redis connection
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// RedisStore shares one token between every terminal pointed at the same
// Redis. The entry expires together with the token when TTL is set.
type RedisStore struct {
	client *redis.Client
	key    string
	// TTL computes the entry lifetime for a token; zero means no expiry.
	TTL func(token string) time.Duration
}

func NewRedisStore(client *RedisClient, key string) *RedisStore {
	return &RedisStore{client: client.Client, key: redisKeyPrefix + key}
}

func (s *RedisStore) Key() string {
	return s.key
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", apperrors.NewStorageError("load", err)
	}
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	var ttl time.Duration
	if s.TTL != nil {
		ttl = s.TTL(token)
		if ttl < 0 {
			ttl = 0
		}
	}
	if err := s.client.Set(ctx, s.key, token, ttl).Err(); err != nil {
		return apperrors.NewStorageError("save", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return apperrors.NewStorageError("delete", err)
	}
	return nil
}
