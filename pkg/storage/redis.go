package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/tabmind/pkg/config"
)

// RedisBackend keeps the document as a string value under one key.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects to the server in cfg and pings it, retrying
// transient failures.
func NewRedisBackend(ctx context.Context, cfg config.Redis) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return Retryable(err)
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return NewRedisBackendWithClient(client, cfg.Key), nil
}

// NewRedisBackendWithClient wraps an existing client. The backend takes
// ownership of client and closes it on Close.
func NewRedisBackendWithClient(client *redis.Client, key string) *RedisBackend {
	return &RedisBackend{client: client, key: key}
}

// Load gets the key. A missing key reports not found.
func (b *RedisBackend) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("GET %s: %w", b.key, err)
	}
	return data, true, nil
}

// Save sets the key without expiration.
func (b *RedisBackend) Save(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("SET %s: %w", b.key, err)
	}
	return nil
}

// Close closes the client.
func (b *RedisBackend) Close() error { return b.client.Close() }

func (b *RedisBackend) String() string {
	return location("redis", b.client.Options().Addr+"/"+b.key)
}

var _ Backend = (*RedisBackend)(nil)
