package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server. Snapshots are plain string
// values, written without expiry.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an already-connected Redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get reads the snapshot stored under key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", key, err)
	}
	return value, nil
}

// Set writes the snapshot under key.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
