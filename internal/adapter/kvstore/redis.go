// Package kvstore provides the key-value backings for the preference
// store: a durable Redis client, a process-local in-memory map and a
// one-way degrading wrapper over both.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vastrakart/assistant/internal/core/port"
	"github.com/vastrakart/assistant/pkg/retry"
)

var _ port.KeyValueStorage = (*Redis)(nil)

const pingDelay = 200 * time.Millisecond

type Redis struct {
	cl *redis.Client
}

// NewRedis connects to the Redis instance at addr and verifies it with
// a bounded retrying ping.
func NewRedis(ctx context.Context, addr string) (Redis, error) {
	const op = "kvstore.NewRedis"
	log := slog.With("op", op)

	cl := redis.NewClient(&redis.Options{Addr: addr})

	cfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(pingDelay),
	}
	err := retry.Do(ctx, cfg, func() error {
		return cl.Ping(ctx).Err()
	})
	if err != nil {
		_ = cl.Close()
		return Redis{}, fmt.Errorf("%s: redis is unavailable: %w", op, err)
	}

	log.Info("redis is available", "addr", addr)
	return Redis{cl}, nil
}

func (r Redis) Set(ctx context.Context, key string, value []byte) error {
	const op = "Redis.Set"

	if err := r.cl.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r Redis) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "Redis.Get"

	b, err := r.cl.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func (r Redis) Close() {
	const op = "Redis.Close"
	log := slog.With("op", op)

	log.Info("closing redis client...")
	if err := r.cl.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("redis client is closed")
}
