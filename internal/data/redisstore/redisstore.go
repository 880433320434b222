// Package redisstore wraps the redis client used for durable job state.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/pkg/logging"
)

type Store struct {
	client *redis.Client
	logger *logging.Logger
}

// New connects to redis and verifies reachability. Callers fall back to
// the in-memory job store when this returns an error.
func New(ctx context.Context, addr string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              config.RedisPassword,
		DB:                    db,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	s := &Store{
		client: client,
		logger: logging.NewLogger("redis_store"),
	}
	go s.closeOnDone(ctx)
	return s, nil
}

// NewTestStore wraps an existing client; for tests backed by miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logging.NewLogger("redis_store_test"),
	}
}

func (s *Store) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	s.logger.Info("closing redis store")
	if err := s.client.Close(); err != nil {
		s.logger.Error("error closing redis client", "error", err)
	}
}

func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *Store) IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
