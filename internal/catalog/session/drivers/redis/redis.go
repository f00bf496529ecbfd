// Package redis backs the session store with a Redis server, mirroring the
// token_uuid -> subject_id SETEX contract the catalog relies on.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clefworks/scorebook/internal/catalog/session"
)

type Config struct {
	Addr     string
	Username string
	Password string
	DB       int
}

type Store struct {
	client *redis.Client
}

// NewStore connects and pings the server; a dead backend at startup is a
// configuration problem, not something to discover on the first login.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: failed to ping server: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Put(ctx context.Context, tokenID, subjectID string, ttl time.Duration) error {
	if err := s.client.SetEx(ctx, tokenID, subjectID, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, tokenID string) (string, error) {
	val, err := s.client.Get(ctx, tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", session.ErrUnavailable, err)
	}
	return val, nil
}

func (s *Store) Delete(ctx context.Context, tokenIDs ...string) error {
	if len(tokenIDs) == 0 {
		return nil
	}
	// DEL ignores missing keys, which gives us idempotent deletion for free.
	if err := s.client.Del(ctx, tokenIDs...).Err(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Close() error { return s.client.Close() }
