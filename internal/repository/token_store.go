package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps one-time upload tokens in Redis.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore constructs the store.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Set parks a token key with the given TTL.
func (s *TokenStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("park token: %w", err)
	}
	return nil
}

// GetDel atomically fetches and removes a token key. A missing key is
// not an error; the empty string signals it was never parked or already
// consumed.
func (s *TokenStore) GetDel(ctx context.Context, key string) (string, error) {
	value, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("consume token: %w", err)
	}
	return value, nil
}
