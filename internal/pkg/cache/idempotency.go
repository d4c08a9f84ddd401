package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultLockTTL bounds how long an in-flight request holds its key if the process dies.
const DefaultLockTTL = 30 * time.Second

// CachedResponse is a completed response replayed for a repeated idempotency key.
type CachedResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type IdempotencyStore struct {
	rdb     redis.Cmdable
	ttl     time.Duration
	lockTTL time.Duration
}

func NewIdempotencyStore(rdb redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl, lockTTL: DefaultLockTTL}
}

// Key builds the cache key for a route, actor and client key.
func Key(path, actor, idempotencyKey string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, actor, idempotencyKey)
}

func lockKey(key string) string {
	return key + ":lock"
}

// Get returns the cached response for key, if any.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}

	var cached CachedResponse
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode idempotency entry: %w", err)
	}
	return &cached, nil
}

// Acquire takes the in-flight lock for key. It reports false when another request holds it.
func (s *IdempotencyStore) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, lockKey(key), "locked", s.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to lock idempotency key: %w", err)
	}
	return ok, nil
}

// Save stores the completed response for the configured TTL.
func (s *IdempotencyStore) Save(ctx context.Context, key string, resp CachedResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotency entry: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, lockKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency lock: %w", err)
	}
	return nil
}
