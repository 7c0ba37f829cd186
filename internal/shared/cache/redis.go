package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements TokenStore and LoginLimiter on a single redis client
type RedisStore struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisStore connects and pings redis
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return newRedisStore(client, cfg.Auth.MaxLoginAttempts, cfg.Auth.LoginWindow), nil
}

func newRedisStore(client *redis.Client, maxAttempts int, window time.Duration) *RedisStore {
	return &RedisStore{client: client, maxAttempts: maxAttempts, window: window}
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, revokedKey(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Get(ctx, loginKey(key)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return count < s.maxAttempts, nil
}

// recordFailureScript increments the counter and guarantees it carries a TTL, in one step.
// The window starts at the first failure; a key left without TTL is given one here.
var recordFailureScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

func (s *RedisStore) RecordFailure(ctx context.Context, key string) error {
	return recordFailureScript.Run(ctx, s.client, []string{loginKey(key)}, s.window.Milliseconds()).Err()
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, loginKey(key)).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
