package counter

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "adhesion:last_numero"

// RedisSource delegates numbering to a Redis INCR, which is atomic across
// processes.
type RedisSource struct {
	client *redis.Client
	key    string
}

// RedisOption configures a RedisSource.
type RedisOption func(*RedisSource)

// WithKey overrides the counter key, mainly for tests sharing one server.
func WithKey(key string) RedisOption {
	return func(s *RedisSource) {
		if key != "" {
			s.key = key
		}
	}
}

// NewRedis returns a Redis-backed source. The client lifecycle is managed by
// the caller.
func NewRedis(client *redis.Client, opts ...RedisOption) *RedisSource {
	s := &RedisSource{client: client, key: defaultRedisKey}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Next increments and returns the counter value.
func (s *RedisSource) Next(ctx context.Context) (int64, error) {
	n, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", s.key, err)
	}
	return n, nil
}
