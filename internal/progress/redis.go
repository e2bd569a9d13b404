package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces progress keys.
const DefaultRedisPrefix = "mathgen:progress:"

// RedisStore keeps progress records as plain string values.
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

// ParseRedisURL validates a Redis connection URL.
func ParseRedisURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return opts, nil
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := ParseRedisURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{Client: client, Prefix: prefix}, nil
}

func (s *RedisStore) key(grade string) string {
	return s.Prefix + grade
}

func (s *RedisStore) Get(ctx context.Context, grade string) ([]byte, bool, error) {
	data, err := s.Client.Get(ctx, s.key(grade)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Put(ctx context.Context, grade string, data []byte) error {
	return s.Client.Set(ctx, s.key(grade), data, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}
