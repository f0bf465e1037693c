package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// Wrapper exposes the redis client plus a Ping method usable by health checks.
type Wrapper struct {
	*redis.Client
}

// Ping returns nil if the redis connection is alive
func (w Wrapper) Ping(ctx context.Context) error {
	return w.Client.Ping(ctx).Err()
}

// Open opens a connection to redis and returns it
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := Status(ctx, rdb); err != nil {
		return nil, err
	}
	return rdb, nil
}

// Status returns nil if redis status is ok. Otherwise a redis status err
func Status(ctx context.Context, rdb *redis.Client) error {
	if pingCmd := rdb.Ping(ctx); pingCmd.Err() != nil {
		return pingCmd.Err()
	}
	return nil
}
