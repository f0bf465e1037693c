package pubsub

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/drivemate/kyc-platform/internal/log"
)

// RedisClient struct
type RedisClient struct {
	conn *redis.Client
}

// NewRedis returns a redis pubsub client
func NewRedis(rdb *redis.Client) *RedisClient {
	return &RedisClient{conn: rdb}
}

// Publish marshals the event and publishes it under the given topic
func (rdb *RedisClient) Publish(ctx context.Context, topic string, payload Event) error {
	msg, err := payload.Marshal()
	if err != nil {
		return fmt.Errorf("marshalling event payload: %w", err)
	}
	return rdb.conn.Publish(ctx, topic, []byte(msg)).Err()
}

// Subscribe registers a callback for a topic. Callbacks run in a dedicated
// goroutine until ctx is cancelled. A panicking callback never kills the
// subscription loop.
func (rdb *RedisClient) Subscribe(ctx context.Context, topic string, callback EventHandler) {
	pubsub := rdb.conn.Subscribe(ctx, topic)
	go func() {
		for {
			select {
			case event := <-pubsub.Channel():
				if event.Channel != topic {
					log.Error(ctx, "msg channel != topic", "channel", event.Channel, "topic", topic)
					continue
				}
				run(ctx, callback, Message(event.Payload))

			case <-ctx.Done():
				if err := pubsub.Close(); err != nil {
					log.Error(ctx, "closing pubsub subscription", "err", err)
				}
				return
			}
		}
	}()
}

func run(ctx context.Context, callback EventHandler, payload Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "recovered panic in pubsub callback", "recovered", r)
		}
	}()
	if err := callback(ctx, payload); err != nil {
		log.Error(ctx, "executing pubsub callback", "err", err)
	}
}
