package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig represents Redis pub/sub configuration.
type RedisConfig struct {
	URL      string // Redis URL (e.g., redis://localhost:6379)
	Password string // Optional password
	DB       int    // Database number (default: 0)
	Channel  string // Pub/sub channel (default: "weavenav:catalog")
}

// RedisBroadcaster implements Broadcaster over Redis pub/sub. Change
// signals are ephemeral, so pub/sub fan-out fits better than streams:
// a subscriber that was down has no use for missed refresh signals.
type RedisBroadcaster struct {
	client  *redis.Client
	channel string

	mu     sync.Mutex
	pubsub *redis.PubSub
	cancel context.CancelFunc
}

// NewRedisBroadcaster creates a Redis-backed broadcaster.
func NewRedisBroadcaster(cfg RedisConfig) (*RedisBroadcaster, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		// Fallback to simple options
		opts = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if cfg.Channel == "" {
		cfg.Channel = "weavenav:catalog"
	}

	return &RedisBroadcaster{client: client, channel: cfg.Channel}, nil
}

// Publish sends an event on the pub/sub channel.
func (b *RedisBroadcaster) Publish(ctx context.Context, event ChangeEvent) error {
	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", b.channel, err)
	}
	return nil
}

// Subscribe starts consuming events from the pub/sub channel.
func (b *RedisBroadcaster) Subscribe(handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pubsub != nil {
		return fmt.Errorf("already subscribed to channel %s", b.channel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	pubsub := b.client.Subscribe(ctx, b.channel)
	b.pubsub = pubsub
	b.cancel = cancel

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				event, err := DecodeEvent([]byte(msg.Payload))
				if err != nil {
					continue
				}
				handler(event)
			}
		}
	}()

	return nil
}

// Close stops the subscription and closes the client.
func (b *RedisBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	if b.pubsub != nil {
		_ = b.pubsub.Close()
		b.pubsub = nil
	}
	return b.client.Close()
}
