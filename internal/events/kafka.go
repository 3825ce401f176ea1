package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig represents Apache Kafka configuration.
type KafkaConfig struct {
	Brokers []string // Kafka broker addresses
	Topic   string   // Topic for change events (default: "weavenav-catalog")
	GroupID string   // Consumer group ID (default: "weavenav")
}

// KafkaBroadcaster implements Broadcaster over a Kafka topic.
type KafkaBroadcaster struct {
	config KafkaConfig
	writer *kafka.Writer

	mu     sync.Mutex
	reader *kafka.Reader
	cancel context.CancelFunc
}

// NewKafkaBroadcaster creates a Kafka-backed broadcaster.
func NewKafkaBroadcaster(cfg KafkaConfig) (*KafkaBroadcaster, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}
	if cfg.Topic == "" {
		cfg.Topic = "weavenav-catalog"
	}
	if cfg.GroupID == "" {
		cfg.GroupID = "weavenav"
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaBroadcaster{config: cfg, writer: writer}, nil
}

// Publish sends an event to the topic.
func (b *KafkaBroadcaster) Publish(ctx context.Context, event ChangeEvent) error {
	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Value: data,
		Time:  time.Now(),
	}
	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to kafka topic %s: %w", b.config.Topic, err)
	}
	return nil
}

// Subscribe starts consuming events from the topic.
func (b *KafkaBroadcaster) Subscribe(handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.reader != nil {
		return fmt.Errorf("already subscribed to topic %s", b.config.Topic)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  b.config.Brokers,
		Topic:    b.config.Topic,
		GroupID:  b.config.GroupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})

	ctx, cancel := context.WithCancel(context.Background())
	b.reader = reader
	b.cancel = cancel

	go func() {
		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				continue
			}
			event, err := DecodeEvent(msg.Value)
			if err != nil {
				continue
			}
			handler(event)
		}
	}()

	return nil
}

// Close stops the reader and writer.
func (b *KafkaBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	if b.reader != nil {
		_ = b.reader.Close()
		b.reader = nil
	}
	return b.writer.Close()
}
