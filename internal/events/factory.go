package events

import (
	"fmt"
	"strings"

	"github.com/weavenav/weavenav/internal/config"
	"github.com/weavenav/weavenav/internal/utils"
)

// NewBroadcaster creates a Broadcaster based on configuration.
// Default is the in-memory backend if type is not specified.
func NewBroadcaster(cfg config.EventsConfig) (Broadcaster, error) {
	brokerType := utils.BrokerType(strings.ToLower(cfg.Type))

	if brokerType == "" {
		brokerType = utils.BrokerTypeMemory
	}

	switch brokerType {
	case utils.BrokerTypeMemory:
		return NewMemoryBroadcaster(), nil

	case utils.BrokerTypeRedis:
		return NewRedisBroadcaster(RedisConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Channel:  cfg.RedisChannel,
		})

	case utils.BrokerTypeNATS:
		return NewNATSBroadcaster(cfg.URL, cfg.Subject)

	case utils.BrokerTypeKafka:
		return NewKafkaBroadcaster(KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroupID,
		})

	default:
		return nil, fmt.Errorf("unsupported events type: %s (supported: memory, redis, nats, kafka)", brokerType)
	}
}
