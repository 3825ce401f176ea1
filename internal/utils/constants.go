package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

const (
	// DefaultRequestTimeout is the default timeout for HTTP requests
	DefaultRequestTimeout = 30 * time.Second

	// RemoteFetchTimeout bounds a single remote catalog fetch
	RemoteFetchTimeout = 30 * time.Second

	// ConnectTimeout bounds the metadata ping issued when connecting
	ConnectTimeout = 10 * time.Second

	// BroadcastTimeout bounds publishing one change event
	BroadcastTimeout = 5 * time.Second
)

// =============================================================================
// Explorer Constants
// =============================================================================

const (
	// DefaultErrorClipLength caps error text shown on message leaves
	DefaultErrorClipLength = 200
)

// =============================================================================
// Broker Types
// =============================================================================

// BrokerType identifies a change-broadcast backend
type BrokerType string

const (
	BrokerTypeMemory BrokerType = "memory"
	BrokerTypeRedis  BrokerType = "redis"
	BrokerTypeNATS   BrokerType = "nats"
	BrokerTypeKafka  BrokerType = "kafka"
)
