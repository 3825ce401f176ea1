package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig       `mapstructure:"server"`
	Logging     LoggingConfig      `mapstructure:"logging"`
	Events      EventsConfig       `mapstructure:"events"`
	Explorer    ExplorerConfig     `mapstructure:"explorer"`
	Connections []ConnectionConfig `mapstructure:"connections"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console, pretty
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// EventsConfig represents the change-broadcast backend configuration
type EventsConfig struct {
	Enabled      bool     `mapstructure:"enabled"`       // Broadcast catalog changes to peers
	Type         string   `mapstructure:"type"`          // memory, redis, nats, kafka
	URL          string   `mapstructure:"url"`           // Broker URL (redis/nats)
	Password     string   `mapstructure:"password"`      // Optional broker password (redis)
	RedisDB      int      `mapstructure:"redis_db"`      // Redis database number
	RedisChannel string   `mapstructure:"redis_channel"` // Redis pub/sub channel
	Subject      string   `mapstructure:"subject"`       // NATS subject
	KafkaBrokers []string `mapstructure:"kafka_brokers"` // Kafka broker addresses
	KafkaTopic   string   `mapstructure:"kafka_topic"`   // Kafka topic
	KafkaGroupID string   `mapstructure:"kafka_group_id"`
}

// ExplorerConfig tunes the lazy expansion engine and change notification
type ExplorerConfig struct {
	// DebounceWindow is the quiet period coalescing change signals.
	DebounceWindow time.Duration `mapstructure:"debounce_window"`
	// ErrorClipLength caps the error text shown on message leaves.
	ErrorClipLength int `mapstructure:"error_clip_length"`
	// RetryFailedSections leaves a failed section fetch uncached so the
	// next expansion retries; false caches the failure until a forced
	// refresh invalidates it.
	RetryFailedSections bool `mapstructure:"retry_failed_sections"`
	// RequestTimeout bounds each remote fetch issued during expansion.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// BackupBackends are the backup providers probed when listing backups.
	BackupBackends []string `mapstructure:"backup_backends"`
}

// ConnectionConfig seeds one connection definition at startup
type ConnectionConfig struct {
	Name             string `mapstructure:"name"`
	Endpoint         string `mapstructure:"endpoint"`
	APIKey           string `mapstructure:"api_key"`
	ConnectOnStartup bool   `mapstructure:"connect_on_startup"`
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be between 1 and 65535, got %d", c.Server.HTTPPort)
	}

	switch c.Events.Type {
	case "", "memory", "redis", "nats", "kafka":
	default:
		return fmt.Errorf("events.type must be one of memory, redis, nats, kafka, got %q", c.Events.Type)
	}
	if c.Events.Enabled && c.Events.Type == "kafka" && len(c.Events.KafkaBrokers) == 0 {
		return fmt.Errorf("events.kafka_brokers is required when events.type is kafka")
	}

	if c.Explorer.DebounceWindow < 0 {
		return fmt.Errorf("explorer.debounce_window must not be negative")
	}
	if c.Explorer.ErrorClipLength < 0 {
		return fmt.Errorf("explorer.error_clip_length must not be negative")
	}

	seen := make(map[string]bool, len(c.Connections))
	for _, conn := range c.Connections {
		if conn.Name == "" {
			return fmt.Errorf("connections[].name is required")
		}
		if conn.Endpoint == "" {
			return fmt.Errorf("connection %s: endpoint is required", conn.Name)
		}
		if seen[conn.Name] {
			return fmt.Errorf("duplicate connection name: %s", conn.Name)
		}
		seen[conn.Name] = true
	}

	return nil
}
