package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")             // Current directory
		v.AddConfigPath("./configs")     // Project configs directory
		v.AddConfigPath("/etc/weavenav") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("WEAVENAV")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 7777)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")

	// Events defaults
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.type", "memory")
	v.SetDefault("events.url", "nats://localhost:4222")

	// Explorer defaults
	v.SetDefault("explorer.debounce_window", "100ms")
	v.SetDefault("explorer.error_clip_length", 200)
	v.SetDefault("explorer.retry_failed_sections", true)
	v.SetDefault("explorer.request_timeout", "30s")
	v.SetDefault("explorer.backup_backends", []string{"filesystem", "s3", "gcs", "azure"})
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 7777,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
		Events: EventsConfig{
			Enabled: false,
			Type:    "memory",
		},
		Explorer: ExplorerConfig{
			DebounceWindow:      100 * time.Millisecond,
			ErrorClipLength:     200,
			RetryFailedSections: true,
			RequestTimeout:      30 * time.Second,
			BackupBackends:      []string{"filesystem", "s3", "gcs", "azure"},
		},
	}
}
