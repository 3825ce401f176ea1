package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config must validate: %v", err)
	}
	if cfg.Server.HTTPPort != 7777 {
		t.Errorf("Expected default port 7777, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Explorer.DebounceWindow != 100*time.Millisecond {
		t.Errorf("Expected 100ms debounce, got %v", cfg.Explorer.DebounceWindow)
	}
	if !cfg.Explorer.RetryFailedSections {
		t.Error("Expected retry enabled by default")
	}
}

func TestValidate_Port(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.HTTPPort = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for port 0")
	}
	cfg.Server.HTTPPort = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for out-of-range port")
	}
}

func TestValidate_EventsType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Events.Type = "rabbitmq"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unsupported events type")
	}

	cfg.Events.Type = "kafka"
	cfg.Events.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for kafka without brokers")
	}
	cfg.Events.KafkaBrokers = []string{"localhost:9092"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid kafka config, got %v", err)
	}
}

func TestValidate_Connections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connections = []ConnectionConfig{{Name: "", Endpoint: "http://x"}}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for nameless connection")
	}

	cfg.Connections = []ConnectionConfig{{Name: "a", Endpoint: ""}}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for endpoint-less connection")
	}

	cfg.Connections = []ConnectionConfig{
		{Name: "a", Endpoint: "http://x"},
		{Name: "a", Endpoint: "http://y"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for duplicate connection name")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	wd, _ := os.Getwd()
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}
	if cfg.Server.HTTPPort != 7777 {
		t.Errorf("Expected default port, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Explorer.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default request timeout, got %v", cfg.Explorer.RequestTimeout)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  http_port: 9000
explorer:
  debounce_window: 250ms
  retry_failed_sections: false
connections:
  - name: local
    endpoint: http://localhost:8080
    connect_on_startup: true
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.HTTPPort != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Explorer.DebounceWindow != 250*time.Millisecond {
		t.Errorf("Expected 250ms debounce, got %v", cfg.Explorer.DebounceWindow)
	}
	if cfg.Explorer.RetryFailedSections {
		t.Error("Expected retry disabled")
	}
	if len(cfg.Connections) != 1 || !cfg.Connections[0].ConnectOnStartup {
		t.Errorf("Unexpected connections: %+v", cfg.Connections)
	}
}
