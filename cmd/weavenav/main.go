package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weavenav/weavenav/internal/config"
	"github.com/weavenav/weavenav/internal/events"
	"github.com/weavenav/weavenav/internal/explorer"
	"github.com/weavenav/weavenav/internal/logging"
	"github.com/weavenav/weavenav/internal/registry"
	"github.com/weavenav/weavenav/internal/router"
	"github.com/weavenav/weavenav/internal/utils"
	"github.com/weavenav/weavenav/internal/weaviate"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("WeaveNav starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Connect to the change broadcaster (configurable backend)
	var broadcaster events.Broadcaster
	if cfg.Events.Enabled {
		logger.Info("Connecting to event broker", "type", cfg.Events.Type, "url", cfg.Events.URL)
		broadcaster, err = events.NewBroadcaster(cfg.Events)
		if err != nil {
			logger.Fatal("Failed to connect to event broker", "error", err)
		}
		defer broadcaster.Close()
	}

	// Connection registry with the REST client factory
	clientFactory := func(endpoint, apiKey string) weaviate.Client {
		opts := []weaviate.RESTOption{
			weaviate.WithBackupBackends(cfg.Explorer.BackupBackends),
		}
		if apiKey != "" {
			opts = append(opts, weaviate.WithAPIKey(apiKey))
		}
		return weaviate.NewRESTClient(endpoint, opts...)
	}
	reg := registry.NewManager(logger, clientFactory)

	// Explorer engine
	exp := explorer.New(logger, reg, broadcaster, explorer.OptionsFromConfig(cfg.Explorer))
	defer exp.Notifier().Close()

	// Seed configured connections; startup connects run in batch mode so
	// section priming happens lazily on first expansion.
	seedConnections(logger, reg, exp, cfg.Connections)

	// Initialize router
	app := router.New(logger, exp, reg)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

// seedConnections registers configured connections and connects the ones
// marked for startup. A failed startup connect is logged, not fatal; the
// connection stays available for a manual connect.
func seedConnections(logger *logging.Logger, reg *registry.Manager, exp *explorer.Explorer, configured []config.ConnectionConfig) {
	for _, conn := range configured {
		ctx, cancel := context.WithTimeout(context.Background(), utils.ConnectTimeout)

		summary, err := reg.Add(ctx, conn.Name, conn.Endpoint, conn.APIKey)
		if err != nil {
			logger.Warn("Failed to register configured connection", "name", conn.Name, "error", err)
			cancel()
			continue
		}

		if conn.ConnectOnStartup {
			if err := exp.Connect(ctx, summary.ID, true); err != nil {
				logger.Warn("Startup connect failed", "name", conn.Name, "error", err)
			}
		}
		cancel()
	}
}
