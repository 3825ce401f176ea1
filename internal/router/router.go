package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/weavenav/weavenav/internal/explorer"
	"github.com/weavenav/weavenav/internal/handlers"
	"github.com/weavenav/weavenav/internal/logging"
	"github.com/weavenav/weavenav/internal/middleware"
	"github.com/weavenav/weavenav/internal/registry"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, exp *explorer.Explorer, reg *registry.Manager) *handlers.Handler {
	h := handlers.New(logger, exp, reg)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check
	app.Get("/health", h.Health)

	v1 := app.Group("/v1")

	// Connection Management Routes
	v1.Post("/connections", h.CreateConnection)
	v1.Get("/connections", h.ListConnections)
	v1.Get("/connections/:id", h.GetConnection)
	v1.Delete("/connections/:id", h.DeleteConnection)
	v1.Post("/connections/:id/connect", h.ConnectConnection)
	v1.Post("/connections/:id/disconnect", h.DisconnectConnection)

	// Tree Navigation Routes
	v1.Post("/tree/children", h.Children)
	v1.Post("/tree/parent", h.Parent)
	v1.Post("/tree/item", h.Item)
	v1.Post("/tree/refresh", h.Refresh)
	v1.Post("/tree/refresh/force", h.ForceRefresh)

	// Collection Management Routes
	v1.Post("/connections/:id/collections", h.CreateCollection)
	v1.Post("/connections/:id/collections/import", h.ImportCollection)
	v1.Post("/connections/:id/collections/:collection/clone", h.CloneCollection)
	v1.Delete("/connections/:id/collections/:collection", h.DeleteCollection)
	v1.Delete("/connections/:id/collections", h.DeleteAllCollections)

	// Alias Management Routes
	v1.Post("/connections/:id/aliases", h.CreateAlias)
	v1.Delete("/connections/:id/aliases/:alias", h.DeleteAlias)

	// Backup Routes
	v1.Post("/connections/:id/backups", h.CreateBackup)
	v1.Post("/connections/:id/backups/:backend/:backup/restore", h.RestoreBackup)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, exp *explorer.Explorer, reg *registry.Manager) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "WeaveNav",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, exp, reg)

	return app
}
