package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/weavenav/weavenav/internal/explorer"
	"github.com/weavenav/weavenav/internal/logging"
	"github.com/weavenav/weavenav/internal/middleware"
	"github.com/weavenav/weavenav/internal/models"
	"github.com/weavenav/weavenav/internal/registry"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger   *logging.Logger
	explorer *explorer.Explorer
	registry *registry.Manager
}

// New creates a new handler instance
func New(logger *logging.Logger, exp *explorer.Explorer, reg *registry.Manager) *Handler {
	return &Handler{
		logger:   logger,
		explorer: exp,
		registry: reg,
	}
}

// explorerError renders an explorer-layer error with its mapped status.
func (h *Handler) explorerError(c *fiber.Ctx, err error) error {
	var explorerErr *explorer.ExplorerError
	if errors.As(err, &explorerErr) {
		return c.Status(middleware.StatusForCode(explorerErr.Code)).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    explorerErr.Code,
				Message: explorerErr.Message,
				Path:    c.Path(),
				Details: explorerErr.Details,
			},
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
			Path:    c.Path(),
		},
	})
}

// badRequest renders a request-level validation failure.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: message,
			Path:    c.Path(),
		},
	})
}
