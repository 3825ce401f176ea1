package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/weavenav/weavenav/internal/models"
	"github.com/weavenav/weavenav/internal/registry"
)

func connectionResponse(summary registry.ConnectionSummary) models.ConnectionResponse {
	return models.ConnectionResponse{
		ID:       summary.ID,
		Name:     summary.Name,
		Endpoint: summary.Endpoint,
		Status:   string(summary.Status),
		LastUsed: summary.LastUsed.Format(time.RFC3339),
	}
}

// ListConnections lists all known connections, most recently used first
func (h *Handler) ListConnections(c *fiber.Ctx) error {
	summaries := h.registry.List()

	response := models.ConnectionListResponse{
		Connections: make([]models.ConnectionResponse, 0, len(summaries)),
	}
	for _, summary := range summaries {
		response.Connections = append(response.Connections, connectionResponse(summary))
	}
	return c.JSON(response)
}

// CreateConnection registers a new connection definition
func (h *Handler) CreateConnection(c *fiber.Ctx) error {
	var req models.CreateConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Name == "" {
		return badRequest(c, "Connection name is required")
	}
	if req.Endpoint == "" {
		return badRequest(c, "Connection endpoint is required")
	}

	summary, err := h.registry.Add(c.Context(), req.Name, req.Endpoint, req.APIKey)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CONNECTION_EXISTS",
				Message: err.Error(),
				Path:    c.Path(),
			},
		})
	}

	return c.Status(fiber.StatusCreated).JSON(connectionResponse(summary))
}

// GetConnection returns one connection definition
func (h *Handler) GetConnection(c *fiber.Ctx) error {
	id := c.Params("id")
	summary, exists := h.registry.Get(id)
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "Connection not found",
				Path:    c.Path(),
			},
		})
	}
	return c.JSON(connectionResponse(summary))
}

// DeleteConnection removes a connection definition
func (h *Handler) DeleteConnection(c *fiber.Ctx) error {
	id := c.Params("id")

	// Drop the client and cached state before forgetting the definition.
	if h.registry.IsConnected(id) {
		if err := h.explorer.Disconnect(id); err != nil {
			return h.explorerError(c, err)
		}
	}

	if err := h.registry.Remove(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: err.Error(),
				Path:    c.Path(),
			},
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConnectConnection establishes the connection and primes its cache
func (h *Handler) ConnectConnection(c *fiber.Ctx) error {
	id := c.Params("id")
	batch := c.QueryBool("batch")

	if err := h.explorer.Connect(c.Context(), id, batch); err != nil {
		return h.explorerError(c, err)
	}

	summary, _ := h.registry.Get(id)
	return c.JSON(connectionResponse(summary))
}

// DisconnectConnection drops the connection and clears its cache
func (h *Handler) DisconnectConnection(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.explorer.Disconnect(id); err != nil {
		return h.explorerError(c, err)
	}

	summary, _ := h.registry.Get(id)
	return c.JSON(connectionResponse(summary))
}
