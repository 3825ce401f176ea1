package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weavenav/weavenav/internal/models"
	"github.com/weavenav/weavenav/internal/weaviate"
)

// CreateCollection creates a collection on the remote server
func (h *Handler) CreateCollection(c *fiber.Ctx) error {
	var schema weaviate.CollectionSchema
	if err := c.BodyParser(&schema); err != nil {
		return badRequest(c, "Invalid collection schema: "+err.Error())
	}

	id := c.Params("id")
	if err := h.explorer.CreateCollection(c.Context(), id, &schema); err != nil {
		return h.explorerError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ImportCollection creates a collection from a raw schema document
func (h *Handler) ImportCollection(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.explorer.ImportCollection(c.Context(), id, c.Body()); err != nil {
		return h.explorerError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// CloneCollection returns a draft schema copied from an existing
// collection. Nothing is created until the draft is submitted.
func (h *Handler) CloneCollection(c *fiber.Ctx) error {
	var req models.CloneCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	id := c.Params("id")
	source := c.Params("collection")
	draft, err := h.explorer.CloneCollection(c.Context(), id, source, req.NewName)
	if err != nil {
		return h.explorerError(c, err)
	}
	return c.JSON(draft)
}

// DeleteCollection deletes one collection
func (h *Handler) DeleteCollection(c *fiber.Ctx) error {
	id := c.Params("id")
	name := c.Params("collection")

	if err := h.explorer.DeleteCollection(c.Context(), id, name); err != nil {
		return h.explorerError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAllCollections deletes every collection on the server
func (h *Handler) DeleteAllCollections(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.explorer.DeleteAllCollections(c.Context(), id); err != nil {
		return h.explorerError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
