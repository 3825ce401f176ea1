package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weavenav/weavenav/internal/models"
)

// CreateAlias maps an alias onto a collection
func (h *Handler) CreateAlias(c *fiber.Ctx) error {
	var req models.CreateAliasRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	id := c.Params("id")
	if err := h.explorer.CreateAlias(c.Context(), id, req.Alias, req.Collection); err != nil {
		return h.explorerError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// DeleteAlias removes an alias
func (h *Handler) DeleteAlias(c *fiber.Ctx) error {
	id := c.Params("id")
	alias := c.Params("alias")

	if err := h.explorer.DeleteAlias(c.Context(), id, alias); err != nil {
		return h.explorerError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
