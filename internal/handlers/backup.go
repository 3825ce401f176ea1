package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weavenav/weavenav/internal/models"
)

// CreateBackup starts a backup job
func (h *Handler) CreateBackup(c *fiber.Ctx) error {
	var req models.CreateBackupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Backend == "" {
		return badRequest(c, "Backup backend is required")
	}

	id := c.Params("id")
	if err := h.explorer.CreateBackup(c.Context(), id, req.Backend, req.ID, req.Collections); err != nil {
		return h.explorerError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// RestoreBackup starts a restore job
func (h *Handler) RestoreBackup(c *fiber.Ctx) error {
	id := c.Params("id")
	backend := c.Params("backend")
	backupID := c.Params("backup")

	if err := h.explorer.RestoreBackup(c.Context(), id, backend, backupID); err != nil {
		return h.explorerError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}
