package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weavenav/weavenav/internal/explorer"
	"github.com/weavenav/weavenav/internal/models"
)

func nodeFromRef(ref *models.NodeRef) *explorer.Node {
	if ref == nil {
		return nil
	}
	return &explorer.Node{
		Type:         explorer.ItemType(ref.Type),
		ConnectionID: ref.ConnectionID,
		Resource:     ref.Resource,
		ItemID:       ref.ItemID,
	}
}

// Children resolves the children of a tree node. An absent node resolves
// the hierarchy root. Failures inside the tree surface as message leaves,
// so this endpoint never returns an error status for them.
func (h *Handler) Children(c *fiber.Ctx) error {
	var req models.ChildrenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body: "+err.Error())
		}
	}

	children := h.explorer.GetChildren(c.Context(), nodeFromRef(req.Node))
	return c.JSON(models.ChildrenResponse{Children: children})
}

// Parent resolves a node's structural parent. Null for roots.
func (h *Handler) Parent(c *fiber.Ctx) error {
	var req models.ChildrenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Node == nil {
		return badRequest(c, "Node is required")
	}

	parent := h.explorer.GetParent(*nodeFromRef(req.Node))
	return c.JSON(models.NodeResponse{Node: parent})
}

// Item recomputes a node's presentation state from the cache
func (h *Handler) Item(c *fiber.Ctx) error {
	var req models.ChildrenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	if req.Node == nil {
		return badRequest(c, "Node is required")
	}

	node := h.explorer.GetTreeItem(*nodeFromRef(req.Node))
	return c.JSON(models.NodeResponse{Node: &node})
}

// Refresh requests a debounced change notification
func (h *Handler) Refresh(c *fiber.Ctx) error {
	h.explorer.Refresh()
	return c.SendStatus(fiber.StatusAccepted)
}

// ForceRefresh fires the change notification immediately
func (h *Handler) ForceRefresh(c *fiber.Ctx) error {
	h.explorer.ForceRefresh()
	return c.SendStatus(fiber.StatusAccepted)
}
