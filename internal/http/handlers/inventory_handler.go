package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"eshopadmin/internal/domain"
	"eshopadmin/internal/services"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Query("productId")), 10, 64)
	if err != nil || id <= 0 {
		return fail(c, "inventory.check", domain.Invalid("productId", "missing or not an id"))
	}
	avail, err := h.Inv.CheckAvailability(c.UserContext(), id)
	if err != nil {
		return fail(c, "inventory.check", err)
	}
	return c.JSON(avail)
}

func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.Inv.LowStock(c.UserContext())
	if err != nil {
		return fail(c, "inventory.low_stock", err)
	}
	return c.JSON(rows)
}
