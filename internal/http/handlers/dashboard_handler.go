package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"eshopadmin/internal/repos"
	"eshopadmin/internal/services"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
	Sessions  *services.Sessions
	G         *repos.Gateway
	Started   time.Time
}

func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.Dashboard.Summary(c.UserContext())
	if err != nil {
		return fail(c, "dashboard.summary", err)
	}
	return c.JSON(sum)
}

// Home renders the overview page: store totals plus this session's tabs.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sum, err := h.Dashboard.Summary(ctx)
	if err != nil {
		return err
	}
	tabs := tabsFor(c, h.Sessions)
	if _, err := tabs.Products.Load(ctx); err != nil {
		return err
	}
	if _, err := tabs.Customers.Load(ctx); err != nil {
		return err
	}
	if _, err := tabs.Orders.Load(ctx); err != nil {
		return err
	}
	return render(c, "browser", fiber.Map{
		"Summary":   sum,
		"Products":  tabs.Products.Export(),
		"Customers": tabs.Customers.Export(),
		"Orders":    tabs.Orders.Export(),
	})
}

func (h *DashboardHandler) Healthz(c *fiber.Ctx) error {
	if err := h.G.DB().PingContext(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"uptime":   time.Since(h.Started).Round(time.Second).String(),
		"sessions": h.Sessions.Len(),
	})
}
