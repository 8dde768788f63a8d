package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "eshopadmin/internal/log"
	"eshopadmin/internal/metrics"
)

// importLimit caps import requests per client; each one inserts a whole file.
const importLimit = 10

// Register mounts the browser API, the overview page and the probes.
func Register(app *fiber.App, d *Deps) {
	app.Get("/", d.DashboardHandler.Home)
	app.Get("/healthz", d.DashboardHandler.Healthz)
	app.Get("/metrics", metrics.Handler())

	importLimiter := limiter.New(limiter.Config{
		Max:        importLimit,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|import"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.import.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	api := app.Group("/api/v1")
	api.Get("/dashboard", d.DashboardHandler.Summary)
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/categories/:name/products", d.CategoryHandler.Products)
	api.Get("/availability", d.InventoryHandler.Check)
	api.Get("/inventory/low", d.InventoryHandler.LowStock)

	p := api.Group("/products")
	p.Get("/", d.ProductHandler.List)
	p.Post("/", d.ProductHandler.Add)
	p.Get("/featured", d.ProductHandler.Featured)
	p.Post("/select", d.ProductHandler.Select)
	p.Put("/selected", d.ProductHandler.Update)
	p.Delete("/selected", d.ProductHandler.Delete)
	p.Post("/import", importLimiter, d.ProductHandler.Import)
	p.Get("/export", d.ProductHandler.Export)
	p.Get("/export.xlsx", d.ProductHandler.ExportXLSX)

	cu := api.Group("/customers")
	cu.Get("/", d.CustomerHandler.List)
	cu.Post("/", d.CustomerHandler.Add)
	cu.Post("/select", d.CustomerHandler.Select)
	cu.Put("/selected", d.CustomerHandler.Update)
	cu.Delete("/selected", d.CustomerHandler.Delete)
	cu.Post("/import", importLimiter, d.CustomerHandler.Import)
	cu.Get("/export", d.CustomerHandler.Export)
	cu.Get("/export.xlsx", d.CustomerHandler.ExportXLSX)

	o := api.Group("/orders")
	o.Get("/", d.OrderHandler.List)
	o.Post("/", d.OrderHandler.Add)
	o.Post("/select", d.OrderHandler.Select)
	o.Put("/selected", d.OrderHandler.Update)
	o.Delete("/selected", d.OrderHandler.Delete)
	o.Get("/selected/items", d.OrderHandler.Items)
	o.Post("/selected/items", d.OrderHandler.AddItem)
	o.Get("/selected/items/export", d.OrderHandler.ExportItems)
	o.Get("/choices/customers", d.OrderHandler.CustomerChoices)
	o.Get("/choices/products", d.OrderHandler.ProductChoices)
	o.Post("/import", importLimiter, d.OrderHandler.Import)
	o.Get("/export", d.OrderHandler.Export)
	o.Get("/export.xlsx", d.OrderHandler.ExportXLSX)
}
