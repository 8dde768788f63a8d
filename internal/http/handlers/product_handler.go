package handlers

import (
	"github.com/gofiber/fiber/v2"

	"eshopadmin/internal/domain"
	applog "eshopadmin/internal/log"
	"eshopadmin/internal/services"
)

type ProductHandler struct {
	Sessions *services.Sessions
}

// List loads all products, or searches them when q is set.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	tab := tabsFor(c, h.Sessions).Products
	var rows []domain.Product
	var err error
	if q := c.Query("q"); q != "" {
		rows, err = tab.Search(c.UserContext(), q)
	} else {
		rows, err = tab.Load(c.UserContext())
	}
	if err != nil {
		return fail(c, "product.list", err)
	}
	return c.JSON(rows)
}

func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	rows, err := tabsFor(c, h.Sessions).Products.Featured(c.UserContext())
	if err != nil {
		return fail(c, "product.featured", err)
	}
	return c.JSON(rows)
}

func (h *ProductHandler) Select(c *fiber.Ctx) error {
	var body selectBody
	if err := c.BodyParser(&body); err != nil {
		return badBody(c, "product.select", err)
	}
	tab := tabsFor(c, h.Sessions).Products
	if err := tab.Select(body.ID); err != nil {
		return fail(c, "product.select", err)
	}
	p, _ := tab.Selected()
	return c.JSON(p)
}

func (h *ProductHandler) Add(c *fiber.Ctx) error {
	var in domain.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "product.add", err)
	}
	id, err := tabsFor(c, h.Sessions).Products.Add(c.UserContext(), in)
	if err != nil {
		return fail(c, "product.add", err)
	}
	applog.Audit(c, "product.add", map[string]any{"id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in domain.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "product.update", err)
	}
	tab := tabsFor(c, h.Sessions).Products
	if err := tab.Update(c.UserContext(), in); err != nil {
		return fail(c, "product.update", err)
	}
	applog.Audit(c, "product.update", nil)
	return c.JSON(tab.Rows())
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	tab := tabsFor(c, h.Sessions).Products
	if err := tab.Delete(c.UserContext()); err != nil {
		return fail(c, "product.delete", err)
	}
	applog.Audit(c, "product.delete", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) Import(c *fiber.Ctx) error {
	recs, err := decodeImport(c)
	if err != nil {
		return fail(c, "product.import", err)
	}
	n, err := tabsFor(c, h.Sessions).Products.Import(c.UserContext(), recs)
	applog.Audit(c, "product.import", map[string]any{"records": len(recs), "inserted": n})
	if err != nil {
		c.Status(statusOf(err))
		return c.JSON(fiber.Map{"inserted": n, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"inserted": n})
}

func (h *ProductHandler) Export(c *fiber.Ctx) error {
	return sendJSONExport(c, "products", tabsFor(c, h.Sessions).Products.Export())
}

func (h *ProductHandler) ExportXLSX(c *fiber.Ctx) error {
	return sendXLSXExport(c, "products", tabsFor(c, h.Sessions).Products.Export())
}
