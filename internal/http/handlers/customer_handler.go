package handlers

import (
	"github.com/gofiber/fiber/v2"

	"eshopadmin/internal/domain"
	applog "eshopadmin/internal/log"
	"eshopadmin/internal/services"
)

type CustomerHandler struct {
	Sessions *services.Sessions
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	tab := tabsFor(c, h.Sessions).Customers
	var rows []domain.Customer
	var err error
	if q := c.Query("q"); q != "" {
		rows, err = tab.Search(c.UserContext(), q)
	} else {
		rows, err = tab.Load(c.UserContext())
	}
	if err != nil {
		return fail(c, "customer.list", err)
	}
	return c.JSON(rows)
}

func (h *CustomerHandler) Select(c *fiber.Ctx) error {
	var body selectBody
	if err := c.BodyParser(&body); err != nil {
		return badBody(c, "customer.select", err)
	}
	tab := tabsFor(c, h.Sessions).Customers
	if err := tab.Select(body.ID); err != nil {
		return fail(c, "customer.select", err)
	}
	cu, _ := tab.Selected()
	return c.JSON(cu)
}

func (h *CustomerHandler) Add(c *fiber.Ctx) error {
	var in domain.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "customer.add", err)
	}
	id, err := tabsFor(c, h.Sessions).Customers.Add(c.UserContext(), in)
	if err != nil {
		return fail(c, "customer.add", err)
	}
	applog.Audit(c, "customer.add", map[string]any{"id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in domain.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "customer.update", err)
	}
	tab := tabsFor(c, h.Sessions).Customers
	if err := tab.Update(c.UserContext(), in); err != nil {
		return fail(c, "customer.update", err)
	}
	applog.Audit(c, "customer.update", nil)
	return c.JSON(tab.Rows())
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := tabsFor(c, h.Sessions).Customers.Delete(c.UserContext()); err != nil {
		return fail(c, "customer.delete", err)
	}
	applog.Audit(c, "customer.delete", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CustomerHandler) Import(c *fiber.Ctx) error {
	recs, err := decodeImport(c)
	if err != nil {
		return fail(c, "customer.import", err)
	}
	n, err := tabsFor(c, h.Sessions).Customers.Import(c.UserContext(), recs)
	applog.Audit(c, "customer.import", map[string]any{"records": len(recs), "inserted": n})
	if err != nil {
		c.Status(statusOf(err))
		return c.JSON(fiber.Map{"inserted": n, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"inserted": n})
}

func (h *CustomerHandler) Export(c *fiber.Ctx) error {
	return sendJSONExport(c, "customers", tabsFor(c, h.Sessions).Customers.Export())
}

func (h *CustomerHandler) ExportXLSX(c *fiber.Ctx) error {
	return sendXLSXExport(c, "customers", tabsFor(c, h.Sessions).Customers.Export())
}
