package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"eshopadmin/internal/domain"
	applog "eshopadmin/internal/log"
	"eshopadmin/internal/services"
)

type OrderHandler struct {
	Sessions *services.Sessions
}

// orderBody accepts either a customer id or the label picked from
// /choices/customers.
type orderBody struct {
	CustomerID  *int64  `json:"customer_id"`
	Customer    string  `json:"customer"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

func (h *OrderHandler) input(c *fiber.Ctx, tab *services.OrderTab) (domain.OrderInput, error) {
	var b orderBody
	if err := c.BodyParser(&b); err != nil {
		return domain.OrderInput{}, domain.Invalid("body", "malformed request: %v", err)
	}
	in := domain.OrderInput{CustomerID: b.CustomerID, Status: b.Status, TotalAmount: b.TotalAmount}
	if in.CustomerID == nil && strings.TrimSpace(b.Customer) != "" {
		id, err := tab.ResolveCustomerID(c.UserContext(), b.Customer)
		if err != nil {
			return in, domain.Invalid("customer", "no customer named %q", b.Customer)
		}
		in.CustomerID = &id
	}
	return in, nil
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	tab := tabsFor(c, h.Sessions).Orders
	var rows []domain.OrderRow
	var err error
	if q := c.Query("q"); q != "" {
		rows, err = tab.Search(c.UserContext(), q)
	} else {
		rows, err = tab.Load(c.UserContext())
	}
	if err != nil {
		return fail(c, "order.list", err)
	}
	return c.JSON(rows)
}

func (h *OrderHandler) Select(c *fiber.Ctx) error {
	var body selectBody
	if err := c.BodyParser(&body); err != nil {
		return badBody(c, "order.select", err)
	}
	tab := tabsFor(c, h.Sessions).Orders
	if err := tab.Select(body.ID); err != nil {
		return fail(c, "order.select", err)
	}
	o, _ := tab.Selected()
	return c.JSON(o)
}

func (h *OrderHandler) Add(c *fiber.Ctx) error {
	tab := tabsFor(c, h.Sessions).Orders
	in, err := h.input(c, tab)
	if err != nil {
		return fail(c, "order.add", err)
	}
	id, err := tab.Add(c.UserContext(), in)
	if err != nil {
		return fail(c, "order.add", err)
	}
	applog.Audit(c, "order.add", map[string]any{"id": id, "total_amount": in.TotalAmount})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	tab := tabsFor(c, h.Sessions).Orders
	in, err := h.input(c, tab)
	if err != nil {
		return fail(c, "order.update", err)
	}
	if err := tab.Update(c.UserContext(), in); err != nil {
		return fail(c, "order.update", err)
	}
	applog.Audit(c, "order.update", map[string]any{"total_amount": in.TotalAmount})
	return c.JSON(tab.Rows())
}

// Delete removes the selected order and all of its items.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	tab := tabsFor(c, h.Sessions).Orders
	o, _ := tab.Selected()
	if err := tab.Delete(c.UserContext()); err != nil {
		return fail(c, "order.delete", err)
	}
	applog.Audit(c, "order.delete", map[string]any{"id": o.ID})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderHandler) Items(c *fiber.Ctx) error {
	items, err := tabsFor(c, h.Sessions).Orders.Items(c.UserContext())
	if err != nil {
		return fail(c, "order.items", err)
	}
	return c.JSON(items)
}

func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in domain.OrderItemInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "order.item.add", err)
	}
	id, err := tabsFor(c, h.Sessions).Orders.AddItem(c.UserContext(), in)
	if err != nil {
		return fail(c, "order.item.add", err)
	}
	applog.Audit(c, "order.item.add", map[string]any{"id": id, "product_id": in.ProductID, "quantity": in.Quantity})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *OrderHandler) CustomerChoices(c *fiber.Ctx) error {
	out, err := tabsFor(c, h.Sessions).Orders.CustomerChoices(c.UserContext())
	if err != nil {
		return fail(c, "order.choices.customers", err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) ProductChoices(c *fiber.Ctx) error {
	out, err := tabsFor(c, h.Sessions).Orders.ProductChoices(c.UserContext())
	if err != nil {
		return fail(c, "order.choices.products", err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) Import(c *fiber.Ctx) error {
	recs, err := decodeImport(c)
	if err != nil {
		return fail(c, "order.import", err)
	}
	n, err := tabsFor(c, h.Sessions).Orders.Import(c.UserContext(), recs)
	applog.Audit(c, "order.import", map[string]any{"records": len(recs), "inserted": n})
	if err != nil {
		c.Status(statusOf(err))
		return c.JSON(fiber.Map{"inserted": n, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"inserted": n})
}

func (h *OrderHandler) Export(c *fiber.Ctx) error {
	return sendJSONExport(c, "orders", tabsFor(c, h.Sessions).Orders.Export())
}

func (h *OrderHandler) ExportXLSX(c *fiber.Ctx) error {
	return sendXLSXExport(c, "orders", tabsFor(c, h.Sessions).Orders.Export())
}

func (h *OrderHandler) ExportItems(c *fiber.Ctx) error {
	t, err := tabsFor(c, h.Sessions).Orders.ExportItems(c.UserContext())
	if err != nil {
		return fail(c, "order_items.export", err)
	}
	return sendJSONExport(c, "order_items", t)
}
