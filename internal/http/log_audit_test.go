package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestOrderDeleteIsAudited(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	o := decode[idBody](t, c.expect(fiber.StatusCreated, "POST", "/api/v1/orders", map[string]any{"status": "New", "total_amount": 3}))
	c.expect(fiber.StatusOK, "POST", "/api/v1/orders/select", idBody{ID: o.ID})

	entries := captureLogs(t, func() {
		c.expect(fiber.StatusNoContent, "DELETE", "/api/v1/orders/selected", nil)
	})
	e, ok := findLog(entries, "order.delete")
	if !ok {
		t.Fatalf("no audit entry: %+v", entries)
	}
	if e.Kind != "audit" || e.Fields["id"] != float64(o.ID) {
		t.Fatalf("audit entry: %+v", e)
	}
}

func TestValidationFailureIsSecurityLogged(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	entries := captureLogs(t, func() {
		c.expect(fiber.StatusBadRequest, "POST", "/api/v1/customers", map[string]any{"name": "Ann", "email": "nope"})
	})
	e, ok := findLog(entries, "validation.fail")
	if !ok {
		t.Fatalf("no security entry: %+v", entries)
	}
	if e.Kind != "security" || e.Level != "warn" || e.Fields["action"] != "customer.add" || e.Fields["field"] != "email" {
		t.Fatalf("security entry: %+v", e)
	}
}

func TestRejectedSelectionIsNotAudited(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	entries := captureLogs(t, func() {
		c.expect(fiber.StatusConflict, "DELETE", "/api/v1/products/selected", nil)
	})
	if _, ok := findLog(entries, "product.delete"); ok {
		t.Fatal("a rejected delete must not be audited")
	}
	if _, ok := findLog(entries, "product.delete.rejected"); !ok {
		t.Fatalf("rejection not logged: %+v", entries)
	}
}
