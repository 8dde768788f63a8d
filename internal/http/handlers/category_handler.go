package handlers

import (
	"github.com/gofiber/fiber/v2"

	"eshopadmin/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, "category.list", err)
	}
	return c.JSON(cats)
}

func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	name := c.Params("name")
	products, err := h.Catalog.ListProductsByCategory(c.UserContext(), name, c.QueryInt("page", 1), c.QueryInt("size", 25))
	if err != nil {
		return fail(c, "category.products", err)
	}
	return c.JSON(products)
}
