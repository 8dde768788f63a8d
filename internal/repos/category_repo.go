package repos

import (
	"context"

	"eshopadmin/internal/domain"
)

// CategoryRepo reads categories off the products table; there is no
// categories table of its own.
type CategoryRepo struct{ g *Gateway }

func NewCategoryRepo(g *Gateway) *CategoryRepo { return &CategoryRepo{g: g} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.g.Select(ctx, &out, `
  SELECT category AS name, COUNT(*) AS products
  FROM products
  WHERE COALESCE(category,'') <> ''
  GROUP BY category
  ORDER BY category
`)
	return out, err
}

// Products lists one category's products, a page at a time.
func (r *CategoryRepo) Products(ctx context.Context, category string, limit, offset int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.g.Select(ctx, &out, `
  SELECT`+productCols+`
  FROM products
  WHERE category = ?
  ORDER BY id
  LIMIT ? OFFSET ?
`, category, limit, offset)
	return out, err
}
