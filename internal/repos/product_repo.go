package repos

import (
	"context"

	"eshopadmin/internal/domain"
)

type ProductRepo struct{ g *Gateway }

func NewProductRepo(g *Gateway) *ProductRepo { return &ProductRepo{g: g} }

const productCols = `
    id, name, COALESCE(category,'') AS category, price,
    COALESCE(stock_quantity,0) AS stock_quantity,
    COALESCE(description,'') AS description, featured`

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.g.Select(ctx, &out, `SELECT`+productCols+` FROM products ORDER BY id`)
	return out, err
}

// Search matches name or description, case-insensitively. An empty term
// matches every row.
func (r *ProductRepo) Search(ctx context.Context, term string) ([]domain.Product, error) {
	like := likeArg(term)
	out := []domain.Product{}
	err := r.g.Select(ctx, &out, `
  SELECT`+productCols+`
  FROM products
  WHERE `+r.g.like("name")+` OR `+r.g.like("COALESCE(description,'')")+`
  ORDER BY id
`, like, like)
	return out, err
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.g.Get(ctx, &p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// ListFeatured returns the products flagged for the storefront.
func (r *ProductRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.g.Select(ctx, &out, `SELECT`+productCols+` FROM products WHERE featured = ? ORDER BY id`, true)
	return out, err
}

func (r *ProductRepo) Insert(ctx context.Context, in domain.ProductInput) (int64, error) {
	var id int64
	err := r.g.Get(ctx, &id, `
  INSERT INTO products(name, category, price, stock_quantity, description, featured)
  VALUES(?, ?, ?, ?, ?, ?)
  RETURNING id
`, in.Name, in.Category, in.Price, in.StockQuantity, in.Description, in.Featured)
	return id, err
}

// Update overwrites every writable column of the row.
func (r *ProductRepo) Update(ctx context.Context, id int64, in domain.ProductInput) error {
	res, err := r.g.Exec(ctx, `
  UPDATE products
  SET name = ?, category = ?, price = ?, stock_quantity = ?, description = ?, featured = ?
  WHERE id = ?
`, in.Name, in.Category, in.Price, in.StockQuantity, in.Description, in.Featured, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.g.Exec(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.g.Get(ctx, &n, `SELECT COUNT(*) FROM products`)
	return n, err
}
