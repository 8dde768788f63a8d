package repos

import "context"

// InventoryRepo reads stock levels from products.stock_quantity.
type InventoryRepo struct{ g *Gateway }

func NewInventoryRepo(g *Gateway) *InventoryRepo { return &InventoryRepo{g: g} }

type StockRow struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Stock int    `db:"stock_quantity" json:"stock_quantity"`
}

// Qty returns the stock of one product, or domain.ErrNotFound.
func (r *InventoryRepo) Qty(ctx context.Context, productID int64) (int, error) {
	var qty int
	err := r.g.Get(ctx, &qty, `SELECT COALESCE(stock_quantity,0) FROM products WHERE id = ?`, productID)
	return qty, err
}

// Below lists products whose stock is under threshold, lowest first.
func (r *InventoryRepo) Below(ctx context.Context, threshold int) ([]StockRow, error) {
	out := []StockRow{}
	err := r.g.Select(ctx, &out, `
  SELECT id, name, COALESCE(stock_quantity,0) AS stock_quantity
  FROM products
  WHERE COALESCE(stock_quantity,0) < ?
  ORDER BY stock_quantity, id
`, threshold)
	return out, err
}
