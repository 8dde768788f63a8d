package repos

import (
	"context"

	"eshopadmin/internal/domain"
)

type OrderItemRepo struct{ g *Gateway }

func NewOrderItemRepo(g *Gateway) *OrderItemRepo { return &OrderItemRepo{g: g} }

// ListByOrder returns the items of one order with product name and line total.
func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID int64) ([]domain.OrderItemRow, error) {
	out := []domain.OrderItemRow{}
	err := r.g.Select(ctx, &out, `
  SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
         p.name AS product_name, (oi.quantity * oi.price) AS total
  FROM order_items oi
  JOIN products p ON p.id = oi.product_id
  WHERE oi.order_id = ?
  ORDER BY oi.id
`, orderID)
	return out, err
}

func (r *OrderItemRepo) Insert(ctx context.Context, orderID int64, in domain.OrderItemInput) (int64, error) {
	var id int64
	err := r.g.Get(ctx, &id, `
  INSERT INTO order_items(order_id, product_id, quantity, price)
  VALUES(?, ?, ?, ?)
  RETURNING id
`, orderID, in.ProductID, in.Quantity, in.Price)
	return id, err
}

// CountByOrder is used to verify the cascade left nothing behind.
func (r *OrderItemRepo) CountByOrder(ctx context.Context, orderID int64) (int, error) {
	var n int
	err := r.g.Get(ctx, &n, `SELECT COUNT(*) FROM order_items WHERE order_id = ?`, orderID)
	return n, err
}

// DeleteByOrderTx removes every item of an order inside an open transaction.
// Zero rows is fine: an order may have no items.
func (r *OrderItemRepo) DeleteByOrderTx(ctx context.Context, tx *Tx, orderID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = ?`, orderID)
	return err
}
