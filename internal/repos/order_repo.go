package repos

import (
	"context"

	"eshopadmin/internal/domain"
)

type OrderRepo struct{ g *Gateway }

func NewOrderRepo(g *Gateway) *OrderRepo { return &OrderRepo{g: g} }

const orderCols = `
    o.id, o.customer_id, COALESCE(o.status,'') AS status, o.total_amount,
    COALESCE(CAST(o.created_at AS TEXT),'') AS created_at`

func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.g.Select(ctx, &out, `SELECT`+orderCols+` FROM orders o ORDER BY o.id`)
	return out, err
}

// Search matches the order id (as text), the customer's name or the status.
// The join is LEFT so orders without a customer still match on id or status.
func (r *OrderRepo) Search(ctx context.Context, term string) ([]domain.Order, error) {
	like := likeArg(term)
	out := []domain.Order{}
	err := r.g.Select(ctx, &out, `
  SELECT`+orderCols+`
  FROM orders o
  LEFT JOIN customers c ON c.id = o.customer_id
  WHERE `+r.g.like("CAST(o.id AS TEXT)")+`
     OR `+r.g.like("COALESCE(c.name,'')")+`
     OR `+r.g.like("COALESCE(o.status,'')")+`
  ORDER BY o.id
`, like, like, like)
	return out, err
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := r.g.Get(ctx, &o, `SELECT`+orderCols+` FROM orders o WHERE o.id = ?`, id)
	return o, err
}

// Insert creates an order header. total_amount is stored exactly as given.
func (r *OrderRepo) Insert(ctx context.Context, in domain.OrderInput) (int64, error) {
	var id int64
	err := r.g.Get(ctx, &id, `
  INSERT INTO orders(customer_id, status, total_amount)
  VALUES(?, ?, ?)
  RETURNING id
`, in.CustomerID, in.Status, in.TotalAmount)
	return id, err
}

func (r *OrderRepo) Update(ctx context.Context, id int64, in domain.OrderInput) error {
	res, err := r.g.Exec(ctx, `
  UPDATE orders SET customer_id = ?, status = ?, total_amount = ? WHERE id = ?
`, in.CustomerID, in.Status, in.TotalAmount, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// DeleteTx removes the order header inside an open transaction. Items must
// already be gone (see OrderItemRepo.DeleteByOrderTx).
func (r *OrderRepo) DeleteTx(ctx context.Context, tx *Tx, id int64) error {
	res, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.g.Get(ctx, &n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

// TotalSales sums total_amount over all orders, 0 when there are none.
func (r *OrderRepo) TotalSales(ctx context.Context) (float64, error) {
	var total float64
	err := r.g.Get(ctx, &total, `SELECT COALESCE(SUM(total_amount), 0) FROM orders`)
	return total, err
}

// Recent returns the newest orders first.
func (r *OrderRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	out := []domain.Order{}
	err := r.g.Select(ctx, &out, `
  SELECT`+orderCols+`
  FROM orders o
  ORDER BY o.created_at DESC, o.id DESC
  LIMIT ?
`, limit)
	return out, err
}
