package services

import (
	"context"
	"fmt"

	"eshopadmin/internal/domain"
	"eshopadmin/internal/repos"
	"eshopadmin/internal/validate"
)

type OrderService struct {
	G      *repos.Gateway
	Orders *repos.OrderRepo
	Items  *repos.OrderItemRepo
}

func NewOrderService(g *repos.Gateway, orders *repos.OrderRepo, items *repos.OrderItemRepo) *OrderService {
	return &OrderService{G: g, Orders: orders, Items: items}
}

// DeleteOrder removes the order's items and then the order, as one
// transaction. If either statement fails nothing is removed.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	return s.G.InTx(ctx, func(tx *repos.Tx) error {
		if err := s.Items.DeleteByOrderTx(ctx, tx, orderID); err != nil {
			return fmt.Errorf("delete items of order %d: %w", orderID, err)
		}
		if err := s.Orders.DeleteTx(ctx, tx, orderID); err != nil {
			return fmt.Errorf("delete order %d: %w", orderID, err)
		}
		return nil
	})
}

// AddItem validates before touching storage. The order's total_amount is
// left as it is.
func (s *OrderService) AddItem(ctx context.Context, orderID int64, in domain.OrderItemInput) (int64, error) {
	if err := validate.OrderItem(in); err != nil {
		return 0, err
	}
	if _, err := s.Orders.Get(ctx, orderID); err != nil {
		return 0, err
	}
	return s.Items.Insert(ctx, orderID, in)
}

func (s *OrderService) ListItems(ctx context.Context, orderID int64) ([]domain.OrderItemRow, error) {
	return s.Items.ListByOrder(ctx, orderID)
}
