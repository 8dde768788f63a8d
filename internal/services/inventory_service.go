package services

import (
	"context"
	"errors"

	"eshopadmin/internal/domain"
	"eshopadmin/internal/repos"
)

// LowStockThreshold is the stock level under which a product counts as low.
const LowStockThreshold = 5

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// StockStatus converts a quantity to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func StockStatus(qty int) string {
	switch {
	case qty >= LowStockThreshold:
		return "IN_STOCK"
	case qty > 0:
		return "LOW_STOCK"
	}
	return "OUT_OF_STOCK"
}

// CheckAvailability reports a deleted or unknown product as out of stock.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID int64) (domain.Availability, error) {
	qty, err := s.Inv.Qty(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}
	return domain.Availability{Status: StockStatus(qty), Qty: qty}, nil
}

func (s *InventoryService) LowStock(ctx context.Context) ([]repos.StockRow, error) {
	return s.Inv.Below(ctx, LowStockThreshold)
}
