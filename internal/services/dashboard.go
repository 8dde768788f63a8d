package services

import (
	"context"
	"time"

	"eshopadmin/internal/domain"
	"eshopadmin/internal/repos"
)

const recentOrders = 5

type DashboardService struct {
	Products  *repos.ProductRepo
	Customers *repos.CustomerRepo
	Orders    *repos.OrderRepo
	Inventory *InventoryService
	Resolver  *Resolver
}

func NewDashboardService(p *repos.ProductRepo, c *repos.CustomerRepo, o *repos.OrderRepo, inv *InventoryService, r *Resolver) *DashboardService {
	return &DashboardService{Products: p, Customers: c, Orders: o, Inventory: inv, Resolver: r}
}

// Summary gathers store-wide counts, total sales, the number of products
// running low and the latest orders.
func (s *DashboardService) Summary(ctx context.Context) (sum domain.Summary, err error) {
	defer observe("dashboard", "summary", time.Now(), &err)

	if sum.TotalProducts, err = s.Products.Count(ctx); err != nil {
		return sum, err
	}
	if sum.TotalCustomers, err = s.Customers.Count(ctx); err != nil {
		return sum, err
	}
	if sum.TotalOrders, err = s.Orders.Count(ctx); err != nil {
		return sum, err
	}
	if sum.TotalSales, err = s.Orders.TotalSales(ctx); err != nil {
		return sum, err
	}
	low, err := s.Inventory.LowStock(ctx)
	if err != nil {
		return sum, err
	}
	sum.LowStock = len(low)
	recent, err := s.Orders.Recent(ctx, recentOrders)
	if err != nil {
		return sum, err
	}
	sum.RecentOrders = s.Resolver.OrderRows(ctx, recent)
	return sum, nil
}
