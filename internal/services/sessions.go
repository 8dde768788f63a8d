package services

import (
	"sync"
	"time"

	"eshopadmin/internal/repos"
)

// Tabs is the set of browser tabs owned by one session.
type Tabs struct {
	Products  *ProductTab
	Customers *CustomerTab
	Orders    *OrderTab

	lastSeen time.Time
}

// Sessions hands every browser session its own tabs, so selections never
// leak between sessions. All tabs share the one gateway.
type Sessions struct {
	mu   sync.Mutex
	tabs map[string]*Tabs
	idle time.Duration

	products  *repos.ProductRepo
	customers *repos.CustomerRepo
	orders    *repos.OrderRepo
	svc       *OrderService
	resolver  *Resolver
	catalog   *CatalogService
	inventory *InventoryService
}

func NewSessions(g *repos.Gateway, idle time.Duration) *Sessions {
	products := repos.NewProductRepo(g)
	customers := repos.NewCustomerRepo(g)
	orders := repos.NewOrderRepo(g)
	items := repos.NewOrderItemRepo(g)
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &Sessions{
		tabs:      map[string]*Tabs{},
		idle:      idle,
		products:  products,
		customers: customers,
		orders:    orders,
		svc:       NewOrderService(g, orders, items),
		resolver:  NewResolver(customers, products),
		catalog:   NewCatalogService(repos.NewCategoryRepo(g)),
		inventory: NewInventoryService(repos.NewInventoryRepo(g)),
	}
}

// Get returns the tabs of sid, creating them on first use. Sessions idle for
// longer than the configured window are dropped on the way.
func (s *Sessions) Get(sid string) *Tabs {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, t := range s.tabs {
		if id != sid && now.Sub(t.lastSeen) > s.idle {
			delete(s.tabs, id)
		}
	}
	t, ok := s.tabs[sid]
	if !ok {
		t = &Tabs{
			Products:  NewProductTab(s.products),
			Customers: NewCustomerTab(s.customers),
			Orders:    NewOrderTab(s.orders, s.svc, s.resolver),
		}
		s.tabs[sid] = t
	}
	t.lastSeen = now
	return t
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tabs)
}

func (s *Sessions) Dashboard() *DashboardService {
	return NewDashboardService(s.products, s.customers, s.orders, s.inventory, s.resolver)
}

// Catalog and Inventory are read-only and shared by every session.
func (s *Sessions) Catalog() *CatalogService { return s.catalog }

func (s *Sessions) Inventory() *InventoryService { return s.inventory }
