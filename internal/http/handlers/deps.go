package handlers

import (
	"time"

	"eshopadmin/internal/config"
	"eshopadmin/internal/repos"
	"eshopadmin/internal/services"
)

type Deps struct {
	ProductHandler   *ProductHandler
	CustomerHandler  *CustomerHandler
	OrderHandler     *OrderHandler
	DashboardHandler *DashboardHandler
	CategoryHandler  *CategoryHandler
	InventoryHandler *InventoryHandler
}

func NewDeps(g *repos.Gateway, cfg config.Config) *Deps {
	sessions := services.NewSessions(g, cfg.SessionIdle)
	return &Deps{
		ProductHandler:   &ProductHandler{Sessions: sessions},
		CustomerHandler:  &CustomerHandler{Sessions: sessions},
		OrderHandler:     &OrderHandler{Sessions: sessions},
		DashboardHandler: &DashboardHandler{Dashboard: sessions.Dashboard(), Sessions: sessions, G: g, Started: time.Now()},
		CategoryHandler:  &CategoryHandler{Catalog: sessions.Catalog()},
		InventoryHandler: &InventoryHandler{Inv: sessions.Inventory()},
	}
}
