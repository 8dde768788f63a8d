package services

import (
	"context"
	"errors"
	"strings"

	"eshopadmin/internal/domain"
	applog "eshopadmin/internal/log"
	"eshopadmin/internal/repos"
)

// UnknownCustomer labels an order whose customer is unset or gone.
const UnknownCustomer = "Unknown"

// Resolver turns foreign keys into display labels and back. It is read-only.
type Resolver struct {
	Customers *repos.CustomerRepo
	Products  *repos.ProductRepo
}

func NewResolver(customers *repos.CustomerRepo, products *repos.ProductRepo) *Resolver {
	return &Resolver{Customers: customers, Products: products}
}

// CustomerName never fails: lookup errors are logged and degrade to UnknownCustomer.
func (r *Resolver) CustomerName(ctx context.Context, customerID *int64) string {
	if customerID == nil {
		return UnknownCustomer
	}
	name, err := r.Customers.NameByID(ctx, *customerID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			applog.Warn("resolver.customer_name", err, map[string]any{"customer_id": *customerID})
		}
		return UnknownCustomer
	}
	return name
}

// nameMap loads every customer name once so a list of orders resolves in a
// single round trip. A failed load yields an empty map, so all names resolve
// to UnknownCustomer.
func (r *Resolver) nameMap(ctx context.Context) map[int64]string {
	names, err := r.Customers.Names(ctx)
	if err != nil {
		applog.Warn("resolver.customer_names", err, nil)
		return map[int64]string{}
	}
	m := make(map[int64]string, len(names))
	for _, n := range names {
		m[n.ID] = n.Name
	}
	return m
}

// OrderRows attaches customer labels to orders.
func (r *Resolver) OrderRows(ctx context.Context, orders []domain.Order) []domain.OrderRow {
	names := r.nameMap(ctx)
	out := make([]domain.OrderRow, 0, len(orders))
	for _, o := range orders {
		label := UnknownCustomer
		if o.CustomerID != nil {
			if n, ok := names[*o.CustomerID]; ok {
				label = n
			}
		}
		out = append(out, domain.OrderRow{Order: o, CustomerName: label})
	}
	return out
}

func (r *Resolver) CustomerChoices(ctx context.Context) ([]domain.Choice[int64], error) {
	names, err := r.Customers.Names(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Choice[int64], 0, len(names))
	for _, n := range names {
		out = append(out, domain.Choice[int64]{Label: n.Name, Payload: n.ID})
	}
	return out, nil
}

func (r *Resolver) ProductChoices(ctx context.Context) ([]domain.Choice[domain.ProductRef], error) {
	prods, err := r.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Choice[domain.ProductRef], 0, len(prods))
	for _, p := range prods {
		out = append(out, domain.Choice[domain.ProductRef]{
			Label:   p.Name,
			Payload: domain.ProductRef{ID: p.ID, Price: p.Price},
		})
	}
	return out, nil
}

// ResolveCustomerID maps a picker label back to an id. The first customer
// with that exact name wins.
func (r *Resolver) ResolveCustomerID(ctx context.Context, label string) (int64, error) {
	label = strings.TrimSpace(label)
	names, err := r.Customers.Names(ctx)
	if err != nil {
		return 0, err
	}
	for _, n := range names {
		if n.Name == label {
			return n.ID, nil
		}
	}
	return 0, domain.ErrNotFound
}
