package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eshopadmin/internal/codec"
	"eshopadmin/internal/domain"
	"eshopadmin/internal/repos"
	"eshopadmin/internal/validate"
)

// OrderTab browses orders with their customer resolved to a name. Deleting
// an order goes through the cascade in OrderService.
type OrderTab struct {
	mu       sync.Mutex
	repo     *repos.OrderRepo
	svc      *OrderService
	resolver *Resolver
	rows     []domain.OrderRow
	sel      Selection
}

func NewOrderTab(repo *repos.OrderRepo, svc *OrderService, resolver *Resolver) *OrderTab {
	return &OrderTab{repo: repo, svc: svc, resolver: resolver, rows: []domain.OrderRow{}}
}

func (t *OrderTab) Load(ctx context.Context) (rows []domain.OrderRow, err error) {
	defer observe("order", "load", time.Now(), &err)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reload(ctx, "")
}

// Search matches the order id, the customer's name or the status.
func (t *OrderTab) Search(ctx context.Context, term string) (rows []domain.OrderRow, err error) {
	defer observe("order", "search", time.Now(), &err)
	if term, err = validate.Term(term); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reload(ctx, term)
}

func (t *OrderTab) reload(ctx context.Context, term string) ([]domain.OrderRow, error) {
	var orders []domain.Order
	var err error
	if term == "" {
		orders, err = t.repo.List(ctx)
	} else {
		orders, err = t.repo.Search(ctx, term)
	}
	if err != nil {
		return nil, err
	}
	t.rows = t.resolver.OrderRows(ctx, orders)
	t.sel.Reset(idsOf(t.rows, func(o domain.OrderRow) int64 { return o.ID }))
	return append([]domain.OrderRow{}, t.rows...), nil
}

func (t *OrderTab) Select(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sel.Select(id)
}

func (t *OrderTab) Selected() (domain.OrderRow, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.sel.Selected()
	if !ok {
		return domain.OrderRow{}, false
	}
	for _, o := range t.rows {
		if o.ID == id {
			return o, true
		}
	}
	return domain.OrderRow{}, false
}

// Add stores total_amount as given; it is never derived from items.
func (t *OrderTab) Add(ctx context.Context, in domain.OrderInput) (id int64, err error) {
	defer observe("order", "add", time.Now(), &err)
	if err = validate.Order(in); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, err = t.repo.Insert(ctx, in); err != nil {
		return 0, err
	}
	_, err = t.reload(ctx, "")
	return id, err
}

func (t *OrderTab) Update(ctx context.Context, in domain.OrderInput) (err error) {
	defer observe("order", "update", time.Now(), &err)
	if err = validate.Order(in); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	id, err := t.sel.target()
	if err != nil {
		return err
	}
	if err = t.repo.Update(ctx, id, in); err != nil {
		return err
	}
	_, err = t.reload(ctx, "")
	return err
}

// Delete removes the selected order together with its items.
func (t *OrderTab) Delete(ctx context.Context) (err error) {
	defer observe("order", "delete", time.Now(), &err)
	t.mu.Lock()
	defer t.mu.Unlock()
	id, err := t.sel.target()
	if err != nil {
		return err
	}
	if err = t.svc.DeleteOrder(ctx, id); err != nil {
		return err
	}
	_, err = t.reload(ctx, "")
	return err
}

// Items lists the lines of the selected order.
func (t *OrderTab) Items(ctx context.Context) (items []domain.OrderItemRow, err error) {
	defer observe("order_item", "list", time.Now(), &err)
	t.mu.Lock()
	defer t.mu.Unlock()
	id, err := t.sel.target()
	if err != nil {
		return nil, err
	}
	return t.svc.ListItems(ctx, id)
}

// AddItem adds a line to the selected order. Rows and selection are kept so
// several items can be added in a row.
func (t *OrderTab) AddItem(ctx context.Context, in domain.OrderItemInput) (id int64, err error) {
	defer observe("order_item", "add", time.Now(), &err)
	if err = validate.OrderItem(in); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	orderID, err := t.sel.target()
	if err != nil {
		return 0, err
	}
	return t.svc.AddItem(ctx, orderID, in)
}

func (t *OrderTab) CustomerChoices(ctx context.Context) ([]domain.Choice[int64], error) {
	return t.resolver.CustomerChoices(ctx)
}

func (t *OrderTab) ProductChoices(ctx context.Context) ([]domain.Choice[domain.ProductRef], error) {
	return t.resolver.ProductChoices(ctx)
}

// Import inserts one order per record. Exported files carry no "Customer ID"
// column, so re-imported orders have no customer.
func (t *OrderTab) Import(ctx context.Context, records []codec.Record) (n int, err error) {
	defer observe("order", "import", time.Now(), &err)
	t.mu.Lock()
	defer t.mu.Unlock()
	defer func() {
		if n > 0 {
			if _, rerr := t.reload(ctx, ""); rerr != nil && err == nil {
				err = rerr
			}
		}
	}()

	for i, rec := range records {
		in, derr := decodeOrder(rec)
		if derr != nil {
			return n, fmt.Errorf("record %d: %w", i+1, derr)
		}
		if _, ierr := t.repo.Insert(ctx, in); ierr != nil {
			return n, fmt.Errorf("record %d: %w", i+1, ierr)
		}
		n++
	}
	return n, nil
}

func decodeOrder(rec codec.Record) (domain.OrderInput, error) {
	or, err := codec.DecodeOrder(rec)
	if err != nil {
		return domain.OrderInput{}, err
	}
	in, err := or.Input()
	if err != nil {
		return in, err
	}
	return in, validate.Order(in)
}

func (t *OrderTab) Export() codec.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	return codec.OrderTable(t.rows, t.sel.IsSelected)
}

// ExportItems renders the selected order's lines.
func (t *OrderTab) ExportItems(ctx context.Context) (codec.Table, error) {
	items, err := t.Items(ctx)
	if err != nil {
		return codec.Table{}, err
	}
	return codec.OrderItemTable(items), nil
}

func (t *OrderTab) Rows() []domain.OrderRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.OrderRow{}, t.rows...)
}

func (t *OrderTab) ResolveCustomerID(ctx context.Context, label string) (int64, error) {
	return t.resolver.ResolveCustomerID(ctx, label)
}
