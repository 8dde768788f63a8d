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

type CustomerTab struct {
	mu   sync.Mutex
	repo *repos.CustomerRepo
	rows []domain.Customer
	sel  Selection
}

func NewCustomerTab(repo *repos.CustomerRepo) *CustomerTab {
	return &CustomerTab{repo: repo, rows: []domain.Customer{}}
}

func (t *CustomerTab) Load(ctx context.Context) (rows []domain.Customer, err error) {
	defer observe("customer", "load", time.Now(), &err)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reload(ctx, "")
}

func (t *CustomerTab) Search(ctx context.Context, term string) (rows []domain.Customer, err error) {
	defer observe("customer", "search", time.Now(), &err)
	if term, err = validate.Term(term); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reload(ctx, term)
}

func (t *CustomerTab) reload(ctx context.Context, term string) ([]domain.Customer, error) {
	var rows []domain.Customer
	var err error
	if term == "" {
		rows, err = t.repo.List(ctx)
	} else {
		rows, err = t.repo.Search(ctx, term)
	}
	if err != nil {
		return nil, err
	}
	t.rows = rows
	t.sel.Reset(idsOf(rows, func(c domain.Customer) int64 { return c.ID }))
	return append([]domain.Customer{}, rows...), nil
}

func (t *CustomerTab) Select(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sel.Select(id)
}

func (t *CustomerTab) Selected() (domain.Customer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.sel.Selected()
	if !ok {
		return domain.Customer{}, false
	}
	for _, c := range t.rows {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Customer{}, false
}

func (t *CustomerTab) Add(ctx context.Context, in domain.CustomerInput) (id int64, err error) {
	defer observe("customer", "add", time.Now(), &err)
	if err = validate.Customer(in); err != nil {
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

// Update overwrites the selected customer; the registration date is kept.
func (t *CustomerTab) Update(ctx context.Context, in domain.CustomerInput) (err error) {
	defer observe("customer", "update", time.Now(), &err)
	if err = validate.Customer(in); err != nil {
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

// Delete removes the selected customer. Their orders stay and show as
// UnknownCustomer from then on.
func (t *CustomerTab) Delete(ctx context.Context) (err error) {
	defer observe("customer", "delete", time.Now(), &err)
	t.mu.Lock()
	defer t.mu.Unlock()
	id, err := t.sel.target()
	if err != nil {
		return err
	}
	if err = t.repo.Delete(ctx, id); err != nil {
		return err
	}
	_, err = t.reload(ctx, "")
	return err
}

func (t *CustomerTab) Import(ctx context.Context, records []codec.Record) (n int, err error) {
	defer observe("customer", "import", time.Now(), &err)
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
		cr, derr := codec.DecodeCustomer(rec)
		if derr != nil {
			return n, fmt.Errorf("record %d: %w", i+1, derr)
		}
		in := cr.Input()
		if verr := validate.Customer(in); verr != nil {
			return n, fmt.Errorf("record %d: %w", i+1, verr)
		}
		if _, ierr := t.repo.Insert(ctx, in); ierr != nil {
			return n, fmt.Errorf("record %d: %w", i+1, ierr)
		}
		n++
	}
	return n, nil
}

func (t *CustomerTab) Export() codec.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	return codec.CustomerTable(t.rows, t.sel.IsSelected)
}

func (t *CustomerTab) Rows() []domain.Customer {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Customer{}, t.rows...)
}
