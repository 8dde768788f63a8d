package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eshopadmin/internal/codec"
	"eshopadmin/internal/domain"
	"eshopadmin/internal/metrics"
	"eshopadmin/internal/repos"
	"eshopadmin/internal/validate"
)

// ProductTab is the product browser: the displayed rows, the selected row
// and the operations that act on them. Safe for concurrent use.
type ProductTab struct {
	mu   sync.Mutex
	repo *repos.ProductRepo
	rows []domain.Product
	sel  Selection
}

func NewProductTab(repo *repos.ProductRepo) *ProductTab {
	return &ProductTab{repo: repo, rows: []domain.Product{}}
}

func (t *ProductTab) Load(ctx context.Context) (rows []domain.Product, err error) {
	defer observe("product", "load", time.Now(), &err)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reload(ctx, "")
}

func (t *ProductTab) Search(ctx context.Context, term string) (rows []domain.Product, err error) {
	defer observe("product", "search", time.Now(), &err)
	if term, err = validate.Term(term); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reload(ctx, term)
}

// reload replaces the displayed rows only when the read succeeds.
func (t *ProductTab) reload(ctx context.Context, term string) ([]domain.Product, error) {
	var rows []domain.Product
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
	t.sel.Reset(idsOf(rows, func(p domain.Product) int64 { return p.ID }))
	return t.snapshot(), nil
}

func (t *ProductTab) Select(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sel.Select(id)
}

func (t *ProductTab) Selected() (domain.Product, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.sel.Selected()
	if !ok {
		return domain.Product{}, false
	}
	for _, p := range t.rows {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (t *ProductTab) Add(ctx context.Context, in domain.ProductInput) (id int64, err error) {
	defer observe("product", "add", time.Now(), &err)
	if err = validate.Product(in); err != nil {
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

// Update overwrites every field of the selected product with in.
func (t *ProductTab) Update(ctx context.Context, in domain.ProductInput) (err error) {
	defer observe("product", "update", time.Now(), &err)
	if err = validate.Product(in); err != nil {
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

func (t *ProductTab) Delete(ctx context.Context) (err error) {
	defer observe("product", "delete", time.Now(), &err)
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

// Import inserts one new product per record and stops at the first bad one.
// It returns how many rows were inserted before that.
func (t *ProductTab) Import(ctx context.Context, records []codec.Record) (n int, err error) {
	defer observe("product", "import", time.Now(), &err)
	t.mu.Lock()
	defer t.mu.Unlock()
	defer func() { n, err = t.afterImport(ctx, n, err) }()

	for i, rec := range records {
		pr, err := codec.DecodeProduct(rec)
		if err != nil {
			return n, fmt.Errorf("record %d: %w", i+1, err)
		}
		in := pr.Input()
		if err := validate.Product(in); err != nil {
			return n, fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := t.repo.Insert(ctx, in); err != nil {
			return n, fmt.Errorf("record %d: %w", i+1, err)
		}
		n++
	}
	return n, nil
}

func (t *ProductTab) afterImport(ctx context.Context, n int, err error) (int, error) {
	if n == 0 {
		return n, err
	}
	if _, rerr := t.reload(ctx, ""); rerr != nil && err == nil {
		err = rerr
	}
	return n, err
}

// Export renders the displayed rows, including the selection column.
func (t *ProductTab) Export() codec.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	return codec.ProductTable(t.rows, t.sel.IsSelected)
}

func (t *ProductTab) Rows() []domain.Product {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

func (t *ProductTab) snapshot() []domain.Product {
	return append([]domain.Product{}, t.rows...)
}

// Featured reads straight from storage and does not change the displayed rows.
func (t *ProductTab) Featured(ctx context.Context) (rows []domain.Product, err error) {
	defer observe("product", "featured", time.Now(), &err)
	return t.repo.ListFeatured(ctx)
}

func observe(entity, op string, start time.Time, err *error) {
	metrics.Observe(entity, op, start, *err)
}

func idsOf[T any](rows []T, id func(T) int64) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = id(r)
	}
	return out
}
