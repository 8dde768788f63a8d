package repos

import (
	"context"

	"eshopadmin/internal/domain"
)

type CustomerRepo struct{ g *Gateway }

func NewCustomerRepo(g *Gateway) *CustomerRepo { return &CustomerRepo{g: g} }

const customerCols = `
    id, name, email, COALESCE(phone,'') AS phone, address,
    COALESCE(CAST(registration_date AS TEXT),'') AS registration_date,
    COALESCE(newsletter_opt_in, FALSE) AS newsletter_opt_in`

func (r *CustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	out := []domain.Customer{}
	err := r.g.Select(ctx, &out, `SELECT`+customerCols+` FROM customers ORDER BY id`)
	return out, err
}

// Search matches name or email, case-insensitively.
func (r *CustomerRepo) Search(ctx context.Context, term string) ([]domain.Customer, error) {
	like := likeArg(term)
	out := []domain.Customer{}
	err := r.g.Select(ctx, &out, `
  SELECT`+customerCols+`
  FROM customers
  WHERE `+r.g.like("name")+` OR `+r.g.like("email")+`
  ORDER BY id
`, like, like)
	return out, err
}

func (r *CustomerRepo) Get(ctx context.Context, id int64) (domain.Customer, error) {
	var c domain.Customer
	err := r.g.Get(ctx, &c, `SELECT`+customerCols+` FROM customers WHERE id = ?`, id)
	return c, err
}

// NameByID returns the display name of one customer, or domain.ErrNotFound.
func (r *CustomerRepo) NameByID(ctx context.Context, id int64) (string, error) {
	var name string
	err := r.g.Get(ctx, &name, `SELECT name FROM customers WHERE id = ?`, id)
	return name, err
}

type CustomerName struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Names lists (id, name) pairs in storage order, for pickers and bulk resolution.
func (r *CustomerRepo) Names(ctx context.Context) ([]CustomerName, error) {
	out := []CustomerName{}
	err := r.g.Select(ctx, &out, `SELECT id, name FROM customers ORDER BY id`)
	return out, err
}

func (r *CustomerRepo) Insert(ctx context.Context, in domain.CustomerInput) (int64, error) {
	var id int64
	err := r.g.Get(ctx, &id, `
  INSERT INTO customers(name, email, phone, address, newsletter_opt_in)
  VALUES(?, ?, ?, ?, ?)
  RETURNING id
`, in.Name, in.Email, in.Phone, in.Address, in.Newsletter)
	return id, err
}

// Update overwrites name, email, phone, address and newsletter flag.
// registration_date is set once at insert.
func (r *CustomerRepo) Update(ctx context.Context, id int64, in domain.CustomerInput) error {
	res, err := r.g.Exec(ctx, `
  UPDATE customers
  SET name = ?, email = ?, phone = ?, address = ?, newsletter_opt_in = ?
  WHERE id = ?
`, in.Name, in.Email, in.Phone, in.Address, in.Newsletter, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.g.Exec(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.g.Get(ctx, &n, `SELECT COUNT(*) FROM customers`)
	return n, err
}
