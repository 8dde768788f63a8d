package repos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eshopadmin/internal/domain"
	"eshopadmin/internal/repos"
)

func memGateway(t *testing.T) *repos.Gateway {
	t.Helper()
	g, err := repos.OpenDB(repos.Options{Driver: "sqlite", DSN: ":memory:", EnsureSchema: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

var redMug = domain.ProductInput{
	Name: "Red Mug", Category: "Home & Kitchen", Price: 12.50,
	StockQuantity: 5, Description: "A mug", Featured: false,
}

func TestOpenDB_BadDriverIsConnectionError(t *testing.T) {
	_, err := repos.OpenDB(repos.Options{Driver: "nope", DSN: "x"})
	require.Error(t, err)
	var cerr *domain.ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "nope", cerr.Driver)
}

func TestProductRepo_InsertThenListMatches(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(memGateway(t))

	id, err := r.Insert(ctx, redMug)
	require.NoError(t, err)
	assert.Positive(t, id)

	rows, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.Product{
		ID: id, Name: "Red Mug", Category: "Home & Kitchen", Price: 12.50,
		StockQuantity: 5, Description: "A mug", Featured: false,
	}, rows[0])
}

func TestProductRepo_SearchCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(memGateway(t))
	_, err := r.Insert(ctx, redMug)
	require.NoError(t, err)
	_, err = r.Insert(ctx, domain.ProductInput{Name: "Teapot", Price: 20, Description: "Holds a MUGFUL"})
	require.NoError(t, err)
	_, err = r.Insert(ctx, domain.ProductInput{Name: "Lamp", Price: 30})
	require.NoError(t, err)

	rows, err := r.Search(ctx, "mug")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Red Mug", rows[0].Name)
	assert.Equal(t, "Teapot", rows[1].Name)

	rows, err = r.Search(ctx, "LAMP")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	all, err := r.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := r.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProductRepo_SearchFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(memGateway(t))
	id, err := r.Insert(ctx, domain.ProductInput{Name: "Éclair Plate", Price: 9})
	require.NoError(t, err)
	_, err = r.Insert(ctx, domain.ProductInput{Name: "Eclair Tin", Price: 4})
	require.NoError(t, err)

	for _, term := range []string{"É", "é", "ÉCLAIR", "éclair", "Éclair Plate"} {
		rows, err := r.Search(ctx, term)
		require.NoError(t, err)
		require.Len(t, rows, 1, term)
		assert.Equal(t, id, rows[0].ID, term)
	}
}

func TestProductRepo_SearchWildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(memGateway(t))
	for _, name := range []string{"Red Mug", "Blue Cup", "50% off", "snake_case", `back\slash`} {
		_, err := r.Insert(ctx, domain.ProductInput{Name: name, Price: 1})
		require.NoError(t, err)
	}

	cases := map[string]string{"%": "50% off", "_": "snake_case", `\`: `back\slash`, "0%": "50% off"}
	for term, want := range cases {
		rows, err := r.Search(ctx, term)
		require.NoError(t, err)
		require.Len(t, rows, 1, term)
		assert.Equal(t, want, rows[0].Name, term)
	}
}

func TestOrderRepo_SearchWildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	g := memGateway(t)
	orders := repos.NewOrderRepo(g)
	_, err := orders.Insert(ctx, domain.OrderInput{Status: "Paid"})
	require.NoError(t, err)
	_, err = orders.Insert(ctx, domain.OrderInput{Status: "On_Hold"})
	require.NoError(t, err)

	rows, err := orders.Search(ctx, "_")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "On_Hold", rows[0].Status)
}

func TestProductRepo_UpdateOverwritesEveryField(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(memGateway(t))
	id, err := r.Insert(ctx, domain.ProductInput{
		Name: "Lamp", Category: "Lighting", Price: 30, StockQuantity: 4, Description: "Warm", Featured: true,
	})
	require.NoError(t, err)

	// only name and price supplied; the rest falls back to zero values
	require.NoError(t, r.Update(ctx, id, domain.ProductInput{Name: "Desk Lamp", Price: 35}))

	p, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", p.Name)
	assert.Equal(t, 35.0, p.Price)
	assert.Equal(t, "", p.Category)
	assert.Equal(t, 0, p.StockQuantity)
	assert.Equal(t, "", p.Description)
	assert.False(t, p.Featured)
}

func TestProductRepo_MissingRows(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(memGateway(t))

	_, err := r.Get(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Update(ctx, 99, redMug), domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, 99), domain.ErrNotFound)
}

func TestProductRepo_ConstraintViolationIsStorageError(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(memGateway(t))
	_, err := r.Insert(ctx, domain.ProductInput{Name: "Broken", Price: -1})
	var serr *domain.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "insert", serr.Op)
}

func TestProductRepo_FeaturedAndCount(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(memGateway(t))
	_, err := r.Insert(ctx, redMug)
	require.NoError(t, err)
	_, err = r.Insert(ctx, domain.ProductInput{Name: "Star", Price: 1, Featured: true})
	require.NoError(t, err)

	feat, err := r.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, feat, 1)
	assert.Equal(t, "Star", feat[0].Name)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCustomerRepo_AddressAsStructure(t *testing.T) {
	ctx := context.Background()
	r := repos.NewCustomerRepo(memGateway(t))
	addr := domain.Address{"street": "1 Main St", "city": "Springfield", "state": "IL", "zip": "62701"}
	id, err := r.Insert(ctx, domain.CustomerInput{Name: "Ann Lee", Email: "ann@example.com", Address: addr, Newsletter: true})
	require.NoError(t, err)

	c, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, addr, c.Address)
	assert.True(t, c.Newsletter)
	assert.NotEmpty(t, c.RegisteredAt)

	rows, err := r.Search(ctx, "EXAMPLE.com")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	name, err := r.NameByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", name)

	_, err = r.NameByID(ctx, id+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerRepo_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	r := repos.NewCustomerRepo(memGateway(t))
	_, err := r.Insert(ctx, domain.CustomerInput{Name: "A", Email: "dup@example.com"})
	require.NoError(t, err)
	_, err = r.Insert(ctx, domain.CustomerInput{Name: "B", Email: "dup@example.com"})
	var serr *domain.StorageError
	assert.ErrorAs(t, err, &serr)
}

func TestOrderRepo_SearchByIDCustomerAndStatus(t *testing.T) {
	ctx := context.Background()
	g := memGateway(t)
	customers := repos.NewCustomerRepo(g)
	orders := repos.NewOrderRepo(g)

	cid, err := customers.Insert(ctx, domain.CustomerInput{Name: "Bob Stone", Email: "bob@example.com"})
	require.NoError(t, err)
	o1, err := orders.Insert(ctx, domain.OrderInput{CustomerID: &cid, Status: "Shipped", TotalAmount: 10})
	require.NoError(t, err)
	o2, err := orders.Insert(ctx, domain.OrderInput{Status: "Pending", TotalAmount: 5})
	require.NoError(t, err)

	rows, err := orders.Search(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, o1, rows[0].ID)

	rows, err = orders.Search(ctx, "pend")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, o2, rows[0].ID)
	assert.Nil(t, rows[0].CustomerID)

	all, err := orders.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2, "orders without a customer still show up")
}

func TestOrderRepo_TotalsAndRecent(t *testing.T) {
	ctx := context.Background()
	orders := repos.NewOrderRepo(memGateway(t))

	total, err := orders.TotalSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	for i := 1; i <= 7; i++ {
		_, err := orders.Insert(ctx, domain.OrderInput{Status: "New", TotalAmount: float64(i)})
		require.NoError(t, err)
	}
	total, err = orders.TotalSales(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 28.0, total, 1e-9)

	recent, err := orders.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, int64(7), recent[0].ID)
}

func TestOrderItemRepo_ListByOrder(t *testing.T) {
	ctx := context.Background()
	g := memGateway(t)
	pid, err := repos.NewProductRepo(g).Insert(ctx, redMug)
	require.NoError(t, err)
	oid, err := repos.NewOrderRepo(g).Insert(ctx, domain.OrderInput{Status: "New", TotalAmount: 25})
	require.NoError(t, err)

	items := repos.NewOrderItemRepo(g)
	_, err = items.Insert(ctx, oid, domain.OrderItemInput{ProductID: pid, Quantity: 2, Price: 12.50})
	require.NoError(t, err)

	rows, err := items.ListByOrder(ctx, oid)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Red Mug", rows[0].ProductName)
	assert.InDelta(t, 25.0, rows[0].Total, 1e-9)

	// order_items.order_id must reference a live order
	_, err = items.Insert(ctx, oid+1, domain.OrderItemInput{ProductID: pid, Quantity: 1, Price: 1})
	var serr *domain.StorageError
	assert.ErrorAs(t, err, &serr)
}

func TestGateway_InTxRollsBack(t *testing.T) {
	ctx := context.Background()
	g := memGateway(t)
	products := repos.NewProductRepo(g)

	err := g.InTx(ctx, func(tx *repos.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO products(name, price) VALUES(?, ?)`, "Ghost", 1); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `INSERT INTO products(name, price) VALUES(?, ?)`, "Bad", -1)
		return err
	})
	require.Error(t, err)

	n, err := products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
