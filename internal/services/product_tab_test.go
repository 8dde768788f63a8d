package services_test

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eshopadmin/internal/codec"
	"eshopadmin/internal/domain"
)

func TestProductTab_UpdateOverwritesUnsuppliedFields(t *testing.T) {
	ctx := context.Background()
	tb, _ := tabs(t)

	id, err := tb.Products.Add(ctx, domain.ProductInput{
		Name: "Lamp", Category: "Lighting", Price: 30, StockQuantity: 4, Description: "Warm", Featured: true,
	})
	require.NoError(t, err)
	require.NoError(t, tb.Products.Select(id))

	// the form only carried name and price
	require.NoError(t, tb.Products.Update(ctx, domain.ProductInput{Name: "Desk Lamp", Price: 35}))

	rows := tb.Products.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, domain.Product{ID: id, Name: "Desk Lamp", Price: 35}, rows[0])
}

func TestProductTab_SelectionFollowsReloads(t *testing.T) {
	ctx := context.Background()
	tb, _ := tabs(t)

	a, err := tb.Products.Add(ctx, domain.ProductInput{Name: "Alpha", Price: 1})
	require.NoError(t, err)
	b, err := tb.Products.Add(ctx, domain.ProductInput{Name: "Beta", Price: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, tb.Products.Update(ctx, redMug), domain.ErrNoSelection)
	assert.ErrorIs(t, tb.Products.Delete(ctx), domain.ErrNoSelection)
	assert.ErrorIs(t, tb.Products.Select(b+100), domain.ErrNotDisplayed)

	require.NoError(t, tb.Products.Select(a))
	require.NoError(t, tb.Products.Select(b))
	sel, ok := tb.Products.Selected()
	require.True(t, ok)
	assert.Equal(t, "Beta", sel.Name, "the last pick replaces the previous one")

	_, err = tb.Products.Search(ctx, "alpha")
	require.NoError(t, err)
	_, ok = tb.Products.Selected()
	assert.False(t, ok, "search clears the selection")
	assert.ErrorIs(t, tb.Products.Select(b), domain.ErrNotDisplayed, "Beta is filtered out")

	require.NoError(t, tb.Products.Select(a))
	require.NoError(t, tb.Products.Delete(ctx))
	rows := tb.Products.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, b, rows[0].ID)
}

func TestProductTab_FailureKeepsDisplayedRows(t *testing.T) {
	ctx := context.Background()
	tb, g := tabs(t)

	_, err := tb.Products.Add(ctx, redMug)
	require.NoError(t, err)
	before := tb.Products.Rows()

	_, err = tb.Products.Add(ctx, domain.ProductInput{Name: "Bad", Price: -1})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price", verr.Field)

	require.NoError(t, g.Close())
	_, err = tb.Products.Load(ctx)
	var serr *domain.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, before, tb.Products.Rows())
}

func TestProductTab_SearchLiteralAndTooLong(t *testing.T) {
	ctx := context.Background()
	tb, _ := tabs(t)

	for _, in := range []domain.ProductInput{redMug, {Name: "50% off", Price: 1}, {Name: "Crème Brûlée Dish", Price: 6}} {
		_, err := tb.Products.Add(ctx, in)
		require.NoError(t, err)
	}

	rows, err := tb.Products.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "50% off", rows[0].Name)

	rows, err = tb.Products.Search(ctx, "BRÛLÉE")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Crème Brûlée Dish", rows[0].Name)

	_, err = tb.Products.Search(ctx, strings.Repeat("a", 101))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, rows, tb.Products.Rows(), "a rejected search keeps the displayed rows")
}

func TestProductTab_ExportImportDuplicatesWithNewIDs(t *testing.T) {
	ctx := context.Background()
	tb, _ := tabs(t)

	_, err := tb.Products.Add(ctx, redMug)
	require.NoError(t, err)
	_, err = tb.Products.Add(ctx, domain.ProductInput{Name: "Star", Category: "Toys", Price: 3.25, StockQuantity: 9, Featured: true})
	require.NoError(t, err)
	original := tb.Products.Rows()

	var buf bytes.Buffer
	require.NoError(t, codec.EncodeJSON(&buf, codec.Export(tb.Products.Export())))
	recs, err := codec.DecodeRecords(&buf)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	n, err := tb.Products.Import(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows := tb.Products.Rows()
	require.Len(t, rows, 4)
	ids := map[int64]bool{}
	for _, r := range rows {
		assert.False(t, ids[r.ID], "ids are distinct")
		ids[r.ID] = true
	}
	for i, o := range original {
		copied := rows[i+2]
		assert.NotEqual(t, o.ID, copied.ID)
		copied.ID = o.ID
		assert.Equal(t, o, copied)
	}
}

func TestProductTab_ImportDefaultsAndStopsAtBadRecord(t *testing.T) {
	ctx := context.Background()
	tb, _ := tabs(t)

	recs, err := codec.DecodeRecords(bytes.NewBufferString(`[
		{"Name": "Bare"},
		{"Name": "Priced", "Price": 4.5, "Stock": "3", "Featured": "true"},
		{"Name": "Broken", "Price": "cheap"},
		{"Name": "Never"}
	]`))
	require.NoError(t, err)

	n, err := tb.Products.Import(ctx, recs)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, codec.HeaderPrice, verr.Field)
	assert.Contains(t, err.Error(), "record 3")
	assert.Equal(t, 2, n)

	rows := tb.Products.Rows()
	require.Len(t, rows, 2, "rows inserted before the failure stay and are shown")
	assert.Equal(t, domain.Product{ID: rows[0].ID, Name: "Bare"}, rows[0])
	assert.Equal(t, 4.5, rows[1].Price)
	assert.Equal(t, 3, rows[1].StockQuantity)
	assert.True(t, rows[1].Featured)
}

func TestProductTab_ExportMarksSelectedRow(t *testing.T) {
	ctx := context.Background()
	tb, _ := tabs(t)

	a, err := tb.Products.Add(ctx, redMug)
	require.NoError(t, err)
	_, err = tb.Products.Add(ctx, domain.ProductInput{Name: "Other", Price: 1})
	require.NoError(t, err)
	require.NoError(t, tb.Products.Select(a))

	recs := codec.Export(tb.Products.Export())
	require.Len(t, recs, 2)
	assert.Equal(t, codec.ProductHeaders, recs[0].Keys)

	sel0, _ := recs[0].Get(codec.HeaderSelect)
	sel1, _ := recs[1].Get(codec.HeaderSelect)
	assert.Equal(t, "true", *sel0.(*string))
	assert.Equal(t, "false", *sel1.(*string))

	desc, ok := recs[1].Get(codec.HeaderDescription)
	require.True(t, ok, "every header is present")
	assert.Nil(t, desc.(*string), "empty cells export as null")
}

func TestCustomerTab_CRUDAndReimportConflict(t *testing.T) {
	ctx := context.Background()
	tb, _ := tabs(t)

	addr := domain.Address{"street": "1 Main St", "city": "Springfield", "state": "IL", "zip": "62701"}
	id, err := tb.Customers.Add(ctx, domain.CustomerInput{
		Name: "Ann Lee", Email: "ann@example.com", Phone: "555-0100", Address: addr, Newsletter: true,
	})
	require.NoError(t, err)

	_, err = tb.Customers.Add(ctx, domain.CustomerInput{Name: "Bad", Email: "not-an-email"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	found, err := tb.Customers.Search(ctx, "ANN@")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, addr, found[0].Address)

	require.NoError(t, tb.Customers.Select(id))
	require.NoError(t, tb.Customers.Update(ctx, domain.CustomerInput{Name: "Ann Lee", Email: "ann@example.com"}))
	_, ok := tb.Customers.Selected()
	assert.False(t, ok, "update reloads and clears the selection")
	rows := tb.Customers.Rows()
	require.Len(t, rows, 1)
	c := rows[0]
	assert.Empty(t, c.Phone)
	assert.Empty(t, c.Address)
	assert.False(t, c.Newsletter)
	assert.Equal(t, found[0].RegisteredAt, c.RegisteredAt)

	// emails are unique, so re-importing an export collides on the first row
	recs := codec.Export(tb.Customers.Export())
	n, err := tb.Customers.Import(ctx, recs)
	var serr *domain.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Zero(t, n)
	assert.Len(t, tb.Customers.Rows(), 1)
}

func TestCustomerTab_ImportAddressForms(t *testing.T) {
	ctx := context.Background()
	tb, _ := tabs(t)

	recs, err := codec.DecodeRecords(bytes.NewBufferString(`[
		{"Name": "Inline", "Email": "a@example.com", "Address": {"city": "Boston", "zip": "02108"}, "Newsletter Opt-In": true},
		{"Name": "Text", "Email": "b@example.com", "Address": "{\"city\":\"Austin\"}"},
		{"Name": "None", "Email": "c@example.com"}
	]`))
	require.NoError(t, err)

	n, err := tb.Customers.Import(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rows := tb.Customers.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, domain.Address{"city": "Boston", "zip": "02108"}, rows[0].Address)
	assert.True(t, rows[0].Newsletter)
	assert.Equal(t, domain.Address{"city": "Austin"}, rows[1].Address)
	assert.Equal(t, domain.Address{}, rows[2].Address)
	assert.False(t, rows[2].Newsletter)
}

func TestOrderTab_ImportCustomerIDAndExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	tb, _ := tabs(t)

	cid, err := tb.Customers.Add(ctx, domain.CustomerInput{Name: "Cara", Email: "cara@example.com"})
	require.NoError(t, err)

	recs, err := codec.DecodeRecords(bytes.NewBufferString(
		`[{"Customer ID": "` + strconv.FormatInt(cid, 10) + `", "Status": "Paid", "Total Amount": "19.99"}, {"Status": "Draft"}]`))
	require.NoError(t, err)
	n, err := tb.Orders.Import(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows := tb.Orders.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Cara", rows[0].CustomerName)
	assert.InDelta(t, 19.99, rows[0].TotalAmount, 1e-9)
	assert.Nil(t, rows[1].CustomerID)
	assert.Equal(t, 0.0, rows[1].TotalAmount)

	// the export carries the customer's name, not its id, so copies lose the link
	n, err = tb.Orders.Import(ctx, codec.Export(tb.Orders.Export()))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	rows = tb.Orders.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, "Paid", rows[2].Status)
	assert.Nil(t, rows[2].CustomerID)

	bad, err := codec.DecodeRecords(bytes.NewBufferString(`[{"Customer ID": "abc"}]`))
	require.NoError(t, err)
	_, err = tb.Orders.Import(ctx, bad)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
