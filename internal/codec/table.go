package codec

import (
	"strconv"

	"eshopadmin/internal/domain"
)

// Display headers of each browser tab. Import reads fields by these labels,
// so renaming one breaks re-import of older files.
const (
	HeaderID           = "ID"
	HeaderName         = "Name"
	HeaderCategory     = "Category"
	HeaderPrice        = "Price"
	HeaderStock        = "Stock"
	HeaderDescription  = "Description"
	HeaderFeatured     = "Featured"
	HeaderEmail        = "Email"
	HeaderPhone        = "Phone"
	HeaderAddress      = "Address"
	HeaderRegistered   = "Registration Date"
	HeaderNewsletter   = "Newsletter"
	HeaderCustomer     = "Customer"
	HeaderStatus       = "Status"
	HeaderTotalAmount  = "Total Amount"
	HeaderCreatedAt    = "Created At"
	HeaderSelect       = "Select"
	HeaderProduct      = "Product"
	HeaderQuantity     = "Quantity"
	HeaderTotal        = "Total"
	KeyNewsletterOptIn = "Newsletter Opt-In"
	KeyCustomerID      = "Customer ID"
)

var (
	ProductHeaders   = []string{HeaderID, HeaderName, HeaderCategory, HeaderPrice, HeaderStock, HeaderDescription, HeaderFeatured, HeaderSelect}
	CustomerHeaders  = []string{HeaderID, HeaderName, HeaderEmail, HeaderPhone, HeaderAddress, HeaderRegistered, HeaderNewsletter, HeaderSelect}
	OrderHeaders     = []string{HeaderID, HeaderCustomer, HeaderStatus, HeaderTotalAmount, HeaderCreatedAt, HeaderSelect}
	OrderItemHeaders = []string{HeaderProduct, HeaderQuantity, HeaderPrice, HeaderTotal}
)

// Table is what a tab displays: header labels and one string cell per
// column. A nil cell is an empty one.
type Table struct {
	Headers []string
	Rows    [][]*string
}

// Export turns every row into a record holding all header columns, in order.
// Cells missing from a short row export as null.
func Export(t Table) []Record {
	out := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := NewRecord()
		for i, h := range t.Headers {
			var cell *string
			if i < len(row) {
				cell = row[i]
			}
			rec.Set(h, cell)
		}
		out = append(out, rec)
	}
	return out
}

func cell(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func idCell(id int64) *string { return cell(strconv.FormatInt(id, 10)) }
func floatCell(f float64) *string { return cell(strconv.FormatFloat(f, 'f', -1, 64)) }
func intCell(n int) *string { return cell(strconv.Itoa(n)) }
func boolCell(b bool) *string { return cell(strconv.FormatBool(b)) }

func ProductTable(rows []domain.Product, selected func(int64) bool) Table {
	t := Table{Headers: ProductHeaders}
	for _, p := range rows {
		t.Rows = append(t.Rows, []*string{
			idCell(p.ID), cell(p.Name), cell(p.Category), floatCell(p.Price),
			intCell(p.StockQuantity), cell(p.Description), boolCell(p.Featured),
			boolCell(selected(p.ID)),
		})
	}
	return t
}

func CustomerTable(rows []domain.Customer, selected func(int64) bool) Table {
	t := Table{Headers: CustomerHeaders}
	for _, c := range rows {
		t.Rows = append(t.Rows, []*string{
			idCell(c.ID), cell(c.Name), cell(c.Email), cell(c.Phone),
			cell(c.Address.String()), cell(c.RegisteredAt), boolCell(c.Newsletter),
			boolCell(selected(c.ID)),
		})
	}
	return t
}

func OrderTable(rows []domain.OrderRow, selected func(int64) bool) Table {
	t := Table{Headers: OrderHeaders}
	for _, o := range rows {
		t.Rows = append(t.Rows, []*string{
			idCell(o.ID), cell(o.CustomerName), cell(o.Status),
			floatCell(o.TotalAmount), cell(o.CreatedAt), boolCell(selected(o.ID)),
		})
	}
	return t
}

func OrderItemTable(rows []domain.OrderItemRow) Table {
	t := Table{Headers: OrderItemHeaders}
	for _, it := range rows {
		t.Rows = append(t.Rows, []*string{
			cell(it.ProductName), intCell(it.Quantity), floatCell(it.Price), floatCell(it.Total),
		})
	}
	return t
}
