package validate_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"eshopadmin/internal/domain"
	"eshopadmin/internal/validate"
)

func field(err error) string {
	if verr, ok := err.(*domain.ValidationError); ok {
		return verr.Field
	}
	return ""
}

func TestTerm(t *testing.T) {
	term := func(s string) string {
		out, err := validate.Term(s)
		assert.NoError(t, err, s)
		return out
	}
	assert.Equal(t, "mug", term("  mug \t"))
	assert.Equal(t, "", term("   "))
	assert.Equal(t, "50%_off'", term("50%_off'"), "bound as a parameter, so kept as is")
	assert.Len(t, []rune(term(strings.Repeat("é", 100))), 100)

	_, err := validate.Term(strings.Repeat("é", 101))
	assert.Equal(t, "q", field(err), "long terms are rejected, not cut")
}

func TestProduct(t *testing.T) {
	assert.NoError(t, validate.Product(domain.ProductInput{}))
	assert.NoError(t, validate.Product(domain.ProductInput{Name: "Mug", Price: 12.5, StockQuantity: 5}))
	assert.Equal(t, "price", field(validate.Product(domain.ProductInput{Price: -0.01})))
	assert.Equal(t, "price", field(validate.Product(domain.ProductInput{Price: math.NaN()})))
	assert.Equal(t, "stock_quantity", field(validate.Product(domain.ProductInput{StockQuantity: -1})))
	assert.Equal(t, "name", field(validate.Product(domain.ProductInput{Name: strings.Repeat("x", 256)})))
}

func TestCustomer(t *testing.T) {
	assert.NoError(t, validate.Customer(domain.CustomerInput{}), "import defaults pass")
	assert.NoError(t, validate.Customer(domain.CustomerInput{Email: "a.b+c@example.co.uk", Address: domain.Address{"zip": "62701-1234"}}))
	assert.Equal(t, "email", field(validate.Customer(domain.CustomerInput{Email: "a@b"})))
	assert.Equal(t, "address.zip", field(validate.Customer(domain.CustomerInput{Address: domain.Address{"zip": "ABC"}})))
}

func TestOrder(t *testing.T) {
	zero := int64(0)
	assert.NoError(t, validate.Order(domain.OrderInput{}))
	assert.Equal(t, "customer_id", field(validate.Order(domain.OrderInput{CustomerID: &zero})))
	assert.Equal(t, "total_amount", field(validate.Order(domain.OrderInput{TotalAmount: -5})))
}

func TestOrderItem(t *testing.T) {
	assert.NoError(t, validate.OrderItem(domain.OrderItemInput{ProductID: 1, Quantity: 2, Price: 12.5}))
	assert.Equal(t, "product_id", field(validate.OrderItem(domain.OrderItemInput{Quantity: 1, Price: 1})))
	assert.Equal(t, "quantity", field(validate.OrderItem(domain.OrderItemInput{ProductID: 1, Price: 1})))
	assert.Equal(t, "price", field(validate.OrderItem(domain.OrderItemInput{ProductID: 1, Quantity: 1})))
	assert.Equal(t, "price", field(validate.OrderItem(domain.OrderItemInput{ProductID: 1, Quantity: 1, Price: math.Inf(1)})))
}

func TestEmailAndZIP(t *testing.T) {
	e, ok := validate.Email("  ann@example.com ")
	assert.True(t, ok)
	assert.Equal(t, "ann@example.com", e)
	_, ok = validate.Email("")
	assert.False(t, ok)
	assert.True(t, validate.ZIP("02108"))
	assert.False(t, validate.ZIP("2108"))
}
