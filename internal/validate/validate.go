package validate

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"eshopadmin/internal/domain"
)

var (
	// US ZIP: 5 digits or ZIP+4
	reZIP   = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

const (
	maxTerm = 100
	maxText = 255
)

// Term trims a search term. Any characters are allowed since the term is
// always bound as a parameter; terms over maxTerm runes are rejected.
func Term(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxTerm {
		return "", domain.Invalid("q", "search term must be at most %d characters", maxTerm)
	}
	return s, nil
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > maxText {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func ZIP(s string) bool {
	return reZIP.MatchString(strings.TrimSpace(s))
}

func Product(in domain.ProductInput) error {
	if utf8.RuneCountInString(in.Name) > maxText {
		return domain.Invalid("name", "must be at most %d characters", maxText)
	}
	if utf8.RuneCountInString(in.Category) > maxText {
		return domain.Invalid("category", "must be at most %d characters", maxText)
	}
	if !finite(in.Price) || in.Price < 0 {
		return domain.Invalid("price", "must be zero or more")
	}
	if in.StockQuantity < 0 {
		return domain.Invalid("stock_quantity", "must be zero or more")
	}
	return nil
}

// Customer checks the email shape only when one is given; an empty email is
// the import default and is left for the unique constraint to judge.
func Customer(in domain.CustomerInput) error {
	if utf8.RuneCountInString(in.Name) > maxText {
		return domain.Invalid("name", "must be at most %d characters", maxText)
	}
	if in.Email != "" {
		if _, ok := Email(in.Email); !ok {
			return domain.Invalid("email", "invalid email %q", in.Email)
		}
	}
	if zip, ok := in.Address["zip"]; ok && zip != "" && !ZIP(zip) {
		return domain.Invalid("address.zip", "invalid ZIP %q", zip)
	}
	return nil
}

func Order(in domain.OrderInput) error {
	if in.CustomerID != nil && *in.CustomerID <= 0 {
		return domain.Invalid("customer_id", "must be a positive id")
	}
	if !finite(in.TotalAmount) || in.TotalAmount < 0 {
		return domain.Invalid("total_amount", "must be zero or more")
	}
	if utf8.RuneCountInString(in.Status) > maxText {
		return domain.Invalid("status", "must be at most %d characters", maxText)
	}
	return nil
}

func OrderItem(in domain.OrderItemInput) error {
	if in.ProductID <= 0 {
		return domain.Invalid("product_id", "select a product")
	}
	if in.Quantity <= 0 {
		return domain.Invalid("quantity", "must be greater than zero")
	}
	if !finite(in.Price) || in.Price <= 0 {
		return domain.Invalid("price", "must be greater than zero")
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
