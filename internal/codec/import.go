package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"eshopadmin/internal/domain"
)

// ProductRecord is one product as read from an import file.
type ProductRecord struct {
	Name        string
	Category    string
	Price       float64
	Stock       int
	Description string
	Featured    bool
}

// Values used when a key is absent, null or an empty string.
var ProductDefaults = ProductRecord{
	Name:        "",
	Category:    "",
	Price:       0.0,
	Stock:       0,
	Description: "",
	Featured:    false,
}

type CustomerRecord struct {
	Name       string
	Email      string
	Phone      string
	Address    domain.Address
	Newsletter bool
}

// An absent Address decodes to a fresh empty map, never to this one.
var CustomerDefaults = CustomerRecord{
	Name:       "",
	Email:      "",
	Phone:      "",
	Address:    domain.Address{},
	Newsletter: false,
}

// OrderRecord keeps the customer id as text; "" means no customer.
type OrderRecord struct {
	CustomerID  string
	Status      string
	TotalAmount float64
}

var OrderDefaults = OrderRecord{
	CustomerID:  "",
	Status:      "",
	TotalAmount: 0.0,
}

func (p ProductRecord) Input() domain.ProductInput {
	return domain.ProductInput{
		Name: p.Name, Category: p.Category, Price: p.Price,
		StockQuantity: p.Stock, Description: p.Description, Featured: p.Featured,
	}
}

func (c CustomerRecord) Input() domain.CustomerInput {
	return domain.CustomerInput{
		Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address, Newsletter: c.Newsletter,
	}
}

func (o OrderRecord) Input() (domain.OrderInput, error) {
	in := domain.OrderInput{Status: o.Status, TotalAmount: o.TotalAmount}
	if strings.TrimSpace(o.CustomerID) == "" {
		return in, nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(o.CustomerID), 10, 64)
	if err != nil {
		return in, domain.Invalid(KeyCustomerID, "not an id: %q", o.CustomerID)
	}
	in.CustomerID = &id
	return in, nil
}

func DecodeProduct(r Record) (ProductRecord, error) {
	d := ProductDefaults
	var p ProductRecord
	var err error
	if p.Name, err = r.Text(HeaderName, d.Name); err != nil {
		return p, err
	}
	if p.Category, err = r.Text(HeaderCategory, d.Category); err != nil {
		return p, err
	}
	if p.Price, err = r.Float(HeaderPrice, d.Price); err != nil {
		return p, err
	}
	if p.Stock, err = r.Int(HeaderStock, d.Stock); err != nil {
		return p, err
	}
	if p.Description, err = r.Text(HeaderDescription, d.Description); err != nil {
		return p, err
	}
	if p.Featured, err = r.Bool(HeaderFeatured, d.Featured); err != nil {
		return p, err
	}
	return p, nil
}

func DecodeCustomer(r Record) (CustomerRecord, error) {
	d := CustomerDefaults
	var c CustomerRecord
	var err error
	if c.Name, err = r.Text(HeaderName, d.Name); err != nil {
		return c, err
	}
	if c.Email, err = r.Text(HeaderEmail, d.Email); err != nil {
		return c, err
	}
	if c.Phone, err = r.Text(HeaderPhone, d.Phone); err != nil {
		return c, err
	}
	if c.Address, err = r.Object(HeaderAddress); err != nil {
		return c, err
	}
	if c.Newsletter, err = r.Bool(KeyNewsletterOptIn, d.Newsletter); err != nil {
		return c, err
	}
	return c, nil
}

func DecodeOrder(r Record) (OrderRecord, error) {
	d := OrderDefaults
	var o OrderRecord
	var err error
	if o.CustomerID, err = r.Text(KeyCustomerID, d.CustomerID); err != nil {
		return o, err
	}
	if o.Status, err = r.Text(HeaderStatus, d.Status); err != nil {
		return o, err
	}
	if o.TotalAmount, err = r.Float(HeaderTotalAmount, d.TotalAmount); err != nil {
		return o, err
	}
	return o, nil
}

// present reports whether key holds a usable value. Absent, null and empty
// strings all fall back to the default.
func (r Record) present(key string) (any, bool) {
	v, ok := r.Values[key]
	if !ok || v == nil {
		return nil, false
	}
	// records built by Export hold *string cells
	if p, isPtr := v.(*string); isPtr {
		if p == nil {
			return nil, false
		}
		v = *p
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func (r Record) Text(key, def string) (string, error) {
	v, ok := r.present(key)
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	return "", domain.Invalid(key, "expected text, got %T", v)
}

func (r Record) Float(key string, def float64) (float64, error) {
	v, ok := r.present(key)
	if !ok {
		return def, nil
	}
	var f float64
	var err error
	switch x := v.(type) {
	case json.Number:
		f, err = x.Float64()
	case float64:
		f = x
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		err = fmt.Errorf("unexpected %T", v)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, domain.Invalid(key, "not a number: %v", v)
	}
	return f, nil
}

func (r Record) Int(key string, def int) (int, error) {
	f, err := r.Float(key, float64(def))
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, domain.Invalid(key, "not a whole number: %v", f)
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, domain.Invalid(key, "out of range: %v", f)
	}
	return int(f), nil
}

func (r Record) Bool(key string, def bool) (bool, error) {
	v, ok := r.present(key)
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, domain.Invalid(key, "not a boolean: %q", x)
		}
		return b, nil
	case json.Number:
		return x.String() != "0", nil
	}
	return false, domain.Invalid(key, "not a boolean: %v", v)
}

// Object reads a key/value structure either inline or as JSON text (the
// form the export writes). Non-string values are kept as their text form.
func (r Record) Object(key string) (domain.Address, error) {
	out := domain.Address{}
	v, ok := r.present(key)
	if !ok {
		return out, nil
	}
	var m map[string]any
	switch x := v.(type) {
	case map[string]any:
		m = x
	case string:
		dec := json.NewDecoder(strings.NewReader(x))
		dec.UseNumber()
		if err := dec.Decode(&m); err != nil {
			return out, domain.Invalid(key, "not a JSON object: %q", x)
		}
	default:
		return out, domain.Invalid(key, "not an object: %v", v)
	}
	for k, val := range m {
		switch t := val.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out, nil
}
