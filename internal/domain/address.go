package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Address is a customer's postal address kept as one structured value
// (street, city, state, zip). It is stored as JSON, TEXT on sqlite and JSONB
// on postgres.
type Address map[string]string

func (a Address) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Address) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Address{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("address: unsupported column type %T", src)
	}
	if len(raw) == 0 {
		*a = Address{}
		return nil
	}
	out := Address{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	*a = out
	return nil
}

// String renders the address the way the browser displays it.
func (a Address) String() string {
	if len(a) == 0 {
		return "{}"
	}
	b, _ := json.Marshal(map[string]string(a))
	return string(b)
}
