package document

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Document is a loosely-typed customer record as stored: a mapping of field
// name to value with no fixed schema. Values decoded from JSON are strings,
// float64 numbers, bools, []interface{} and nested map[string]interface{}.
// All accessors narrow types defensively and never fail; a field that is
// absent or of an unexpected type reports !ok.
type Document map[string]interface{}

// Has reports whether the field is present, regardless of its type.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Get returns the raw field value.
func (d Document) Get(key string) (interface{}, bool) {
	v, ok := d[key]
	return v, ok
}

// String returns the field as a string.
func (d Document) String(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the field as a string, or def when absent or non-string.
func (d Document) StringOr(key, def string) string {
	if s, ok := d.String(key); ok {
		return s
	}
	return def
}

// Bool returns the field as a bool.
func (d Document) Bool(key string) (bool, bool) {
	v, ok := d[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Number returns the field as a decimal. Numbers, json.Number and numeric
// strings all convert; anything else reports !ok.
func (d Document) Number(key string) (decimal.Decimal, bool) {
	v, ok := d[key]
	if !ok {
		return decimal.Zero, false
	}
	return coerceNumber(v)
}

// List returns the field as a raw slice.
func (d Document) List(key string) ([]interface{}, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	l, ok := v.([]interface{})
	return l, ok
}

// Docs returns the field as a slice of nested documents. Non-map elements
// are skipped rather than failing the whole list.
func (d Document) Docs(key string) ([]Document, bool) {
	l, ok := d.List(key)
	if !ok {
		return nil, false
	}
	docs := make([]Document, 0, len(l))
	for _, item := range l {
		if m, ok := item.(map[string]interface{}); ok {
			docs = append(docs, Document(m))
		}
	}
	return docs, true
}

func coerceNumber(v interface{}) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		dec, err := decimal.NewFromString(n.String())
		return dec, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero, false
		}
		dec, err := decimal.NewFromString(s)
		return dec, err == nil
	case decimal.Decimal:
		return n, true
	default:
		return decimal.Zero, false
	}
}

// Value implements driver.Valuer so a Document can be stored in a JSON column.
func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	bytes, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	// String form keeps SQLite happy alongside Postgres
	return string(bytes), nil
}

// Scan implements sql.Scanner.
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Document", value)
	}

	if len(bytes) == 0 {
		*d = nil
		return nil
	}

	return json.Unmarshal(bytes, d)
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]interface{}(d))
}

func (d *Document) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var tmp map[string]interface{}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*d = Document(tmp)
	return nil
}
