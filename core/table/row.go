package table

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Row is one flat record as decoded from the upstream response.
// Values are left untyped; use the accessors to read them.
type Row map[string]interface{}

// Int reads an identity/FK field, canonicalized to int.
// The upstream is loose about numeric types: ids may arrive as json numbers
// (float64), json.Number, ints or numeric strings. Joining on raw values
// ("5" vs 5) is a known defect class; all equality checks must go through
// here first.
func (r Row) Int(field string) (int, bool) {
	switch v := r[field].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		if f, err := v.Float64(); err == nil {
			return int(f), true
		}
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

func (r Row) String(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	}
	if b, err := json.Marshal(r[field]); err == nil {
		return string(b)
	}
	return ""
}

func (r Row) Bool(field string) bool {
	switch v := r[field].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	if n, ok := r.Int(field); ok {
		return n != 0
	}
	return false
}

// Strings reads a field holding a list of labels (e.g. users.roles).
// The upstream serializes roles either as plain strings or as objects
// with a `role__type`/`type` key; both shapes are flattened here.
func (r Row) Strings(field string) []string {
	raw, ok := r[field].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]interface{}:
			if s, ok := v["role__type"].(string); ok {
				out = append(out, s)
			} else if s, ok := v["type"].(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// RowSet holds the flat tables returned by one bulk fetch.
// It owns the raw rows for the duration of one fetch cycle; a fresh set is
// built on every cycle and never mutated after.
type RowSet struct {
	tables map[Name][]Row
}

func NewRowSet(tables map[Name][]Row) *RowSet {
	if tables == nil {
		tables = make(map[Name][]Row)
	}
	return &RowSet{tables: tables}
}

// Table returns the rows of `name` in upstream order.
// A table absent from the response yields an empty slice, never nil-panics;
// consumers must not special-case missing keys.
func (rs *RowSet) Table(name Name) []Row {
	if rows, ok := rs.tables[name]; ok {
		return rows
	}
	return []Row{}
}
