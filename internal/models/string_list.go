package models

import (
	"database/sql/driver"
	"encoding/json"
	"slices"
)

// StringList is an ordered list of strings stored as JSON text.
// Unreadable stored values decode to an empty list rather than failing the row.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	}
	*l = DecodeStringList(raw)
	return nil
}

// String renders the list as compact JSON, the form used in change descriptions.
func (l StringList) String() string {
	if l == nil {
		return "[]"
	}
	b, _ := json.Marshal([]string(l))
	return string(b)
}

// Equal compares element-wise; nil and empty are equal.
func (l StringList) Equal(other StringList) bool {
	return slices.Equal(l, other)
}

// DecodeStringList parses a JSON array of strings. A JSON string holding an
// encoded array (legacy double encoding) is unwrapped once. Anything else
// yields an empty list.
func DecodeStringList(raw []byte) StringList {
	if len(raw) == 0 {
		return StringList{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err == nil {
		if out == nil {
			return StringList{}
		}
		return out
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &out); err == nil && out != nil {
			return out
		}
	}
	return StringList{}
}
