package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NullFloat is a float64 that may be absent. Cleaning substitutes the null
// value for cells that fail numeric coercion instead of failing the load, so
// every consumer must check Valid before using Float64.
//
// It marshals to a JSON number when valid and to JSON null otherwise, which is
// what the dashboard expects for stats that never resolved to a number.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float returns a valid NullFloat holding v.
func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// Null returns the absent value.
func Null() NullFloat {
	return NullFloat{}
}

// MarshalJSON implements json.Marshaler.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		n.Float64, n.Valid = 0, false
		return nil
	}
	if err := json.Unmarshal(data, &n.Float64); err != nil {
		return fmt.Errorf("null float: %w", err)
	}
	n.Valid = true
	return nil
}

// String renders the value for logs and CSV export. Absent values render as
// an empty string so spreadsheet tools show a blank cell.
func (n NullFloat) String() string {
	if !n.Valid {
		return ""
	}
	return fmt.Sprintf("%g", n.Float64)
}
