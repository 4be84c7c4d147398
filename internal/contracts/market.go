package contracts

import "math"

// Snapshot is a single point-in-time read of a company's market and
// fundamental attributes, keyed by provider field name. Values are of
// mixed type (numbers, strings, nulls) and any key may be absent.
type Snapshot map[string]interface{}

// Empty reports whether the snapshot carries no fields.
func (s Snapshot) Empty() bool {
	return len(s) == 0
}

// Str returns the first non-empty string value among keys.
func (s Snapshot) Str(keys ...string) string {
	for _, k := range keys {
		if v, ok := s[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Num returns the first finite numeric value found among keys, walking
// the fallback chain in order. Missing keys, non-numeric values, NaN and
// infinities all collapse to 0. Ratio math downstream relies on the
// result always being finite.
func (s Snapshot) Num(keys ...string) float64 {
	if v, ok := s.Lookup(keys...); ok {
		return v
	}
	return 0
}

// NumPtr is the null-preserving variant of Num for display-only metrics:
// it returns nil when no key holds a finite number, so "not reported"
// stays distinguishable from "reported as zero".
func (s Snapshot) NumPtr(keys ...string) *float64 {
	if v, ok := s.Lookup(keys...); ok {
		return &v
	}
	return nil
}

// Lookup returns the first finite numeric value among keys and whether
// one was found.
func (s Snapshot) Lookup(keys ...string) (float64, bool) {
	for _, k := range keys {
		raw, ok := s[k]
		if !ok {
			continue
		}
		if v, ok := asFinite(raw); ok {
			return v, true
		}
	}
	return 0, false
}

// asFinite coerces a decoded JSON value to a finite float64.
func asFinite(raw interface{}) (float64, bool) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// StatementTable is one financial statement (balance sheet or income
// statement) spanning multiple historical fiscal periods, most recent
// first. Rows hold one value per period, aligned with Periods; a row may
// be absent entirely when the company does not report it.
type StatementTable struct {
	Periods []string             `json:"periods"`
	Rows    map[string][]float64 `json:"rows"`
}

// Empty reports whether the table has no fiscal periods.
func (t StatementTable) Empty() bool {
	return len(t.Periods) == 0
}

// Cell returns the value at (row, column index), or 0 when the row is
// absent, the index is out of range, or the stored value is not finite.
func (t StatementTable) Cell(row string, col int) float64 {
	v, _ := t.CellOK(row, col)
	return v
}

// CellOK is Cell plus a flag telling whether the value was actually
// reported.
func (t StatementTable) CellOK(row string, col int) (float64, bool) {
	values, ok := t.Rows[row]
	if !ok || col < 0 || col >= len(values) {
		return 0, false
	}
	v := values[col]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
