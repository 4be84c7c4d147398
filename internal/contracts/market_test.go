package contracts

import (
	"math"
	"testing"
)

func TestSnapshot_Num(t *testing.T) {
	snapshot := Snapshot{
		"currentPrice":       182.5,
		"regularMarketPrice": 181.0,
		"marketCap":          float64(3.1e12),
		"sharesOutstanding":  int64(15000000),
		"volume":             42,
		"beta":               math.NaN(),
		"trailingPE":         math.Inf(1),
		"longName":           "Apple Inc.",
		"nothing":            nil,
	}

	tests := []struct {
		name string
		keys []string
		want float64
	}{
		{"direct hit", []string{"currentPrice"}, 182.5},
		{"fallback chain uses first hit", []string{"currentPrice", "regularMarketPrice"}, 182.5},
		{"fallback chain skips missing", []string{"lastPrice", "regularMarketPrice"}, 181.0},
		{"fallback chain skips NaN", []string{"beta", "regularMarketPrice"}, 181.0},
		{"fallback chain skips Inf", []string{"trailingPE", "volume"}, 42},
		{"int64 coerced", []string{"sharesOutstanding"}, 15000000},
		{"missing key defaults to zero", []string{"absent"}, 0},
		{"string value defaults to zero", []string{"longName"}, 0},
		{"null value defaults to zero", []string{"nothing"}, 0},
		{"NaN defaults to zero", []string{"beta"}, 0},
		{"Inf defaults to zero", []string{"trailingPE"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snapshot.Num(tt.keys...); got != tt.want {
				t.Errorf("Num(%v) = %v, want %v", tt.keys, got, tt.want)
			}
		})
	}
}

func TestSnapshot_NumPtr(t *testing.T) {
	snapshot := Snapshot{
		"dividendYield": 0.0,
		"beta":          math.NaN(),
	}

	// Reported zero stays distinguishable from "not reported".
	if got := snapshot.NumPtr("dividendYield"); got == nil || *got != 0 {
		t.Errorf("NumPtr(dividendYield) = %v, want pointer to 0", got)
	}
	if got := snapshot.NumPtr("trailingPE"); got != nil {
		t.Errorf("NumPtr(trailingPE) = %v, want nil", got)
	}
	if got := snapshot.NumPtr("beta"); got != nil {
		t.Errorf("NumPtr(beta) = %v, want nil for NaN", got)
	}
}

func TestSnapshot_Str(t *testing.T) {
	snapshot := Snapshot{"shortName": "Apple", "longName": ""}

	if got := snapshot.Str("longName", "shortName"); got != "Apple" {
		t.Errorf("Str() = %q, want %q", got, "Apple")
	}
	if got := snapshot.Str("absent"); got != "" {
		t.Errorf("Str(absent) = %q, want empty", got)
	}
}

func TestStatementTable_Cell(t *testing.T) {
	table := StatementTable{
		Periods: []string{"2025", "2024"},
		Rows: map[string][]float64{
			"Total Assets": {1000, math.NaN()},
			"Net Income":   {120},
		},
	}

	tests := []struct {
		name string
		row  string
		col  int
		want float64
	}{
		{"present cell", "Total Assets", 0, 1000},
		{"NaN cell defaults to zero", "Total Assets", 1, 0},
		{"short row out of range", "Net Income", 1, 0},
		{"missing row", "Long Term Debt", 0, 0},
		{"negative column", "Total Assets", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Cell(tt.row, tt.col); got != tt.want {
				t.Errorf("Cell(%q, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}

	if _, ok := table.CellOK("Total Assets", 1); ok {
		t.Error("CellOK() reported a NaN cell as present")
	}
	if table.Empty() {
		t.Error("Empty() = true for populated table")
	}
	if !(StatementTable{}).Empty() {
		t.Error("Empty() = false for zero table")
	}
}
