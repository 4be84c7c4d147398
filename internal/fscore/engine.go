package fscore

import (
	"fmt"

	"github.com/tmorel/finsight/backend/internal/contracts"
)

// Interpretation thresholds for the 0-9 total.
const (
	highThreshold = 7
	midThreshold  = 4
)

const (
	labelStrong = "Strong — high-quality fundamentals"
	labelMixed  = "Mixed — further analysis warranted"
	labelWeak   = "Weak — caution advised"
	labelNA     = "N/A"
)

// Calculate evaluates the nine-criterion fundamental-quality score from
// the current snapshot plus balance-sheet and income-statement tables.
//
// The engine is a pure function of its inputs and performs no I/O.
// When either table is empty or the snapshot is absent it
// returns the canonical zero result instead of touching any field. With
// a single fiscal period the previous column aliases the current one, so
// every improving/decreasing criterion degrades to false.
func Calculate(snapshot contracts.Snapshot, balanceSheet, incomeStmt contracts.StatementTable) contracts.ScoreResult {
	if balanceSheet.Empty() || incomeStmt.Empty() || snapshot.Empty() {
		return zeroResult()
	}

	curr := 0
	prev := 1
	if len(incomeStmt.Periods) < 2 {
		prev = curr
	}

	result := contracts.ScoreResult{
		Profitability: make([]contracts.Criterion, 0, 3),
		Leverage:      make([]contracts.Criterion, 0, 3),
		Operating:     make([]contracts.Criterion, 0, 3),
	}

	add := func(category *[]contracts.Criterion, name string, passed bool, detail string) {
		score := 0
		if passed {
			score = 1
		}
		result.TotalScore += score
		*category = append(*category, contracts.Criterion{
			Criterion: name,
			Score:     score,
			Detail:    detail,
		})
	}

	// Degenerate reported totals are clamped to 1 before dividing, so a
	// zero or negative total drives the ratio toward the raw numerator
	// instead of producing Inf/NaN.
	totalAssetsCurr := clampDenominator(balanceSheet.Cell("Total Assets", curr))
	totalAssetsPrev := clampDenominator(balanceSheet.Cell("Total Assets", prev))

	// Profitability.
	netIncomeCurr := incomeStmt.Cell("Net Income", curr)
	roaCurr := netIncomeCurr / totalAssetsCurr
	roaPrev := incomeStmt.Cell("Net Income", prev) / totalAssetsPrev
	cfo := snapshot.Num("freeCashflow")

	add(&result.Profitability, "ROA positive",
		roaCurr > 0,
		fmt.Sprintf("ROA=%.2f", roaCurr))
	add(&result.Profitability, "Operating cash flow positive",
		cfo > 0,
		fmt.Sprintf("CFO=%.2f", cfo))
	add(&result.Profitability, "ROA improving",
		roaCurr > roaPrev,
		fmt.Sprintf("previous=%.2f | current=%.2f", roaPrev, roaCurr))

	// Leverage and liquidity.
	leverageCurr := balanceSheet.Cell("Long Term Debt", curr) / totalAssetsCurr
	leveragePrev := balanceSheet.Cell("Long Term Debt", prev) / totalAssetsPrev
	currentRatio := snapshot.Num("currentRatio")
	sharesCurr := balanceSheet.Cell("Ordinary Shares Number", curr)
	sharesPrev := balanceSheet.Cell("Ordinary Shares Number", prev)

	add(&result.Leverage, "Leverage decreasing",
		leverageCurr < leveragePrev,
		fmt.Sprintf("previous=%.2f | current=%.2f", leveragePrev, leverageCurr))
	add(&result.Leverage, "Current ratio positive",
		currentRatio > 0,
		fmt.Sprintf("ratio=%.2f", currentRatio))
	add(&result.Leverage, "No new shares issued",
		sharesCurr <= sharesPrev,
		fmt.Sprintf("previous=%.0f | current=%.0f", sharesPrev, sharesCurr))

	// Operating efficiency.
	revenueCurr := clampDenominator(incomeStmt.Cell("Total Revenue", curr))
	revenuePrev := clampDenominator(incomeStmt.Cell("Total Revenue", prev))
	grossMarginCurr := incomeStmt.Cell("Gross Profit", curr) / revenueCurr
	grossMarginPrev := incomeStmt.Cell("Gross Profit", prev) / revenuePrev
	turnoverCurr := revenueCurr / totalAssetsCurr
	turnoverPrev := revenuePrev / totalAssetsPrev

	add(&result.Operating, "Gross margin improving",
		grossMarginCurr > grossMarginPrev,
		fmt.Sprintf("previous=%.2f | current=%.2f", grossMarginPrev, grossMarginCurr))
	add(&result.Operating, "Asset turnover improving",
		turnoverCurr > turnoverPrev,
		fmt.Sprintf("previous=%.2f | current=%.2f", turnoverPrev, turnoverCurr))
	add(&result.Operating, "Cash flow exceeds net income",
		cfo > netIncomeCurr,
		fmt.Sprintf("CFO=%.2f | NI=%.2f", cfo, netIncomeCurr))

	result.Interpretation = interpret(result.TotalScore)
	return result
}

// clampDenominator keeps ratio denominators at least 1.
func clampDenominator(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}

func interpret(total int) string {
	switch {
	case total >= highThreshold:
		return labelStrong
	case total >= midThreshold:
		return labelMixed
	default:
		return labelWeak
	}
}

func zeroResult() contracts.ScoreResult {
	return contracts.ScoreResult{
		TotalScore:     0,
		Profitability:  []contracts.Criterion{},
		Leverage:       []contracts.Criterion{},
		Operating:      []contracts.Criterion{},
		Interpretation: labelNA,
	}
}
