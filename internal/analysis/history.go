package analysis

import (
	"sort"
	"strconv"
	"time"

	"github.com/tmorel/finsight/backend/internal/contracts"
)

// How far back the dividend history reaches.
const dividendHistoryYears = 5

// BuildDividendHistory groups raw dividend events by calendar year,
// keeps only the years within the trailing window relative to now, and
// emits the last event's date and amount per year, oldest year first.
func BuildDividendHistory(events []contracts.DividendEvent, now time.Time) []contracts.DividendYear {
	if len(events) == 0 {
		return []contracts.DividendYear{}
	}

	sorted := make([]contracts.DividendEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	cutoff := now.AddDate(-dividendHistoryYears, 0, 0)
	lastPerYear := make(map[int]contracts.DividendEvent)
	for _, ev := range sorted {
		if ev.Date.Before(cutoff) {
			continue
		}
		lastPerYear[ev.Date.Year()] = ev
	}

	years := make([]int, 0, len(lastPerYear))
	for year := range lastPerYear {
		years = append(years, year)
	}
	sort.Ints(years)

	history := make([]contracts.DividendYear, 0, len(years))
	for _, year := range years {
		ev := lastPerYear[year]
		history = append(history, contracts.DividendYear{
			Year:   strconv.Itoa(year),
			Amount: round2(ev.Amount),
			Date:   ev.Date.Format("2006-01-02"),
		})
	}
	return history
}

// BuildProfitMarginHistory computes net income (in billions) and net
// margin per fiscal period of the income statement. Periods missing the
// required rows are skipped; the result is sorted ascending by fiscal
// year label.
func BuildProfitMarginHistory(incomeStmt contracts.StatementTable) []contracts.ProfitMarginYear {
	history := make([]contracts.ProfitMarginYear, 0, len(incomeStmt.Periods))

	for col, period := range incomeStmt.Periods {
		revenue, hasRevenue := incomeStmt.CellOK("Total Revenue", col)
		netIncome, hasIncome := incomeStmt.CellOK("Net Income", col)
		if !hasRevenue || !hasIncome {
			continue
		}

		margin := 0.0
		if revenue != 0 {
			margin = netIncome / revenue * 100
		}

		history = append(history, contracts.ProfitMarginYear{
			Year:      fiscalYearLabel(period),
			NetIncome: round2(netIncome / marketCapScale),
			Margin:    round2(margin),
		})
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Year < history[j].Year
	})
	return history
}

// fiscalYearLabel reduces a period identifier such as "2024-09-30" to
// its year. Labels that do not start with a year pass through unchanged.
func fiscalYearLabel(period string) string {
	if len(period) >= 4 {
		if _, err := strconv.Atoi(period[:4]); err == nil {
			return period[:4]
		}
	}
	return period
}
