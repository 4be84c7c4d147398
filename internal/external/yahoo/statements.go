package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tmorel/finsight/backend/internal/contracts"
)

// Annual fundamentals series and their canonical row names.
var balanceSheetSeries = map[string]string{
	"annualTotalAssets":          "Total Assets",
	"annualLongTermDebt":         "Long Term Debt",
	"annualOrdinarySharesNumber": "Ordinary Shares Number",
	"annualCurrentAssets":        "Total Current Assets",
	"annualCurrentLiabilities":   "Total Current Liabilities",
}

var incomeStatementSeries = map[string]string{
	"annualNetIncome":    "Net Income",
	"annualTotalRevenue": "Total Revenue",
	"annualGrossProfit":  "Gross Profit",
}

type timeseriesResponse struct {
	Timeseries struct {
		Result []json.RawMessage `json:"result"`
		Error  *apiError         `json:"error"`
	} `json:"timeseries"`
}

type timeseriesValue struct {
	AsOfDate      string `json:"asOfDate"`
	ReportedValue struct {
		Raw float64 `json:"raw"`
	} `json:"reportedValue"`
}

// Statements fetches the balance-sheet and income-statement tables for
// a ticker, fiscal periods ordered most recent first. Rows the company
// does not report are simply absent from the table.
func (c *Client) Statements(ctx context.Context, symbol string) (contracts.StatementTable, contracts.StatementTable, error) {
	series := make([]string, 0, len(balanceSheetSeries)+len(incomeStatementSeries))
	for s := range balanceSheetSeries {
		series = append(series, s)
	}
	for s := range incomeStatementSeries {
		series = append(series, s)
	}
	sort.Strings(series)

	now := time.Now()
	fullURL := fmt.Sprintf(
		"%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?type=%s&period1=%d&period2=%d",
		c.baseURL, url.PathEscape(symbol), strings.Join(series, ","),
		now.AddDate(-5, 0, 0).Unix(), now.Unix(),
	)

	var resp timeseriesResponse
	if err := c.fetchJSON(ctx, fullURL, &resp); err != nil {
		return contracts.StatementTable{}, contracts.StatementTable{}, fmt.Errorf("statements %s: %w", symbol, err)
	}
	if resp.Timeseries.Error != nil {
		return contracts.StatementTable{}, contracts.StatementTable{}, fmt.Errorf("statements %s: %s: %w",
			symbol, resp.Timeseries.Error.Description, ErrNotFound)
	}

	cells := make(map[string]map[string]float64) // row -> period -> value
	for _, raw := range resp.Timeseries.Result {
		seriesName, values, err := decodeSeries(raw)
		if err != nil {
			c.logger.WithError(err).Debug("Skipping undecodable fundamentals series")
			continue
		}
		row, ok := balanceSheetSeries[seriesName]
		if !ok {
			row, ok = incomeStatementSeries[seriesName]
		}
		if !ok {
			continue
		}
		for _, v := range values {
			if v.AsOfDate == "" {
				continue
			}
			if cells[row] == nil {
				cells[row] = make(map[string]float64)
			}
			cells[row][v.AsOfDate] = v.ReportedValue.Raw
		}
	}

	balanceSheet := buildTable(cells, balanceSheetSeries)
	incomeStmt := buildTable(cells, incomeStatementSeries)

	c.logger.WithFields(map[string]interface{}{
		"symbol":          symbol,
		"balance_periods": len(balanceSheet.Periods),
		"income_periods":  len(incomeStmt.Periods),
	}).Debug("Fetched financial statements")

	return balanceSheet, incomeStmt, nil
}

// decodeSeries extracts one fundamentals series from a result object.
// Each result carries its type in meta and its values under a key named
// after that type.
func decodeSeries(raw json.RawMessage) (string, []timeseriesValue, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", nil, err
	}

	var meta struct {
		Type []string `json:"type"`
	}
	if err := json.Unmarshal(fields["meta"], &meta); err != nil {
		return "", nil, err
	}
	if len(meta.Type) == 0 {
		return "", nil, fmt.Errorf("series without type")
	}

	seriesName := meta.Type[0]
	payload, ok := fields[seriesName]
	if !ok {
		// A known series with no reported values.
		return seriesName, nil, nil
	}

	var values []*timeseriesValue
	if err := json.Unmarshal(payload, &values); err != nil {
		return "", nil, err
	}

	out := make([]timeseriesValue, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return seriesName, out, nil
}

// buildTable assembles a statement table from collected cells, keeping
// only the rows belonging to the wanted series, periods most recent
// first.
func buildTable(cells map[string]map[string]float64, series map[string]string) contracts.StatementTable {
	wanted := make(map[string]bool, len(series))
	for _, row := range series {
		wanted[row] = true
	}

	periodSet := make(map[string]bool)
	for row, byPeriod := range cells {
		if !wanted[row] {
			continue
		}
		for period := range byPeriod {
			periodSet[period] = true
		}
	}
	if len(periodSet) == 0 {
		return contracts.StatementTable{}
	}

	periods := make([]string, 0, len(periodSet))
	for period := range periodSet {
		periods = append(periods, period)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))

	rows := make(map[string][]float64)
	for row, byPeriod := range cells {
		if !wanted[row] {
			continue
		}
		values := make([]float64, len(periods))
		for i, period := range periods {
			values[i] = byPeriod[period]
		}
		rows[row] = values
	}

	return contracts.StatementTable{Periods: periods, Rows: rows}
}
