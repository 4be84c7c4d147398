package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/tmorel/finsight/backend/internal/contracts"
)

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
	Events *chartEvents `json:"events"`
}

type chartEvents struct {
	Dividends map[string]struct {
		Amount float64 `json:"amount"`
		Date   int64   `json:"date"`
	} `json:"dividends"`
}

// PriceHistory fetches one year of daily closes and volumes. Days the
// provider reports without a close (halts, partial sessions) are
// skipped.
func (c *Client) PriceHistory(ctx context.Context, symbol string) ([]contracts.PricePoint, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=1y&interval=1d",
		c.baseURL, url.PathEscape(symbol))

	result, err := c.fetchChart(ctx, symbol, fullURL)
	if err != nil {
		return nil, err
	}

	if len(result.Indicators.Quote) == 0 {
		return []contracts.PricePoint{}, nil
	}
	quote := result.Indicators.Quote[0]

	points := make([]contracts.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		var volume int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		points = append(points, contracts.PricePoint{
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Price:  *quote.Close[i],
			Volume: volume,
		})
	}
	return points, nil
}

// Dividends fetches raw dividend events between from and to, oldest
// first.
func (c *Client) Dividends(ctx context.Context, symbol string, from, to time.Time) ([]contracts.DividendEvent, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div",
		c.baseURL, url.PathEscape(symbol), from.Unix(), to.Unix())

	result, err := c.fetchChart(ctx, symbol, fullURL)
	if err != nil {
		return nil, err
	}

	events := make([]contracts.DividendEvent, 0)
	if result.Events != nil {
		for _, d := range result.Events.Dividends {
			events = append(events, contracts.DividendEvent{
				Date:   time.Unix(d.Date, 0).UTC(),
				Amount: d.Amount,
			})
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (c *Client) fetchChart(ctx context.Context, symbol, fullURL string) (*chartResult, error) {
	var resp chartResponse
	if err := c.fetchJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s: %w", symbol, resp.Chart.Error.Description, ErrNotFound)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: %w", symbol, ErrNotFound)
	}
	return &resp.Chart.Result[0], nil
}
