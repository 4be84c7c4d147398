package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tmorel/finsight/backend/internal/contracts"
)

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
	} `json:"quotes"`
}

// Search returns up to limit ticker candidates for a free-form query.
// Quotes without a symbol are dropped.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]contracts.SearchResult, error) {
	fullURL := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=8&newsCount=0",
		c.baseURL, url.QueryEscape(query))

	var resp searchResponse
	if err := c.fetchJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]contracts.SearchResult, 0, limit)
	for _, q := range resp.Quotes {
		if q.Symbol == "" {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		results = append(results, contracts.SearchResult{Symbol: q.Symbol, Name: name})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}
