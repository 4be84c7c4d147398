package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tmorel/finsight/backend/internal/contracts"
)

// quoteSummary modules flattened into the snapshot.
const snapshotModules = "price,summaryDetail,defaultKeyStatistics,financialData"

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]map[string]interface{} `json:"result"`
		Error  *apiError                           `json:"error"`
	} `json:"quoteSummary"`
}

// Snapshot fetches the point-in-time field map for a ticker. Fields of
// all requested modules are merged into one flat map; provider values
// wrapped as {raw, fmt} objects are unwrapped to their raw number.
func (c *Client) Snapshot(ctx context.Context, symbol string) (contracts.Snapshot, error) {
	fullURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(symbol), snapshotModules)

	var resp quoteSummaryResponse
	if err := c.fetchJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", symbol, err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("snapshot %s: %s: %w", symbol, resp.QuoteSummary.Error.Description, ErrNotFound)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("snapshot %s: %w", symbol, ErrNotFound)
	}

	snapshot := contracts.Snapshot{}
	for _, module := range resp.QuoteSummary.Result[0] {
		for field, value := range module {
			snapshot[field] = unwrapRaw(value)
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"fields": len(snapshot),
	}).Debug("Fetched snapshot")

	return snapshot, nil
}

// unwrapRaw reduces a {raw, fmt} value object to its raw number. Plain
// values and empty objects pass through untouched.
func unwrapRaw(value interface{}) interface{} {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return value
	}
	if raw, ok := obj["raw"]; ok {
		return raw
	}
	return value
}
