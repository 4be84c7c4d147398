package worldbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"

	"github.com/tmorel/finsight/backend/pkg/config"
	"github.com/tmorel/finsight/backend/pkg/httputil"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

// Annual indicators consumed by the valuation ratio.
const (
	IndicatorMarketCap = "CM.MKT.LCAP.CD" // total market capitalization, USD
	IndicatorGDP       = "NY.GDP.MKTP.CD" // nominal GDP, USD
)

// How many most-recent annual values to look back through for a
// non-null reading.
const lookbackYears = 5

// ErrNoData is returned when a country reports no value for an
// indicator within the lookback window.
var ErrNoData = errors.New("no indicator data")

// Client handles communication with the World Bank open data API. No
// API key is required.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new World Bank client.
func NewClient(httpClient *httputil.Client, cfg config.WorldBankConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "worldbank"),
		baseURL:    cfg.BaseURL,
	}
}

// LatestValue returns the most recent non-null annual value of an
// indicator for a country. The payload is a positional JSON array
// (metadata first, entries second, most recent year first), so values
// are plucked by path instead of modeling the whole envelope.
func (c *Client) LatestValue(ctx context.Context, countryCode, indicator string) (float64, error) {
	fullURL := fmt.Sprintf("%s/country/%s/indicator/%s?format=json&mrv=%d&per_page=%d",
		c.baseURL, countryCode, indicator, lookbackYears, lookbackYears)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return 0, fmt.Errorf("indicator %s/%s: %w", countryCode, indicator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("indicator %s/%s: unexpected status code: %d", countryCode, indicator, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("indicator %s/%s: read body: %w", countryCode, indicator, err)
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("indicator %s/%s: decode: %w", countryCode, indicator, err)
	}

	values, err := jsonpath.Get("$[1][*].value", payload)
	if err != nil {
		return 0, fmt.Errorf("indicator %s/%s: %w", countryCode, indicator, ErrNoData)
	}

	entries, ok := values.([]interface{})
	if !ok {
		return 0, fmt.Errorf("indicator %s/%s: %w", countryCode, indicator, ErrNoData)
	}
	for _, entry := range entries {
		if v, ok := entry.(float64); ok && v != 0 {
			return v, nil
		}
	}

	return 0, fmt.Errorf("indicator %s/%s: %w", countryCode, indicator, ErrNoData)
}
