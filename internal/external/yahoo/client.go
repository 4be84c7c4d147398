package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tmorel/finsight/backend/pkg/config"
	"github.com/tmorel/finsight/backend/pkg/httputil"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

// ErrNotFound is returned when the provider knows nothing about a
// ticker. Transport and decoding failures come back as ordinary errors.
var ErrNotFound = errors.New("no data for ticker")

// Client handles communication with the Yahoo Finance endpoints. All
// market data fetches go through this client.
type Client struct {
	httpClient  *httputil.Client
	logger      *logger.Logger
	baseURL     string
	newsBaseURL string
}

// NewClient creates a new market data client.
func NewClient(httpClient *httputil.Client, cfg config.YahooConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		logger:      log.WithField("module", "yahoo"),
		baseURL:     cfg.QuoteBaseURL,
		newsBaseURL: cfg.NewsBaseURL,
	}
}

// browser-looking headers; the quote endpoints reject anonymous Go
// user agents
var requestHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	"Accept":     "application/json,text/html;q=0.9,*/*;q=0.8",
}

// fetchJSON performs a GET and decodes the JSON body into out.
func (c *Client) fetchJSON(ctx context.Context, url string, out interface{}) error {
	resp, err := c.httpClient.GetWithHeaders(ctx, url, requestHeaders)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// fetchHTML performs a GET and returns the body as a string.
func (c *Client) fetchHTML(ctx context.Context, url string) (string, error) {
	resp, err := c.httpClient.GetWithHeaders(ctx, url, requestHeaders)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// apiError is the error object embedded in provider responses.
type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
