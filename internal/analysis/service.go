package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tmorel/finsight/backend/internal/contracts"
	"github.com/tmorel/finsight/backend/internal/fscore"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

// ErrEmptyInput is returned when the ticker or company name is blank.
var ErrEmptyInput = errors.New("empty ticker or company name")

// ErrNotFound is returned when the input resolves to no known ticker.
var ErrNotFound = errors.New("ticker not found")

// MarketData is the provider the orchestrator fetches raw data from.
type MarketData interface {
	// Snapshot returns the point-in-time field map for a ticker.
	Snapshot(ctx context.Context, symbol string) (contracts.Snapshot, error)
	// Statements returns the balance-sheet and income-statement tables.
	Statements(ctx context.Context, symbol string) (balanceSheet, incomeStmt contracts.StatementTable, err error)
	// PriceHistory returns roughly one year of daily prices.
	PriceHistory(ctx context.Context, symbol string) ([]contracts.PricePoint, error)
	// Dividends returns raw dividend events between from and to.
	Dividends(ctx context.Context, symbol string, from, to time.Time) ([]contracts.DividendEvent, error)
	// Search returns up to limit ticker candidates for a free-form query.
	Search(ctx context.Context, query string, limit int) ([]contracts.SearchResult, error)
}

// Service orchestrates one analysis request: it resolves the input to a
// ticker, fans out the data fetches, runs the pure extractors over the
// fetched data and assembles the response.
type Service struct {
	provider MarketData
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates a new analysis service.
func NewService(provider MarketData, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   log.WithField("module", "analysis"),
		now:      time.Now,
	}
}

// Search passes a free-form query through to the provider.
func (s *Service) Search(ctx context.Context, query string) ([]contracts.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []contracts.SearchResult{}, nil
	}
	return s.provider.Search(ctx, query, 5)
}

// Analyze builds the full analysis payload for a ticker or company name.
// Only ticker resolution can fail the request; every data section
// degrades to an empty placeholder when its source is unavailable.
func (s *Service) Analyze(ctx context.Context, input string) (*contracts.Analysis, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return nil, ErrEmptyInput
	}

	symbol, snapshot, err := s.resolve(ctx, raw)
	if err != nil {
		return nil, err
	}

	name := snapshot.Str("longName", "shortName")
	if name == "" {
		name = symbol
	}

	result := &contracts.Analysis{
		Ticker:              symbol,
		Name:                name,
		HistoricalData:      []contracts.PricePoint{},
		DividendHistory:     []contracts.DividendYear{},
		ProfitMarginHistory: []contracts.ProfitMarginYear{},
	}
	result.KPIs = ExtractKPIs(snapshot)

	var balanceSheet, incomeStmt contracts.StatementTable
	now := s.now()

	// The remaining sources are independent, so fetch them concurrently.
	// A failed fetch only logs and leaves its section empty.
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		bs, is, err := s.provider.Statements(ctx, symbol)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Failed to fetch statements")
			return
		}
		balanceSheet, incomeStmt = bs, is
	}()

	go func() {
		defer wg.Done()
		prices, err := s.provider.PriceHistory(ctx, symbol)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Failed to fetch price history")
			return
		}
		result.HistoricalData = prices
	}()

	go func() {
		defer wg.Done()
		events, err := s.provider.Dividends(ctx, symbol, now.AddDate(-dividendHistoryYears, 0, 0), now)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Failed to fetch dividends")
			return
		}
		result.DividendHistory = BuildDividendHistory(events, now)
	}()

	wg.Wait()

	result.PiotroskiScore = fscore.Calculate(snapshot, balanceSheet, incomeStmt)
	result.ProfitMarginHistory = BuildProfitMarginHistory(incomeStmt)

	s.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"score":  result.PiotroskiScore.TotalScore,
	}).Debug("Analysis assembled")

	return result, nil
}

// resolve fetches the snapshot for the input as a ticker, falling back
// to a name search when the direct lookup fails.
func (s *Service) resolve(ctx context.Context, raw string) (string, contracts.Snapshot, error) {
	symbol := strings.ToUpper(raw)

	snapshot, err := s.provider.Snapshot(ctx, symbol)
	if err == nil && !snapshot.Empty() {
		return symbol, snapshot, nil
	}

	s.logger.WithField("input", raw).Debug("Direct ticker lookup failed, searching by name")

	candidates, searchErr := s.provider.Search(ctx, raw, 1)
	if searchErr != nil || len(candidates) == 0 || candidates[0].Symbol == "" {
		return "", nil, ErrNotFound
	}

	symbol = candidates[0].Symbol
	snapshot, err = s.provider.Snapshot(ctx, symbol)
	if err != nil || snapshot.Empty() {
		return "", nil, ErrNotFound
	}
	return symbol, snapshot, nil
}
