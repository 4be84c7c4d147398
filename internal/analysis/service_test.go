package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tmorel/finsight/backend/internal/contracts"
	"github.com/tmorel/finsight/backend/pkg/config"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error"})
}

// fakeProvider implements MarketData with overridable behavior per call.
type fakeProvider struct {
	snapshotFn     func(ctx context.Context, symbol string) (contracts.Snapshot, error)
	statementsFn   func(ctx context.Context, symbol string) (contracts.StatementTable, contracts.StatementTable, error)
	priceHistoryFn func(ctx context.Context, symbol string) ([]contracts.PricePoint, error)
	dividendsFn    func(ctx context.Context, symbol string, from, to time.Time) ([]contracts.DividendEvent, error)
	searchFn       func(ctx context.Context, query string, limit int) ([]contracts.SearchResult, error)
}

func (f *fakeProvider) Snapshot(ctx context.Context, symbol string) (contracts.Snapshot, error) {
	if f.snapshotFn == nil {
		return nil, errors.New("no snapshot")
	}
	return f.snapshotFn(ctx, symbol)
}

func (f *fakeProvider) Statements(ctx context.Context, symbol string) (contracts.StatementTable, contracts.StatementTable, error) {
	if f.statementsFn == nil {
		return contracts.StatementTable{}, contracts.StatementTable{}, errors.New("no statements")
	}
	return f.statementsFn(ctx, symbol)
}

func (f *fakeProvider) PriceHistory(ctx context.Context, symbol string) ([]contracts.PricePoint, error) {
	if f.priceHistoryFn == nil {
		return nil, errors.New("no prices")
	}
	return f.priceHistoryFn(ctx, symbol)
}

func (f *fakeProvider) Dividends(ctx context.Context, symbol string, from, to time.Time) ([]contracts.DividendEvent, error) {
	if f.dividendsFn == nil {
		return nil, errors.New("no dividends")
	}
	return f.dividendsFn(ctx, symbol, from, to)
}

func (f *fakeProvider) Search(ctx context.Context, query string, limit int) ([]contracts.SearchResult, error) {
	if f.searchFn == nil {
		return nil, errors.New("no search")
	}
	return f.searchFn(ctx, query, limit)
}

func fullStatements() (contracts.StatementTable, contracts.StatementTable) {
	balanceSheet := contracts.StatementTable{
		Periods: []string{"2025-09-30", "2024-09-30"},
		Rows: map[string][]float64{
			"Total Assets":           {1000, 500},
			"Long Term Debt":         {100, 300},
			"Ordinary Shares Number": {50, 50},
		},
	}
	incomeStmt := contracts.StatementTable{
		Periods: []string{"2025-09-30", "2024-09-30"},
		Rows: map[string][]float64{
			"Net Income":    {100e9, 40e9},
			"Total Revenue": {400e9, 300e9},
			"Gross Profit":  {160e9, 100e9},
		},
	}
	return balanceSheet, incomeStmt
}

func TestAnalyzeEmptyInput(t *testing.T) {
	svc := NewService(&fakeProvider{}, testLogger())

	for _, input := range []string{"", "   ", "\t"} {
		_, err := svc.Analyze(context.Background(), input)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestAnalyzeDirectTicker(t *testing.T) {
	provider := &fakeProvider{
		snapshotFn: func(_ context.Context, symbol string) (contracts.Snapshot, error) {
			if symbol != "AAPL" {
				t.Errorf("Snapshot called with %q, want AAPL", symbol)
			}
			return contracts.Snapshot{
				"longName":      "Apple Inc.",
				"currentPrice":  150.0,
				"previousClose": 120.0,
				"freeCashflow":  90e9,
				"currentRatio":  0.99,
			}, nil
		},
		statementsFn: func(_ context.Context, _ string) (contracts.StatementTable, contracts.StatementTable, error) {
			bs, is := fullStatements()
			return bs, is, nil
		},
		priceHistoryFn: func(_ context.Context, _ string) ([]contracts.PricePoint, error) {
			return []contracts.PricePoint{{Date: "2026-01-02", Price: 150, Volume: 1000}}, nil
		},
		dividendsFn: func(_ context.Context, _ string, _, _ time.Time) ([]contracts.DividendEvent, error) {
			return []contracts.DividendEvent{
				{Date: time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), Amount: 0.25},
			}, nil
		},
	}

	svc := NewService(provider, testLogger())
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	result, err := svc.Analyze(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}

	if result.Ticker != "AAPL" {
		t.Errorf("Ticker = %s, want AAPL", result.Ticker)
	}
	if result.Name != "Apple Inc." {
		t.Errorf("Name = %s, want Apple Inc.", result.Name)
	}
	if len(result.HistoricalData) != 1 {
		t.Errorf("got %d price points, want 1", len(result.HistoricalData))
	}
	if len(result.DividendHistory) != 1 {
		t.Errorf("got %d dividend years, want 1", len(result.DividendHistory))
	}
	if len(result.ProfitMarginHistory) != 2 {
		t.Errorf("got %d margin years, want 2", len(result.ProfitMarginHistory))
	}
	if result.PiotroskiScore.TotalScore == 0 {
		t.Error("expected a non-zero composite score with full data")
	}
	if got := result.PiotroskiScore.Sum(); got != result.PiotroskiScore.TotalScore {
		t.Errorf("criteria sum %d != total %d", got, result.PiotroskiScore.TotalScore)
	}
	if result.KPIs.CurrentPrice != 150.0 {
		t.Errorf("KPIs.CurrentPrice = %v, want 150", result.KPIs.CurrentPrice)
	}
}

func TestAnalyzeNameFallback(t *testing.T) {
	provider := &fakeProvider{
		snapshotFn: func(_ context.Context, symbol string) (contracts.Snapshot, error) {
			if symbol == "MSFT" {
				return contracts.Snapshot{"shortName": "Microsoft"}, nil
			}
			return nil, errors.New("unknown ticker")
		},
		searchFn: func(_ context.Context, query string, limit int) ([]contracts.SearchResult, error) {
			if query != "microsoft" {
				t.Errorf("Search called with %q, want the raw input", query)
			}
			if limit != 1 {
				t.Errorf("Search limit = %d, want 1", limit)
			}
			return []contracts.SearchResult{{Symbol: "MSFT", Name: "Microsoft"}}, nil
		},
	}

	svc := NewService(provider, testLogger())

	result, err := svc.Analyze(context.Background(), "microsoft")
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	if result.Ticker != "MSFT" {
		t.Errorf("Ticker = %s, want MSFT", result.Ticker)
	}
	if result.Name != "Microsoft" {
		t.Errorf("Name = %s, want Microsoft", result.Name)
	}
}

func TestAnalyzeNotFound(t *testing.T) {
	provider := &fakeProvider{
		searchFn: func(_ context.Context, _ string, _ int) ([]contracts.SearchResult, error) {
			return []contracts.SearchResult{}, nil
		},
	}

	svc := NewService(provider, testLogger())

	_, err := svc.Analyze(context.Background(), "no such company")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestAnalyzeSectionsDegrade(t *testing.T) {
	// Only the snapshot succeeds. Every other section must come back
	// empty instead of failing the request.
	provider := &fakeProvider{
		snapshotFn: func(_ context.Context, _ string) (contracts.Snapshot, error) {
			return contracts.Snapshot{"longName": "Apple Inc.", "currentPrice": 150.0}, nil
		},
	}

	svc := NewService(provider, testLogger())

	result, err := svc.Analyze(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}

	if result.HistoricalData == nil || len(result.HistoricalData) != 0 {
		t.Errorf("HistoricalData = %v, want empty slice", result.HistoricalData)
	}
	if result.DividendHistory == nil || len(result.DividendHistory) != 0 {
		t.Errorf("DividendHistory = %v, want empty slice", result.DividendHistory)
	}
	if result.ProfitMarginHistory == nil || len(result.ProfitMarginHistory) != 0 {
		t.Errorf("ProfitMarginHistory = %v, want empty slice", result.ProfitMarginHistory)
	}
	if result.PiotroskiScore.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0 without statements", result.PiotroskiScore.TotalScore)
	}
	if result.PiotroskiScore.Interpretation != "N/A" {
		t.Errorf("Interpretation = %q, want N/A", result.PiotroskiScore.Interpretation)
	}
}

func TestAnalyzeNameFallsBackToSymbol(t *testing.T) {
	provider := &fakeProvider{
		snapshotFn: func(_ context.Context, _ string) (contracts.Snapshot, error) {
			return contracts.Snapshot{"currentPrice": 10.0}, nil
		},
	}

	svc := NewService(provider, testLogger())

	result, err := svc.Analyze(context.Background(), "XYZ")
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	if result.Name != "XYZ" {
		t.Errorf("Name = %s, want the symbol when no name is reported", result.Name)
	}
}

func TestSearchBlankQuery(t *testing.T) {
	provider := &fakeProvider{
		searchFn: func(_ context.Context, _ string, _ int) ([]contracts.SearchResult, error) {
			t.Error("provider must not be called for a blank query")
			return nil, nil
		},
	}

	svc := NewService(provider, testLogger())

	results, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}
