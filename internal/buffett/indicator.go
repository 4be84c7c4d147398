package buffett

import (
	"context"
	"math"
	"sync"

	"github.com/tmorel/finsight/backend/internal/contracts"
	"github.com/tmorel/finsight/backend/internal/external/worldbank"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

const trillionScale = 1e12

// IndicatorSource is the economic data provider the service reads from.
type IndicatorSource interface {
	LatestValue(ctx context.Context, countryCode, indicator string) (float64, error)
}

// threshold maps a ratio ceiling to its interpretation.
type threshold struct {
	Below   float64
	Label   string
	Color   string
	Message string
}

var thresholds = []threshold{
	{75, "Undervalued", "#22c55e", "The market is attractive. Valuations are low relative to the real economy."},
	{100, "Fairly valued", "#60a5fa", "The market correctly reflects the value of the economy."},
	{125, "Slightly overvalued", "#f59e0b", "Caution advised. Valuations are starting to run ahead of fundamentals."},
	{150, "Strongly overvalued", "#ef4444", "Danger zone. The market is well above its historical value."},
	{math.MaxFloat64, "Extremely overvalued", "#dc2626", "Historically extreme level. High risk of a major correction."},
}

// country display metadata keyed by World Bank code.
var countryInfo = map[string]struct {
	Name string
	Flag string
}{
	"US": {"United States", "🇺🇸"},
	"XC": {"Euro Area", "🇪🇺"},
	"GB": {"United Kingdom", "🇬🇧"},
	"JP": {"Japan", "🇯🇵"},
	"CN": {"China", "🇨🇳"},
	"KR": {"South Korea", "🇰🇷"},
}

// Service computes the market-cap/GDP valuation indicator for a
// configured country set.
type Service struct {
	source    IndicatorSource
	logger    *logger.Logger
	countries []string
}

// NewService creates a new indicator service.
func NewService(source IndicatorSource, countries []string, log *logger.Logger) *Service {
	return &Service{
		source:    source,
		logger:    log.WithField("module", "buffett"),
		countries: countries,
	}
}

// Compute fetches market cap and GDP for every configured country and
// derives the ratio. Countries are fetched concurrently and failures
// are isolated: a failed country yields an error entry in its slot
// without aborting the others.
func (s *Service) Compute(ctx context.Context) []contracts.CountryIndicator {
	results := make([]contracts.CountryIndicator, len(s.countries))

	var wg sync.WaitGroup
	for i, code := range s.countries {
		wg.Add(1)
		go func(slot int, code string) {
			defer wg.Done()
			results[slot] = s.computeCountry(ctx, code)
		}(i, code)
	}
	wg.Wait()

	return results
}

func (s *Service) computeCountry(ctx context.Context, code string) contracts.CountryIndicator {
	name, flag := code, ""
	if info, ok := countryInfo[code]; ok {
		name, flag = info.Name, info.Flag
	}

	// Market cap and GDP are independent indicator calls.
	var marketCap, gdp float64
	var capErr, gdpErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		marketCap, capErr = s.source.LatestValue(ctx, code, worldbank.IndicatorMarketCap)
	}()
	go func() {
		defer wg.Done()
		gdp, gdpErr = s.source.LatestValue(ctx, code, worldbank.IndicatorGDP)
	}()
	wg.Wait()

	if capErr != nil || gdpErr != nil || gdp == 0 {
		s.logger.WithFields(map[string]interface{}{
			"country":        code,
			"market_cap_err": capErr,
			"gdp_err":        gdpErr,
		}).Warn("Country indicator unavailable")
		return contracts.CountryIndicator{
			Country: name,
			Flag:    flag,
			Error:   "data unavailable",
		}
	}

	ratio := marketCap / gdp * 100
	interp := interpret(ratio)

	return contracts.CountryIndicator{
		Country:   name,
		Flag:      flag,
		Ratio:     round1(ratio),
		MarketCap: round2(marketCap / trillionScale),
		GDP:       round2(gdp / trillionScale),
		Unit:      "T$",
		Source:    "World Bank",
		Label:     interp.Label,
		Color:     interp.Color,
		Message:   interp.Message,
	}
}

// interpret returns the interpretation band for a ratio, evaluated low
// to high.
func interpret(ratio float64) threshold {
	for _, t := range thresholds {
		if ratio < t.Below {
			return t
		}
	}
	return thresholds[len(thresholds)-1]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
