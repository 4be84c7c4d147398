package contracts

import "time"

// StockKPIs is the flat record of display metrics extracted from a
// snapshot. Percent fields are already multiplied by 100; market cap is
// in billions and volume in millions. Pointer fields are null when the
// provider did not report the source field.
type StockKPIs struct {
	CurrentPrice  float64  `json:"current_price"`
	PriceChange   float64  `json:"price_change"` // day change, %
	MarketCap     float64  `json:"market_cap"`   // billions
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield"` // %
	Volume        float64  `json:"volume"`         // millions
	High52W       *float64 `json:"high_52w"`
	Low52W        *float64 `json:"low_52w"`
	Beta          *float64 `json:"beta"`
	EPS           *float64 `json:"eps"`
	ROE           *float64 `json:"roe"` // %
	DebtToEquity  *float64 `json:"debt_to_equity"`
	CurrentRatio  *float64 `json:"current_ratio"`
	ProfitMargin  *float64 `json:"profit_margin"` // %
}

// PricePoint is one day of the historical price series.
type PricePoint struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// DividendEvent is one raw dividend payment as reported by the market
// data provider.
type DividendEvent struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// DividendYear is the last dividend event of one calendar year.
type DividendYear struct {
	Year   string  `json:"year"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date,omitempty"`
}

// ProfitMarginYear is net income and net margin for one fiscal year.
type ProfitMarginYear struct {
	Year      string  `json:"year"`
	NetIncome float64 `json:"net_income"` // billions
	Margin    float64 `json:"margin"`     // %
}

// NewsItem is one headline for a company.
type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Publisher   string `json:"publisher,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Analysis is the full per-ticker payload assembled by the orchestrator.
// Sections degrade independently: a failed data source leaves its
// section empty without failing the rest.
type Analysis struct {
	Ticker              string             `json:"ticker"`
	Name                string             `json:"name"`
	KPIs                StockKPIs          `json:"kpis"`
	HistoricalData      []PricePoint       `json:"historical_data"`
	PiotroskiScore      ScoreResult        `json:"piotroski_score"`
	DividendHistory     []DividendYear     `json:"dividend_history"`
	ProfitMarginHistory []ProfitMarginYear `json:"profit_margin_history"`
}

// SearchResult is one ticker candidate returned by symbol search.
type SearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// CountryIndicator is the market-cap/GDP valuation reading for one
// country. Error is set, and the numeric fields zeroed, when the
// country's data could not be fetched.
type CountryIndicator struct {
	Country   string  `json:"country"`
	Flag      string  `json:"flag"`
	Ratio     float64 `json:"ratio,omitempty"`      // %
	MarketCap float64 `json:"market_cap,omitempty"` // trillions USD
	GDP       float64 `json:"gdp,omitempty"`        // trillions USD
	Unit      string  `json:"unit,omitempty"`
	Source    string  `json:"source,omitempty"`
	Label     string  `json:"label,omitempty"`
	Color     string  `json:"color,omitempty"`
	Message   string  `json:"message,omitempty"`
	Error     string  `json:"error,omitempty"`
}
