package analysis

import (
	"math"

	"github.com/tmorel/finsight/backend/internal/contracts"
)

// Display scaling applied to KPI values.
const (
	marketCapScale = 1e9 // billions
	volumeScale    = 1e6 // millions
)

// ExtractKPIs derives the display metrics from a snapshot. Fields the
// provider did not report come back as nil so the caller can tell them
// apart from genuine zeros.
func ExtractKPIs(snapshot contracts.Snapshot) contracts.StockKPIs {
	currentPrice, hasPrice := snapshot.Lookup("currentPrice", "regularMarketPrice", "lastPrice")
	previousClose, hasPrev := snapshot.Lookup("previousClose")

	priceChange := 0.0
	if hasPrice && hasPrev && previousClose != 0 {
		priceChange = (currentPrice - previousClose) / previousClose * 100
	}

	return contracts.StockKPIs{
		CurrentPrice:  round2(currentPrice),
		PriceChange:   round2(priceChange),
		MarketCap:     round2(snapshot.Num("marketCap") / marketCapScale),
		PERatio:       scaledPtr(snapshot, "trailingPE", 1),
		DividendYield: scaledPtr(snapshot, "dividendYield", 100),
		Volume:        round2(snapshot.Num("volume") / volumeScale),
		High52W:       scaledPtr(snapshot, "fiftyTwoWeekHigh", 1),
		Low52W:        scaledPtr(snapshot, "fiftyTwoWeekLow", 1),
		Beta:          scaledPtr(snapshot, "beta", 1),
		EPS:           scaledPtr(snapshot, "trailingEps", 1),
		ROE:           scaledPtr(snapshot, "returnOnEquity", 100),
		DebtToEquity:  scaledPtr(snapshot, "debtToEquity", 1),
		CurrentRatio:  scaledPtr(snapshot, "currentRatio", 1),
		ProfitMargin:  scaledPtr(snapshot, "profitMargins", 100),
	}
}

// scaledPtr reads one snapshot field, applies the display factor and
// rounds, keeping nil for unreported fields.
func scaledPtr(snapshot contracts.Snapshot, key string, factor float64) *float64 {
	v, ok := snapshot.Lookup(key)
	if !ok {
		return nil
	}
	scaled := round2(v * factor)
	return &scaled
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
