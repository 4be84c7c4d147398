package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tmorel/finsight/backend/internal/analysis"
	"github.com/tmorel/finsight/backend/internal/contracts"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

// NewsSource fetches headlines for a ticker.
type NewsSource interface {
	News(ctx context.Context, symbol string) ([]contracts.NewsItem, error)
}

// AnalysisHandler handles per-ticker analysis API endpoints.
type AnalysisHandler struct {
	service *analysis.Service
	news    NewsSource
	logger  *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(service *analysis.Service, news NewsSource, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		news:    news,
		logger:  log,
	}
}

// Analyze returns the full analysis payload for a ticker or company name
// GET /api/analyze/{input}
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	input := mux.Vars(r)["input"]

	result, err := h.service.Analyze(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrEmptyInput):
			respondError(w, http.StatusBadRequest, "ticker or company name is required")
		case errors.Is(err, analysis.ErrNotFound):
			respondError(w, http.StatusNotFound, "no stock found for '"+strings.TrimSpace(input)+"'")
		default:
			h.logger.WithError(err).WithField("input", input).Error("Analysis failed")
			respondError(w, http.StatusBadGateway, "market data provider unavailable")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Search returns ticker candidates for a free-form query
// GET /api/search/{query}
func (h *AnalysisHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := mux.Vars(r)["query"]

	results, err := h.service.Search(ctx, query)
	if err != nil {
		h.logger.WithError(err).WithField("query", query).Error("Search failed")
		respondError(w, http.StatusBadGateway, "search unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}

// News returns recent headlines for a ticker
// GET /api/news/{ticker}
func (h *AnalysisHandler) News(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := strings.TrimSpace(mux.Vars(r)["ticker"])

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	items, err := h.news.News(ctx, strings.ToUpper(ticker))
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("News fetch failed")
		respondError(w, http.StatusBadGateway, "news unavailable")
		return
	}

	respondJSON(w, http.StatusOK, items)
}
