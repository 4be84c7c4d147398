package handlers

import (
	"net/http"

	"github.com/tmorel/finsight/backend/internal/buffett"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

// BuffettHandler handles the macro valuation indicator endpoint.
type BuffettHandler struct {
	service *buffett.Service
	logger  *logger.Logger
}

// NewBuffettHandler creates a new buffett indicator handler.
func NewBuffettHandler(service *buffett.Service, log *logger.Logger) *BuffettHandler {
	return &BuffettHandler{
		service: service,
		logger:  log,
	}
}

// GetIndicator returns the market-cap/GDP indicator per configured
// country. Per-country failures surface as error entries, never as a
// request failure.
// GET /api/buffett-indicator
func (h *BuffettHandler) GetIndicator(w http.ResponseWriter, r *http.Request) {
	countries := h.service.Compute(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"countries": countries,
	})
}
