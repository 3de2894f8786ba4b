package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/internal/metrics"
	"github.com/equimetrics/backend/pkg/logger"
)

// MetricsService is the calculation surface the handler needs.
type MetricsService interface {
	ComputeMetrics(ctx context.Context, ticker string, asOf time.Time) contracts.MetricMap
	ComputeGrowth(ctx context.Context, ticker string, asOf time.Time) *metrics.GrowthReport
}

// MetricsHandler serves computed valuation metrics over HTTP.
type MetricsHandler struct {
	service MetricsService
	logger  *logger.Logger
}

// NewMetricsHandler creates a metrics handler.
func NewMetricsHandler(service MetricsService, log *logger.Logger) *MetricsHandler {
	return &MetricsHandler{
		service: service,
		logger:  log,
	}
}

// GetMetrics returns the full metric map for a ticker.
// GET /api/metrics/{ticker}?as_of=2025-08-15
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ticker, asOf, ok := h.parseTickerAndDate(w, r)
	if !ok {
		return
	}

	results := h.service.ComputeMetrics(r.Context(), ticker, asOf)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":        ticker,
		"as_of":         asOf.Format("2006-01-02"),
		"metrics":       results,
		"success_count": results.SuccessCount(),
	})
}

// GetGrowth returns the side-by-side method comparison for a ticker.
// GET /api/growth/{ticker}?as_of=2025-08-15
func (h *MetricsHandler) GetGrowth(w http.ResponseWriter, r *http.Request) {
	ticker, asOf, ok := h.parseTickerAndDate(w, r)
	if !ok {
		return
	}

	report := h.service.ComputeGrowth(r.Context(), ticker, asOf)

	respondJSON(w, http.StatusOK, report)
}

// parseTickerAndDate validates the path ticker and the optional as_of
// query parameter. as_of defaults to today.
func (h *MetricsHandler) parseTickerAndDate(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	ticker := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["ticker"]))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return "", time.Time{}, false
	}

	asOf := time.Now().UTC()
	if s := r.URL.Query().Get("as_of"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "as_of must be YYYY-MM-DD")
			return "", time.Time{}, false
		}
		asOf = parsed
	}

	return ticker, asOf, true
}
