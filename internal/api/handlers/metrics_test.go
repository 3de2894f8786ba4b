package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/internal/metrics"
	"github.com/equimetrics/backend/pkg/config"
	"github.com/equimetrics/backend/pkg/logger"
)

type fakeService struct {
	gotTicker string
	gotAsOf   time.Time
}

func (f *fakeService) ComputeMetrics(ctx context.Context, ticker string, asOf time.Time) contracts.MetricMap {
	f.gotTicker = ticker
	f.gotAsOf = asOf
	return contracts.MetricMap{
		contracts.MetricTTMPE:             contracts.Success(25.81),
		contracts.MetricNextYearEPSGrowth: contracts.Failure(contracts.MissingData, "no estimates"),
	}
}

func (f *fakeService) ComputeGrowth(ctx context.Context, ticker string, asOf time.Time) *metrics.GrowthReport {
	f.gotTicker = ticker
	return &metrics.GrowthReport{
		Ticker: ticker,
		AsOf:   asOf,
		Year:   asOf.Year(),
	}
}

func testHandler(t *testing.T) (*MetricsHandler, *fakeService) {
	t.Helper()
	cfg := &config.Config{Env: "development", LogLevel: "error", LogFormat: "json"}
	svc := &fakeService{}
	return NewMetricsHandler(svc, logger.New(cfg)), svc
}

func serve(h http.HandlerFunc, path, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc(path, h).Methods("GET")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", url, nil))
	return rec
}

func TestGetMetrics(t *testing.T) {
	handler, svc := testHandler(t)

	rec := serve(handler.GetMetrics, "/api/metrics/{ticker}", "/api/metrics/aapl?as_of=2025-08-15")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.gotTicker != "AAPL" {
		t.Errorf("ticker = %s, want AAPL", svc.gotTicker)
	}
	if svc.gotAsOf.Format("2006-01-02") != "2025-08-15" {
		t.Errorf("asOf = %v", svc.gotAsOf)
	}

	var body struct {
		Ticker       string                            `json:"ticker"`
		Metrics      map[string]contracts.MetricResult `json:"metrics"`
		SuccessCount int                               `json:"success_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.SuccessCount != 1 {
		t.Errorf("success_count = %d, want 1", body.SuccessCount)
	}
	if got := body.Metrics[contracts.MetricTTMPE]; !got.OK || got.Value != 25.81 {
		t.Errorf("ttm_pe = %+v", got)
	}
	if got := body.Metrics[contracts.MetricNextYearEPSGrowth]; got.OK || got.Reason != contracts.MissingData {
		t.Errorf("next_year_eps_growth = %+v", got)
	}
}

func TestGetMetrics_BadDate(t *testing.T) {
	handler, _ := testHandler(t)

	rec := serve(handler.GetMetrics, "/api/metrics/{ticker}", "/api/metrics/AAPL?as_of=notadate")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetGrowth(t *testing.T) {
	handler, svc := testHandler(t)

	rec := serve(handler.GetGrowth, "/api/growth/{ticker}", "/api/growth/msft")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.gotTicker != "MSFT" {
		t.Errorf("ticker = %s, want MSFT", svc.gotTicker)
	}

	var report metrics.GrowthReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report.Ticker != "MSFT" {
		t.Errorf("report ticker = %s", report.Ticker)
	}
}
