package fmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/equimetrics/backend/pkg/config"
	"github.com/equimetrics/backend/pkg/logger"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
		FMP: config.FMPConfig{
			APIKey:       "test-key",
			BaseURL:      server.URL,
			QuarterLimit: 40,
		},
	}
	return NewClient(cfg, logger.New(cfg), nil), server
}

func TestQuarterlyIncomeStatements(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"date":"2025-08-01","symbol":"AAPL","revenue":94000000000,"costOfRevenue":51000000000,"grossProfit":43000000000,"netIncome":23000000000,"eps":1.57,"epsdiluted":1.56},
			{"date":"bogus","symbol":"AAPL","eps":1.0},
			{"date":"2025-05-02","symbol":"AAPL","revenue":90000000000,"netIncome":22000000000,"eps":1.52}
		]`))
	}))

	records, err := client.QuarterlyIncomeStatements(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("QuarterlyIncomeStatements failed: %v", err)
	}

	if gotPath != "/income-statement/AAPL" {
		t.Errorf("path = %s, want /income-statement/AAPL", gotPath)
	}
	for _, want := range []string{"apikey=test-key", "period=quarter", "limit=40"} {
		if !containsParam(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}

	// the bogus-date row must be dropped, not fail the series
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.ReportDate.Format("2006-01-02") != "2025-08-01" {
		t.Errorf("report date = %s", first.ReportDate.Format("2006-01-02"))
	}
	if first.EPS == nil || *first.EPS != 1.57 {
		t.Errorf("eps = %v, want 1.57", first.EPS)
	}
	if first.GrossProfit == nil || *first.GrossProfit != 43000000000 {
		t.Errorf("gross profit = %v", first.GrossProfit)
	}

	// missing fields stay nil, distinct from zero
	if records[1].GrossProfit != nil {
		t.Error("expected nil gross profit for sparse row")
	}
}

func TestAnnualEstimates(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"date":"2026-09-30","symbol":"AAPL","estimatedRevenueAvg":430000000000,"estimatedEpsAvg":8.1,"estimatedNetIncomeAvg":115000000000}
		]`))
	}))

	records, err := client.AnnualEstimates(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("AnnualEstimates failed: %v", err)
	}

	if gotPath != "/analyst-estimates/AAPL" {
		t.Errorf("path = %s", gotPath)
	}
	if !containsParam(gotQuery, "period=annual") {
		t.Errorf("query %q missing period=annual", gotQuery)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if eps, ok := records[0].EstimatedEPS(); !ok || eps != 8.1 {
		t.Errorf("estimated eps = %v (%v), want 8.1", eps, ok)
	}
}

func TestProfile(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile/AAPL" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"symbol":"AAPL","price":212.5,"mktCap":3200000000000}]`))
	}))

	snapshot, err := client.Profile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if snapshot.CurrentPrice != 212.5 {
		t.Errorf("price = %v, want 212.5", snapshot.CurrentPrice)
	}
	if snapshot.MarketCap != 3.2e12 {
		t.Errorf("market cap = %v", snapshot.MarketCap)
	}
	if snapshot.SharesOutstanding == 0 {
		t.Error("expected shares outstanding to be derived")
	}
}

func TestProfile_Empty(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	if _, err := client.Profile(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for empty profile response")
	}
}

func TestErrorStatus(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"Error Message":"Invalid API KEY"}`))
	}))

	if _, err := client.QuarterlyEstimates(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func containsParam(query, param string) bool {
	for _, part := range strings.Split(query, "&") {
		if part == param {
			return true
		}
	}
	return false
}
