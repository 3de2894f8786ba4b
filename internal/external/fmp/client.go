// Package fmp talks to the Financial Modeling Prep REST API. All FMP
// calls go through this client.
package fmp

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/equimetrics/backend/pkg/config"
	"github.com/equimetrics/backend/pkg/httputil"
	"github.com/equimetrics/backend/pkg/logger"
	"github.com/equimetrics/backend/pkg/redis"
)

// Client handles communication with the FMP API.
type Client struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	apiKey       string
	baseURL      string
	quarterLimit int
}

// NewClient creates a new FMP API client. The rate limiter is shared
// across processes through Redis; pass nil to skip limiting.
func NewClient(cfg *config.Config, log *logger.Logger, limiter *redis.RateLimiter) *Client {
	httpClient := httputil.NewWithTimeout(cfg, log, 20*time.Second)
	if limiter != nil {
		httpClient = httpClient.WithRateLimiter(limiter, redis.FMPRateLimit)
	}

	return &Client{
		httpClient:   httpClient,
		logger:       log,
		apiKey:       cfg.FMP.APIKey,
		baseURL:      strings.TrimRight(cfg.FMP.BaseURL, "/"),
		quarterLimit: cfg.FMP.QuarterLimit,
	}
}

// endpoint builds a request URL with the API key attached.
func (c *Client) endpoint(path, ticker string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, path, url.PathEscape(strings.ToUpper(ticker)), params.Encode())
}

// parseReportDate parses FMP's date strings. Records with unparseable
// dates are dropped by callers rather than failing the whole series.
func parseReportDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable report date %q: %w", s, err)
	}
	return t, nil
}
