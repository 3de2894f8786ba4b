// Package quoteweb scrapes a public quote page for price and market-cap
// snapshots. It backs up the FMP profile endpoint when the API is
// unavailable or the key has run out of quota.
package quoteweb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/pkg/config"
	"github.com/equimetrics/backend/pkg/httputil"
	"github.com/equimetrics/backend/pkg/logger"
)

// Client scrapes quote pages. Requests are throttled locally; scraping
// stays polite regardless of Redis availability.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a quote-page scraper.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: httputil.NewWithTimeout(cfg, log, 15*time.Second),
		logger:     log,
		baseURL:    strings.TrimRight(cfg.QuoteWeb.BaseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// Snapshot fetches and parses the quote page for a ticker.
func (c *Client) Snapshot(ctx context.Context, ticker string) (*contracts.CompanySnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	url := fmt.Sprintf("%s/%s/", c.baseURL, strings.ToLower(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	snapshot, err := c.parseQuotePage(string(body), ticker)
	if err != nil {
		return nil, fmt.Errorf("parse quote page failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"price":  snapshot.CurrentPrice,
	}).Debug("scraped quote snapshot")

	return snapshot, nil
}

// parseQuotePage extracts price and market cap from the page HTML. The
// layout changes now and then, so selector parsing falls back to a regex
// scan before giving up.
func (c *Client) parseQuotePage(html, ticker string) (*contracts.CompanySnapshot, error) {
	snapshot := &contracts.CompanySnapshot{Ticker: ticker}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		// Price lives in the main quote block.
		doc.Find("[data-test='quote-price'], .quote-price, main .text-4xl").EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if v, ok := parseAbbrevNumber(sel.Text()); ok && v > 0 {
				snapshot.CurrentPrice = v
				return false
			}
			return true
		})

		// Statistics table rows: label cell followed by a value cell.
		doc.Find("table tr, [data-test='statistics-table'] div").Each(func(i int, row *goquery.Selection) {
			label := strings.ToLower(strings.TrimSpace(row.Children().First().Text()))
			value := strings.TrimSpace(row.Children().Last().Text())
			switch {
			case strings.HasPrefix(label, "market cap"):
				if v, ok := parseAbbrevNumber(value); ok {
					snapshot.MarketCap = v
				}
			case strings.HasPrefix(label, "shares out"):
				if v, ok := parseAbbrevNumber(value); ok {
					snapshot.SharesOutstanding = v
				}
			}
		})
	}

	// Regex fallback for pages the selectors no longer match.
	if snapshot.CurrentPrice == 0 {
		snapshot.CurrentPrice = regexPrice(html)
	}
	if snapshot.MarketCap == 0 {
		snapshot.MarketCap = regexMarketCap(html)
	}

	if snapshot.CurrentPrice <= 0 {
		return nil, fmt.Errorf("no price found for %s", ticker)
	}
	if snapshot.SharesOutstanding == 0 && snapshot.MarketCap > 0 {
		snapshot.SharesOutstanding = snapshot.MarketCap / snapshot.CurrentPrice
	}
	return snapshot, nil
}
