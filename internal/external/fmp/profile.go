package fmp

import (
	"context"
	"fmt"

	"github.com/equimetrics/backend/internal/contracts"
)

// companyProfile is one row of FMP's profile endpoint.
type companyProfile struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	MarketCap float64 `json:"mktCap"`
}

// Profile fetches the current price and market cap for a ticker.
func (c *Client) Profile(ctx context.Context, ticker string) (*contracts.CompanySnapshot, error) {
	var rows []companyProfile
	if err := c.httpClient.GetJSON(ctx, c.endpoint("profile", ticker, nil), &rows); err != nil {
		return nil, fmt.Errorf("fmp profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fmp profile: no data for %s", ticker)
	}

	p := rows[0]
	snapshot := &contracts.CompanySnapshot{
		Ticker:       p.Symbol,
		CurrentPrice: p.Price,
		MarketCap:    p.MarketCap,
	}
	if p.Price > 0 {
		snapshot.SharesOutstanding = p.MarketCap / p.Price
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"price":  p.Price,
	}).Debug("fetched company profile")

	return snapshot, nil
}
