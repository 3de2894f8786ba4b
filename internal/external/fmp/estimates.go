package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/equimetrics/backend/internal/contracts"
)

// analystEstimate is one row of FMP's analyst-estimates endpoint.
type analystEstimate struct {
	Date                  string   `json:"date"`
	Symbol                string   `json:"symbol"`
	EstimatedRevenueAvg   *float64 `json:"estimatedRevenueAvg"`
	EstimatedEPSAvg       *float64 `json:"estimatedEpsAvg"`
	EstimatedNetIncomeAvg *float64 `json:"estimatedNetIncomeAvg"`
}

// QuarterlyEstimates fetches quarterly analyst estimates keyed by the
// expected report date.
func (c *Client) QuarterlyEstimates(ctx context.Context, ticker string) ([]contracts.DatedRecord, error) {
	return c.estimates(ctx, ticker, "quarter")
}

// AnnualEstimates fetches annual analyst estimates.
func (c *Client) AnnualEstimates(ctx context.Context, ticker string) ([]contracts.DatedRecord, error) {
	return c.estimates(ctx, ticker, "annual")
}

func (c *Client) estimates(ctx context.Context, ticker, period string) ([]contracts.DatedRecord, error) {
	params := url.Values{}
	params.Set("period", period)
	params.Set("limit", strconv.Itoa(c.quarterLimit))

	var rows []analystEstimate
	if err := c.httpClient.GetJSON(ctx, c.endpoint("analyst-estimates", ticker, params), &rows); err != nil {
		return nil, fmt.Errorf("fmp analyst estimates (%s): %w", period, err)
	}

	records := make([]contracts.DatedRecord, 0, len(rows))
	for _, row := range rows {
		date, err := parseReportDate(row.Date)
		if err != nil {
			c.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"date":   row.Date,
			}).Warn("dropping estimate with bad report date")
			continue
		}
		records = append(records, contracts.DatedRecord{
			Ticker:                ticker,
			ReportDate:            date,
			EstimatedEPSAvg:       row.EstimatedEPSAvg,
			EstimatedRevenueAvg:   row.EstimatedRevenueAvg,
			EstimatedNetIncomeAvg: row.EstimatedNetIncomeAvg,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"period": period,
		"count":  len(records),
	}).Debug("fetched analyst estimates")

	return records, nil
}
