package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/equimetrics/backend/internal/contracts"
)

// incomeStatement is one row of FMP's income-statement endpoint.
type incomeStatement struct {
	Date          string   `json:"date"`
	Symbol        string   `json:"symbol"`
	Revenue       *float64 `json:"revenue"`
	CostOfRevenue *float64 `json:"costOfRevenue"`
	GrossProfit   *float64 `json:"grossProfit"`
	NetIncome     *float64 `json:"netIncome"`
	EPS           *float64 `json:"eps"`
	EPSDiluted    *float64 `json:"epsdiluted"`
}

// QuarterlyIncomeStatements fetches reported quarterly income statements,
// most recent first.
func (c *Client) QuarterlyIncomeStatements(ctx context.Context, ticker string) ([]contracts.DatedRecord, error) {
	return c.incomeStatements(ctx, ticker, "quarter")
}

// AnnualIncomeStatements fetches reported annual income statements.
func (c *Client) AnnualIncomeStatements(ctx context.Context, ticker string) ([]contracts.DatedRecord, error) {
	return c.incomeStatements(ctx, ticker, "annual")
}

func (c *Client) incomeStatements(ctx context.Context, ticker, period string) ([]contracts.DatedRecord, error) {
	params := url.Values{}
	params.Set("period", period)
	params.Set("limit", strconv.Itoa(c.quarterLimit))

	var rows []incomeStatement
	if err := c.httpClient.GetJSON(ctx, c.endpoint("income-statement", ticker, params), &rows); err != nil {
		return nil, fmt.Errorf("fmp income statements (%s): %w", period, err)
	}

	records := make([]contracts.DatedRecord, 0, len(rows))
	for _, row := range rows {
		date, err := parseReportDate(row.Date)
		if err != nil {
			c.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"date":   row.Date,
			}).Warn("dropping statement with bad report date")
			continue
		}
		records = append(records, contracts.DatedRecord{
			Ticker:        ticker,
			ReportDate:    date,
			Revenue:       row.Revenue,
			CostOfRevenue: row.CostOfRevenue,
			GrossProfit:   row.GrossProfit,
			NetIncome:     row.NetIncome,
			EPS:           row.EPS,
			DilutedEPS:    row.EPSDiluted,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"period": period,
		"count":  len(records),
	}).Debug("fetched income statements")

	return records, nil
}
