// Package aggregate sums quarterly records over the windows the metric
// calculations compare: hybrid fiscal years, estimate-only years, trailing
// twelve months and forward twelve months.
package aggregate

import "github.com/equimetrics/backend/internal/contracts"

// Totals is the sum of a window's quarters. Per-field quarter counts let
// callers distinguish "summed to zero" from "nothing to sum".
type Totals struct {
	EPS         float64 `json:"eps"`
	Revenue     float64 `json:"revenue"`
	NetIncome   float64 `json:"net_income"`
	GrossProfit float64 `json:"gross_profit"`

	EPSQuarters         int `json:"eps_quarters"`
	RevenueQuarters     int `json:"revenue_quarters"`
	NetIncomeQuarters   int `json:"net_income_quarters"`
	GrossProfitQuarters int `json:"gross_profit_quarters"`
}

// HasEPS reports whether any quarter contributed an EPS value.
func (t Totals) HasEPS() bool { return t.EPSQuarters > 0 }

// HasRevenue reports whether any quarter contributed revenue.
func (t Totals) HasRevenue() bool { return t.RevenueQuarters > 0 }

// HasNetIncome reports whether any quarter contributed net income.
func (t Totals) HasNetIncome() bool { return t.NetIncomeQuarters > 0 }

// HasGrossProfit reports whether any quarter contributed gross profit.
func (t Totals) HasGrossProfit() bool { return t.GrossProfitQuarters > 0 }

// Empty reports whether the window contributed nothing at all.
func (t Totals) Empty() bool {
	return t.EPSQuarters == 0 && t.RevenueQuarters == 0 && t.NetIncomeQuarters == 0
}

func (t *Totals) addActual(rec contracts.DatedRecord) {
	if eps, ok := rec.EPSValue(); ok {
		t.EPS += eps
		t.EPSQuarters++
	}
	if rev, ok := rec.RevenueValue(); ok {
		t.Revenue += rev
		t.RevenueQuarters++
	}
	if ni, ok := rec.NetIncomeValue(); ok {
		t.NetIncome += ni
		t.NetIncomeQuarters++
	}
	switch {
	case rec.GrossProfit != nil:
		t.GrossProfit += *rec.GrossProfit
		t.GrossProfitQuarters++
	case rec.Revenue != nil && rec.CostOfRevenue != nil:
		t.GrossProfit += *rec.Revenue - *rec.CostOfRevenue
		t.GrossProfitQuarters++
	}
}

// addEstimate folds in an estimate quarter. The adjustment applies to EPS
// only; estimated revenue and net income are summed as published.
func (t *Totals) addEstimate(rec contracts.DatedRecord, adjust func(float64) float64) {
	if eps, ok := rec.EstimatedEPS(); ok {
		t.EPS += adjust(eps)
		t.EPSQuarters++
	}
	if rev, ok := rec.EstimatedRevenue(); ok {
		t.Revenue += rev
		t.RevenueQuarters++
	}
	if rec.EstimatedNetIncomeAvg != nil {
		t.NetIncome += *rec.EstimatedNetIncomeAvg
		t.NetIncomeQuarters++
	}
}
