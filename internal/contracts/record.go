package contracts

import "time"

// DatedRecord is a single financial period keyed by its report date.
// It carries both reported (GAAP) figures and analyst-estimate figures;
// a field is nil when the upstream source did not provide it, which is
// distinct from a reported zero.
type DatedRecord struct {
	Ticker     string    `json:"ticker"`
	ReportDate time.Time `json:"report_date"`

	// Reported figures
	Revenue       *float64 `json:"revenue,omitempty"`
	CostOfRevenue *float64 `json:"cost_of_revenue,omitempty"`
	GrossProfit   *float64 `json:"gross_profit,omitempty"`
	NetIncome     *float64 `json:"net_income,omitempty"`
	EPS           *float64 `json:"eps,omitempty"`
	DilutedEPS    *float64 `json:"diluted_eps,omitempty"`

	// Analyst-estimate figures (consensus averages)
	EstimatedEPSAvg       *float64 `json:"estimated_eps_avg,omitempty"`
	EstimatedRevenueAvg   *float64 `json:"estimated_revenue_avg,omitempty"`
	EstimatedNetIncomeAvg *float64 `json:"estimated_net_income_avg,omitempty"`
}

// EPSValue returns the reported EPS, preferring the basic figure and
// falling back to diluted. The second return reports availability.
func (r *DatedRecord) EPSValue() (float64, bool) {
	if r.EPS != nil {
		return *r.EPS, true
	}
	if r.DilutedEPS != nil {
		return *r.DilutedEPS, true
	}
	return 0, false
}

// EstimatedEPS returns the consensus EPS estimate if present.
func (r *DatedRecord) EstimatedEPS() (float64, bool) {
	if r.EstimatedEPSAvg == nil {
		return 0, false
	}
	return *r.EstimatedEPSAvg, true
}

// EstimatedRevenue returns the consensus revenue estimate if present.
func (r *DatedRecord) EstimatedRevenue() (float64, bool) {
	if r.EstimatedRevenueAvg == nil {
		return 0, false
	}
	return *r.EstimatedRevenueAvg, true
}

// RevenueValue returns the reported revenue if present.
func (r *DatedRecord) RevenueValue() (float64, bool) {
	if r.Revenue == nil {
		return 0, false
	}
	return *r.Revenue, true
}

// NetIncomeValue returns the reported net income if present.
func (r *DatedRecord) NetIncomeValue() (float64, bool) {
	if r.NetIncome == nil {
		return 0, false
	}
	return *r.NetIncome, true
}

// CompanySnapshot holds the point-in-time market data needed for
// price-based ratios.
type CompanySnapshot struct {
	Ticker            string  `json:"ticker"`
	CurrentPrice      float64 `json:"current_price"`
	MarketCap         float64 `json:"market_cap"`
	SharesOutstanding float64 `json:"shares_outstanding"`
}

// Float64Ptr is a convenience for building records literal-style.
func Float64Ptr(v float64) *float64 { return &v }
