package contracts

// Metric keys. Every MetricMap returned by the orchestrator carries
// exactly this key set, success or failure.
const (
	MetricTTMPE                 = "ttm_pe"
	MetricForwardPE             = "forward_pe"
	MetricTwoYearForwardPE      = "two_year_forward_pe"
	MetricTTMEPSGrowth          = "ttm_eps_growth"
	MetricCurrentYearEPSGrowth  = "current_year_eps_growth"
	MetricNextYearEPSGrowth     = "next_year_eps_growth"
	MetricTTMRevenueGrowth      = "ttm_revenue_growth"
	MetricCurrentYearRevGrowth  = "current_year_revenue_growth"
	MetricNextYearRevenueGrowth = "next_year_revenue_growth"
	MetricGrossMargin           = "gross_margin"
	MetricNetMargin             = "net_margin"
	MetricTTMPSRatio            = "ttm_ps_ratio"
	MetricForwardPSRatio        = "forward_ps_ratio"
)

// MetricKeys lists every metric key in presentation order.
var MetricKeys = []string{
	MetricTTMPE,
	MetricForwardPE,
	MetricTwoYearForwardPE,
	MetricTTMEPSGrowth,
	MetricCurrentYearEPSGrowth,
	MetricNextYearEPSGrowth,
	MetricTTMRevenueGrowth,
	MetricCurrentYearRevGrowth,
	MetricNextYearRevenueGrowth,
	MetricGrossMargin,
	MetricNetMargin,
	MetricTTMPSRatio,
	MetricForwardPSRatio,
}

// Rounding precisions shared by the calculators.
const (
	GrowthPrecision = 2 // growth rates and margins, in percent
	RatioPrecision  = 4 // P/E and P/S ratios
)

// Window sizes for trailing aggregations.
const (
	QuartersForTTM       = 4
	MinQuartersForGrowth = 8
)
