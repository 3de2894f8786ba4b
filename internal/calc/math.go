// Package calc holds the pure arithmetic behind every metric: growth
// rates, price ratios and margins. All functions return MetricResult so
// that division hazards surface as classified failures, never as NaN.
package calc

import (
	"math"

	"github.com/equimetrics/backend/internal/contracts"
)

// GrowthRate computes period-over-period growth in percent, rounded to
// two decimals. The denominator is |prior| so that a loss-to-profit swing
// keeps a positive sign and a deepening loss a negative one. The only
// failure is prior == 0 (or a non-finite input): growth from zero is
// undefined, not infinite.
func GrowthRate(current, prior float64) contracts.MetricResult {
	if !isFinite(current) || !isFinite(prior) {
		return contracts.Failure(contracts.MissingData, "non-finite input")
	}
	if prior == 0 {
		return contracts.Failure(contracts.InvalidDenominator, "prior period is zero")
	}
	rate := (current - prior) / math.Abs(prior) * 100
	return contracts.Success(round(rate, contracts.GrowthPrecision))
}

// PERatio computes price over earnings, rounded to four decimals. Both
// inputs must be strictly positive: a negative or zero P/E is not a
// usable comparison value.
func PERatio(price, eps float64) contracts.MetricResult {
	if !isFinite(price) || price <= 0 {
		return contracts.Failure(contracts.MissingData, "non-positive price")
	}
	if !isFinite(eps) || eps <= 0 {
		return contracts.Failure(contracts.InvalidDenominator, "non-positive EPS")
	}
	return contracts.Success(round(price/eps, contracts.RatioPrecision))
}

// PSRatio computes market cap over revenue, rounded to four decimals.
// Both inputs must be strictly positive.
func PSRatio(marketCap, revenue float64) contracts.MetricResult {
	if !isFinite(marketCap) || marketCap <= 0 {
		return contracts.Failure(contracts.MissingData, "non-positive market cap")
	}
	if !isFinite(revenue) || revenue <= 0 {
		return contracts.Failure(contracts.InvalidDenominator, "non-positive revenue")
	}
	return contracts.Success(round(marketCap/revenue, contracts.RatioPrecision))
}

// Margin computes part/whole as a percentage, rounded to two decimals.
// The whole must be strictly positive and the part positive as well;
// margins are reported only for profitable periods.
func Margin(part, whole float64) contracts.MetricResult {
	if !isFinite(whole) || whole <= 0 {
		return contracts.Failure(contracts.InvalidDenominator, "non-positive revenue")
	}
	if !isFinite(part) || part <= 0 {
		return contracts.Failure(contracts.MissingData, "non-positive numerator")
	}
	return contracts.Success(round(part/whole*100, contracts.GrowthPrecision))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// round applies half-away-from-zero rounding at the given decimal place.
func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
