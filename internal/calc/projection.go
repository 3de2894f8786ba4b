package calc

import (
	"fmt"
	"math"
	"sort"

	"github.com/equimetrics/backend/internal/contracts"
)

// ProjectionHorizon caps how many years ahead assumptions are accepted.
const ProjectionHorizon = 4

// ProjectionAssumptions holds one future year's growth and valuation
// assumptions, supplied per projected year.
type ProjectionAssumptions struct {
	RevenueGrowth   float64 `json:"revenue_growth"`
	NetIncomeGrowth float64 `json:"net_income_growth"`
	PELow           float64 `json:"pe_low"`
	PEHigh          float64 `json:"pe_high"`
}

// ProjectionBase anchors the compounding: the latest reported fundamentals
// plus the current market context.
type ProjectionBase struct {
	CurrentYear       int     `json:"current_year"`
	Revenue           float64 `json:"revenue"`
	NetIncome         float64 `json:"net_income"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	CurrentPrice      float64 `json:"current_price"`
}

// YearProjection is the projected picture of one future fiscal year. CAGR
// fields are percentages from the current price to that year's price band.
type YearProjection struct {
	Year      int     `json:"year"`
	Revenue   float64 `json:"revenue"`
	NetIncome float64 `json:"net_income"`
	EPS       float64 `json:"eps"`
	PriceLow  float64 `json:"stock_price_low"`
	PriceHigh float64 `json:"stock_price_high"`
	CAGRLow   float64 `json:"cagr_low"`
	CAGRHigh  float64 `json:"cagr_high"`
}

// PriceBand tracks one price series across the projected years.
type PriceBand struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Final float64 `json:"final"`
}

// CAGRBand tracks the spread of annualized returns across the projected
// years, for both ends of the P/E assumption.
type CAGRBand struct {
	LowMin  float64 `json:"low_min"`
	LowMax  float64 `json:"low_max"`
	HighMin float64 `json:"high_min"`
	HighMax float64 `json:"high_max"`
}

// ProjectionSummary condenses a projection run into the headline numbers:
// price bands, annualized-return spread and upside to the final year.
type ProjectionSummary struct {
	Years          int       `json:"projection_years"`
	FinalYear      int       `json:"final_year"`
	PriceRangeLow  PriceBand `json:"price_range_low"`
	PriceRangeHigh PriceBand `json:"price_range_high"`
	CAGRRange      CAGRBand  `json:"cagr_range"`
	UpsideLow      float64   `json:"upside_low"`
	UpsideHigh     float64   `json:"upside_high"`
}

// Project compounds the base fundamentals year by year through the given
// assumptions and prices each year via its P/E band. Each year's revenue
// and net income grow from the previous projected year, not from the base,
// so a two-year projection at 10% lands at 21% above base. Compounding
// carries full precision; only the stored fields are rounded (two
// decimals). Output is chronological.
func Project(base ProjectionBase, assumptions map[int]ProjectionAssumptions) ([]YearProjection, error) {
	if err := validateProjection(base, assumptions); err != nil {
		return nil, err
	}

	years := make([]int, 0, len(assumptions))
	for year := range assumptions {
		years = append(years, year)
	}
	sort.Ints(years)

	prevRevenue, prevNetIncome := base.Revenue, base.NetIncome

	out := make([]YearProjection, 0, len(years))
	for _, year := range years {
		in := assumptions[year]

		revenue := prevRevenue * (1 + in.RevenueGrowth)
		netIncome := prevNetIncome * (1 + in.NetIncomeGrowth)
		eps := netIncome / base.SharesOutstanding
		priceLow := eps * in.PELow
		priceHigh := eps * in.PEHigh

		span := year - base.CurrentYear
		cagrLow, err := CAGR(base.CurrentPrice, priceLow, span)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		cagrHigh, err := CAGR(base.CurrentPrice, priceHigh, span)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}

		out = append(out, YearProjection{
			Year:      year,
			Revenue:   round(revenue, contracts.GrowthPrecision),
			NetIncome: round(netIncome, contracts.GrowthPrecision),
			EPS:       round(eps, contracts.GrowthPrecision),
			PriceLow:  round(priceLow, contracts.GrowthPrecision),
			PriceHigh: round(priceHigh, contracts.GrowthPrecision),
			CAGRLow:   round(cagrLow*100, contracts.GrowthPrecision),
			CAGRHigh:  round(cagrHigh*100, contracts.GrowthPrecision),
		})

		prevRevenue, prevNetIncome = revenue, netIncome
	}
	return out, nil
}

// Summarize reduces a projection run to its summary statistics. Upside is
// the simple percent move from the current price to the final year's band.
func Summarize(currentPrice float64, projections []YearProjection) (ProjectionSummary, error) {
	if len(projections) == 0 {
		return ProjectionSummary{}, fmt.Errorf("no projections to summarize")
	}
	if !isFinite(currentPrice) || currentPrice <= 0 {
		return ProjectionSummary{}, fmt.Errorf("current price must be positive")
	}

	final := projections[len(projections)-1]

	s := ProjectionSummary{
		Years:          len(projections),
		FinalYear:      final.Year,
		PriceRangeLow:  PriceBand{Min: math.Inf(1), Max: math.Inf(-1), Final: final.PriceLow},
		PriceRangeHigh: PriceBand{Min: math.Inf(1), Max: math.Inf(-1), Final: final.PriceHigh},
		CAGRRange:      CAGRBand{LowMin: math.Inf(1), LowMax: math.Inf(-1), HighMin: math.Inf(1), HighMax: math.Inf(-1)},
		UpsideLow:      round((final.PriceLow/currentPrice-1)*100, contracts.GrowthPrecision),
		UpsideHigh:     round((final.PriceHigh/currentPrice-1)*100, contracts.GrowthPrecision),
	}

	for _, p := range projections {
		s.PriceRangeLow.Min = math.Min(s.PriceRangeLow.Min, p.PriceLow)
		s.PriceRangeLow.Max = math.Max(s.PriceRangeLow.Max, p.PriceLow)
		s.PriceRangeHigh.Min = math.Min(s.PriceRangeHigh.Min, p.PriceHigh)
		s.PriceRangeHigh.Max = math.Max(s.PriceRangeHigh.Max, p.PriceHigh)
		s.CAGRRange.LowMin = math.Min(s.CAGRRange.LowMin, p.CAGRLow)
		s.CAGRRange.LowMax = math.Max(s.CAGRRange.LowMax, p.CAGRLow)
		s.CAGRRange.HighMin = math.Min(s.CAGRRange.HighMin, p.CAGRHigh)
		s.CAGRRange.HighMax = math.Max(s.CAGRRange.HighMax, p.CAGRHigh)
	}
	return s, nil
}

// CAGR computes the compound annual growth rate as a fraction. The initial
// value, the final value and the span must all be positive; an annualized
// rate through zero or negative territory has no real solution.
func CAGR(initial, final float64, years int) (float64, error) {
	if !isFinite(initial) || initial <= 0 {
		return 0, fmt.Errorf("cagr: initial value must be positive")
	}
	if !isFinite(final) || final <= 0 {
		return 0, fmt.Errorf("cagr: final value must be positive")
	}
	if years <= 0 {
		return 0, fmt.Errorf("cagr: years must be positive")
	}
	return math.Pow(final/initial, 1/float64(years)) - 1, nil
}

func validateProjection(base ProjectionBase, assumptions map[int]ProjectionAssumptions) error {
	if len(assumptions) == 0 {
		return fmt.Errorf("no projection assumptions provided")
	}
	if !isFinite(base.SharesOutstanding) || base.SharesOutstanding <= 0 {
		return fmt.Errorf("shares outstanding must be positive")
	}
	if !isFinite(base.CurrentPrice) || base.CurrentPrice <= 0 {
		return fmt.Errorf("current price must be positive")
	}

	years := make([]int, 0, len(assumptions))
	for year := range assumptions {
		years = append(years, year)
	}
	sort.Ints(years)

	for _, year := range years {
		in := assumptions[year]
		if year <= base.CurrentYear || year > base.CurrentYear+ProjectionHorizon {
			return fmt.Errorf("year %d: outside the %d-year projection window", year, ProjectionHorizon)
		}
		if in.RevenueGrowth < -0.5 || in.RevenueGrowth > 1.0 {
			return fmt.Errorf("year %d: revenue growth must be between -0.5 and 1.0", year)
		}
		if in.NetIncomeGrowth < -1.0 || in.NetIncomeGrowth > 2.0 {
			return fmt.Errorf("year %d: net income growth must be between -1.0 and 2.0", year)
		}
		if in.PELow <= 0 || in.PELow > 100 {
			return fmt.Errorf("year %d: P/E low must be between 0 and 100", year)
		}
		if in.PEHigh <= 0 || in.PEHigh > 200 {
			return fmt.Errorf("year %d: P/E high must be between 0 and 200", year)
		}
		if in.PEHigh < in.PELow {
			return fmt.Errorf("year %d: P/E high must be at least P/E low", year)
		}
	}
	return nil
}
