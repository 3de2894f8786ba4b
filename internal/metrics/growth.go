package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/equimetrics/backend/internal/aggregate"
	"github.com/equimetrics/backend/internal/calc"
	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/internal/fiscal"
	"github.com/equimetrics/backend/internal/reconcile"
)

// GrowthVariant is one calculation method's result, EPS and revenue side
// by side. Variants are alternatives for comparison, not fallbacks.
type GrowthVariant struct {
	Name    string                 `json:"name"`
	EPS     contracts.MetricResult `json:"eps"`
	Revenue contracts.MetricResult `json:"revenue"`
}

// PEVariant is one forward P/E calculation method's result.
type PEVariant struct {
	Name   string                 `json:"name"`
	Result contracts.MetricResult `json:"result"`
}

// GrowthReport carries every method variant for a ticker.
type GrowthReport struct {
	Ticker   string          `json:"ticker"`
	AsOf     time.Time       `json:"as_of"`
	Year     int             `json:"year"`
	Variants []GrowthVariant `json:"variants"`
	PE       []PEVariant     `json:"pe_variants"`
}

// ComputeGrowth runs every calculation method side by side so the methods
// can be compared against each other for one ticker.
func (s *Service) ComputeGrowth(ctx context.Context, ticker string, asOf time.Time) *GrowthReport {
	src := s.fetch(ctx, ticker)

	year := asOf.Year()
	elapsed := fiscal.QuartersElapsed(year, asOf)

	report := &GrowthReport{
		Ticker: ticker,
		AsOf:   asOf,
		Year:   year,
	}

	strategies := []reconcile.Strategy{
		reconcile.StrategyNone,
		reconcile.StrategyAbsolute,
		reconcile.StrategyRatio,
		reconcile.StrategyMedian,
	}

	factors := make(map[reconcile.Strategy]reconcile.Factor, len(strategies))
	for _, strat := range strategies {
		factors[strat] = reconcile.ComputeFactor(strat, src.quarterlyActuals, src.quarterlyEstimates)
	}
	noAdjust := factors[reconcile.StrategyNone]

	priorYear := aggregate.YearActuals(year-1, src.quarterlyActuals)

	// Current-year hybrid vs prior-year reported, one variant per strategy.
	for _, strat := range strategies {
		hybrid := aggregate.HybridYear(year, elapsed, src.quarterlyActuals, src.quarterlyEstimates, factors[strat])
		report.Variants = append(report.Variants, GrowthVariant{
			Name:    "current_year/" + string(strat),
			EPS:     growthOf(hybrid, priorYear, epsAxis),
			Revenue: growthOf(hybrid, priorYear, revenueAxis),
		})
	}

	// Estimates on both sides: how the street sees the year over year.
	currentEst := aggregate.YearEstimates(year, src.quarterlyEstimates, noAdjust)
	priorEst := aggregate.YearEstimates(year-1, src.quarterlyEstimates, noAdjust)
	report.Variants = append(report.Variants, GrowthVariant{
		Name:    "current_year/estimates_only",
		EPS:     growthOf(currentEst, priorEst, epsAxis),
		Revenue: growthOf(currentEst, priorEst, revenueAxis),
	})

	// Forward window vs trailing window.
	ttm := aggregate.TTM(src.quarterlyActuals)
	ntm := aggregate.NTM(asOf, src.quarterlyEstimates, factors[reconcile.StrategyMedian])
	report.Variants = append(report.Variants, GrowthVariant{
		Name:    "current_year/ntm_vs_ttm",
		EPS:     growthOf(ntm, ttm, epsAxis),
		Revenue: growthOf(ntm, ttm, revenueAxis),
	})

	// Hybrid vs the prior-year annual statement instead of summed quarters.
	report.Variants = append(report.Variants, s.annualBaselineVariant(src, year, elapsed, factors[reconcile.StrategyMedian]))

	// Next year estimates vs current-year hybrid, per strategy.
	for _, strat := range strategies {
		next := aggregate.YearEstimates(year+1, src.quarterlyEstimates, factors[strat])
		hybrid := aggregate.HybridYear(year, elapsed, src.quarterlyActuals, src.quarterlyEstimates, factors[strat])
		report.Variants = append(report.Variants, GrowthVariant{
			Name:    "next_year/" + string(strat),
			EPS:     growthOf(next, hybrid, epsAxis),
			Revenue: growthOf(next, hybrid, revenueAxis),
		})
	}

	nextEst := aggregate.YearEstimates(year+1, src.quarterlyEstimates, noAdjust)
	report.Variants = append(report.Variants, GrowthVariant{
		Name:    "next_year/estimates_only",
		EPS:     growthOf(nextEst, currentEst, epsAxis),
		Revenue: growthOf(nextEst, currentEst, revenueAxis),
	})

	report.PE = s.peVariants(src, asOf, factors[reconcile.StrategyMedian])

	return report
}

// Variant returns the named growth variant from the report.
func (r *GrowthReport) Variant(name string) (GrowthVariant, bool) {
	for _, v := range r.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return GrowthVariant{}, false
}

// ComputeGrowthVariant exposes a single calculation method. The year pair
// is derived from asOf: current year is asOf's year, prior is the year
// before, matching how every variant window anchors.
func (s *Service) ComputeGrowthVariant(ctx context.Context, ticker, variant string, asOf time.Time) (GrowthVariant, error) {
	report := s.ComputeGrowth(ctx, ticker, asOf)
	v, ok := report.Variant(variant)
	if !ok {
		return GrowthVariant{}, fmt.Errorf("unknown growth variant %q", variant)
	}
	return v, nil
}

// peVariants computes the forward P/E family: quarterly- and
// annual-estimate variants for the next two fiscal years, plus the NTM
// and NTM+1 windows and trailing P/E for reference.
func (s *Service) peVariants(src sourceData, asOf time.Time, factor reconcile.Factor) []PEVariant {
	year := asOf.Year()
	noAdjust := reconcile.ComputeFactor(reconcile.StrategyNone, nil, nil)

	price := func() (float64, contracts.MetricResult, bool) {
		if src.snapshot == nil {
			return 0, missing(src.snapshotErr, "no company snapshot"), false
		}
		return src.snapshot.CurrentPrice, contracts.MetricResult{}, true
	}

	pe := func(eps contracts.MetricResult) contracts.MetricResult {
		p, fail, ok := price()
		if !ok {
			return fail
		}
		if !eps.OK {
			return eps
		}
		return calc.PERatio(p, eps.Value)
	}

	quarterlyEPS := func(y int) contracts.MetricResult {
		t := aggregate.YearEstimates(y, src.quarterlyEstimates, noAdjust)
		if !t.HasEPS() {
			return missing(src.estimatesErr, "no quarterly estimates for year")
		}
		return contracts.Success(t.EPS)
	}

	annualEPS := func(y int) contracts.MetricResult {
		rec, ok := aggregate.AnnualRecord(y, src.annualEstimates)
		if !ok {
			return missing(src.annualEstErr, "no annual estimate for year")
		}
		eps, ok := rec.EstimatedEPS()
		if !ok {
			return contracts.Failure(contracts.MissingData, "annual estimate has no EPS")
		}
		return contracts.Success(eps)
	}

	windowEPS := func(t aggregate.Totals) contracts.MetricResult {
		if !t.HasEPS() {
			return missing(src.estimatesErr, "window has no estimate quarters")
		}
		return contracts.Success(t.EPS)
	}

	ttm := aggregate.TTM(src.quarterlyActuals)
	ttmEPS := contracts.Failure(contracts.MissingData, "no reported quarters")
	if ttm.HasEPS() {
		ttmEPS = contracts.Success(ttm.EPS)
	}

	return []PEVariant{
		{Name: "ttm", Result: pe(ttmEPS)},
		{Name: "next_year/quarterly", Result: pe(quarterlyEPS(year + 1))},
		{Name: "next_year/annual", Result: pe(annualEPS(year + 1))},
		{Name: "two_year/quarterly", Result: pe(quarterlyEPS(year + 2))},
		{Name: "two_year/annual", Result: pe(annualEPS(year + 2))},
		{Name: "ntm", Result: pe(windowEPS(aggregate.NTM(asOf, src.quarterlyEstimates, factor)))},
		{Name: "ntm_plus_one", Result: pe(windowEPS(aggregate.NTMPlusOne(asOf, src.quarterlyEstimates, factor)))},
	}
}

// annualBaselineVariant compares the current-year hybrid against the
// prior year's annual income statement.
func (s *Service) annualBaselineVariant(src sourceData, year, elapsed int, factor reconcile.Factor) GrowthVariant {
	v := GrowthVariant{Name: "current_year/annual_baseline"}

	hybrid := aggregate.HybridYear(year, elapsed, src.quarterlyActuals, src.quarterlyEstimates, factor)

	rec, ok := aggregate.AnnualRecord(year-1, src.annualActuals)
	if !ok {
		fail := missing(src.annualsErr, "no prior-year annual statement")
		v.EPS, v.Revenue = fail, fail
		return v
	}

	if eps, hasEPS := rec.EPSValue(); hasEPS && hybrid.HasEPS() {
		v.EPS = calc.GrowthRate(hybrid.EPS, eps)
	} else {
		v.EPS = contracts.Failure(contracts.MissingData, "missing EPS on one side")
	}

	if rev, hasRev := rec.RevenueValue(); hasRev && hybrid.HasRevenue() {
		v.Revenue = calc.GrowthRate(hybrid.Revenue, rev)
	} else {
		v.Revenue = contracts.Failure(contracts.MissingData, "missing revenue on one side")
	}

	return v
}

// growthOf compares one axis of two windows.
func growthOf(current, prior aggregate.Totals, a axis) contracts.MetricResult {
	cur, ok := a.value(current)
	if !ok {
		return contracts.Failuref(contracts.MissingData, "current window has no %s", a)
	}
	base, ok := a.value(prior)
	if !ok {
		return contracts.Failuref(contracts.MissingData, "prior window has no %s", a)
	}
	return calc.GrowthRate(cur, base)
}
