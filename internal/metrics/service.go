// Package metrics orchestrates data retrieval and the per-metric
// calculations into the fixed key-metric map.
package metrics

import (
	"context"
	"time"

	"github.com/equimetrics/backend/internal/aggregate"
	"github.com/equimetrics/backend/internal/calc"
	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/internal/fiscal"
	"github.com/equimetrics/backend/internal/reconcile"
	"github.com/equimetrics/backend/pkg/logger"
)

// Service computes valuation metrics for a ticker from provider data.
type Service struct {
	provider contracts.DataProvider
	strategy reconcile.Strategy
	log      *logger.Logger
}

// New creates a metrics service. The strategy is the canonical
// reconciliation used for estimate-backed metrics.
func New(provider contracts.DataProvider, strategy reconcile.Strategy, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		strategy: strategy,
		log:      log,
	}
}

// sourceData is everything one ticker's computations read. A failed or
// empty series leaves its slice nil and flags the failure so dependent
// metrics report the right reason.
type sourceData struct {
	quarterlyActuals   []contracts.DatedRecord
	quarterlyEstimates []contracts.DatedRecord
	annualActuals      []contracts.DatedRecord
	annualEstimates    []contracts.DatedRecord
	snapshot           *contracts.CompanySnapshot

	actualsErr   bool
	estimatesErr bool
	annualsErr   bool
	annualEstErr bool
	snapshotErr  bool
}

// fetch pulls every series, degrading per-series failures to flags.
func (s *Service) fetch(ctx context.Context, ticker string) sourceData {
	var src sourceData
	var err error

	log := s.log.WithField("ticker", ticker)

	if src.quarterlyActuals, err = s.provider.QuarterlyActuals(ctx, ticker); err != nil {
		log.WithError(err).Warn("quarterly actuals unavailable")
		src.actualsErr = true
	}
	if src.quarterlyEstimates, err = s.provider.QuarterlyEstimates(ctx, ticker); err != nil {
		log.WithError(err).Warn("quarterly estimates unavailable")
		src.estimatesErr = true
	}
	if src.annualActuals, err = s.provider.AnnualActuals(ctx, ticker); err != nil {
		log.WithError(err).Warn("annual actuals unavailable")
		src.annualsErr = true
	}
	if src.annualEstimates, err = s.provider.AnnualEstimates(ctx, ticker); err != nil {
		log.WithError(err).Warn("annual estimates unavailable")
		src.annualEstErr = true
	}
	if src.snapshot, err = s.provider.Snapshot(ctx, ticker); err != nil {
		log.WithError(err).Warn("company snapshot unavailable")
		src.snapshotErr = true
	}

	return src
}

// missing builds the failure for a series that is either errored or empty.
func missing(errored bool, detail string) contracts.MetricResult {
	if errored {
		return contracts.Failure(contracts.ProviderFailure, detail)
	}
	return contracts.Failure(contracts.MissingData, detail)
}

// ComputeMetrics computes the full metric map for a ticker. Every key in
// contracts.MetricKeys is present in the result; each metric fails
// independently and never takes its siblings down with it.
func (s *Service) ComputeMetrics(ctx context.Context, ticker string, asOf time.Time) contracts.MetricMap {
	src := s.fetch(ctx, ticker)

	year := asOf.Year()
	elapsed := fiscal.QuartersElapsed(year, asOf)

	factor := reconcile.ComputeFactor(s.strategy, src.quarterlyActuals, src.quarterlyEstimates)
	noAdjust := reconcile.ComputeFactor(reconcile.StrategyNone, nil, nil)

	ttm := aggregate.TTM(src.quarterlyActuals)
	priorTTM := aggregate.PriorTTM(src.quarterlyActuals)

	out := make(contracts.MetricMap, len(contracts.MetricKeys))

	// Price-based ratios
	out[contracts.MetricTTMPE] = s.ttmPE(src, ttm)
	out[contracts.MetricForwardPE] = s.annualForwardPE(src, year+1)
	out[contracts.MetricTwoYearForwardPE] = s.annualForwardPE(src, year+2)
	out[contracts.MetricTTMPSRatio] = s.ttmPS(src, ttm)
	out[contracts.MetricForwardPSRatio] = s.forwardPS(src, year, noAdjust)

	// Trailing growth
	out[contracts.MetricTTMEPSGrowth] = s.ttmGrowth(src, ttm, priorTTM, epsAxis)
	out[contracts.MetricTTMRevenueGrowth] = s.ttmGrowth(src, ttm, priorTTM, revenueAxis)

	// Estimate-backed growth
	out[contracts.MetricCurrentYearEPSGrowth] = s.currentYearGrowth(src, year, elapsed, factor, epsAxis)
	out[contracts.MetricCurrentYearRevGrowth] = s.currentYearGrowth(src, year, elapsed, noAdjust, revenueAxis)
	out[contracts.MetricNextYearEPSGrowth] = s.nextYearGrowth(src, year, elapsed, factor, epsAxis)
	out[contracts.MetricNextYearRevenueGrowth] = s.nextYearGrowth(src, year, elapsed, noAdjust, revenueAxis)

	// Margins
	out[contracts.MetricGrossMargin] = s.grossMargin(src, ttm)
	out[contracts.MetricNetMargin] = s.netMargin(src, ttm)

	s.log.WithFields(map[string]interface{}{
		"ticker":   ticker,
		"as_of":    asOf.Format("2006-01-02"),
		"strategy": string(factor.Strategy),
		"factor":   factor.Value,
		"computed": out.SuccessCount(),
		"total":    len(out),
	}).Info("metrics computed")

	return out
}

// axis selects which Totals field a growth metric compares.
type axis int

const (
	epsAxis axis = iota
	revenueAxis
)

func (a axis) value(t aggregate.Totals) (float64, bool) {
	if a == epsAxis {
		return t.EPS, t.HasEPS()
	}
	return t.Revenue, t.HasRevenue()
}

func (a axis) String() string {
	if a == epsAxis {
		return "eps"
	}
	return "revenue"
}

func (s *Service) ttmPE(src sourceData, ttm aggregate.Totals) contracts.MetricResult {
	if src.snapshot == nil {
		return missing(src.snapshotErr, "no company snapshot")
	}
	if !ttm.HasEPS() {
		return missing(src.actualsErr, "no reported quarters")
	}
	return calc.PERatio(src.snapshot.CurrentPrice, ttm.EPS)
}

func (s *Service) annualForwardPE(src sourceData, year int) contracts.MetricResult {
	if src.snapshot == nil {
		return missing(src.snapshotErr, "no company snapshot")
	}
	rec, ok := aggregate.AnnualRecord(year, src.annualEstimates)
	if !ok {
		return missing(src.annualEstErr, "no annual estimate for year")
	}
	eps, ok := rec.EstimatedEPS()
	if !ok {
		return contracts.Failure(contracts.MissingData, "annual estimate has no EPS")
	}
	return calc.PERatio(src.snapshot.CurrentPrice, eps)
}

func (s *Service) ttmPS(src sourceData, ttm aggregate.Totals) contracts.MetricResult {
	if src.snapshot == nil {
		return missing(src.snapshotErr, "no company snapshot")
	}
	if !ttm.HasRevenue() {
		return missing(src.actualsErr, "no reported quarters")
	}
	return calc.PSRatio(src.snapshot.MarketCap, ttm.Revenue)
}

// forwardPS uses next-year estimated revenue. Revenue estimates are never
// factor-adjusted.
func (s *Service) forwardPS(src sourceData, year int, noAdjust reconcile.Factor) contracts.MetricResult {
	if src.snapshot == nil {
		return missing(src.snapshotErr, "no company snapshot")
	}
	next := aggregate.YearEstimates(year+1, src.quarterlyEstimates, noAdjust)
	if !next.HasRevenue() {
		return missing(src.estimatesErr, "no next-year revenue estimates")
	}
	return calc.PSRatio(src.snapshot.MarketCap, next.Revenue)
}

func (s *Service) ttmGrowth(src sourceData, ttm, priorTTM aggregate.Totals, a axis) contracts.MetricResult {
	if len(src.quarterlyActuals) < contracts.MinQuartersForGrowth {
		return missing(src.actualsErr, "fewer than eight reported quarters")
	}
	current, ok := a.value(ttm)
	if !ok {
		return contracts.Failuref(contracts.MissingData, "ttm window has no %s", a)
	}
	prior, ok := a.value(priorTTM)
	if !ok {
		return contracts.Failuref(contracts.MissingData, "prior ttm window has no %s", a)
	}
	return calc.GrowthRate(current, prior)
}

func (s *Service) currentYearGrowth(src sourceData, year, elapsed int, factor reconcile.Factor, a axis) contracts.MetricResult {
	if len(src.quarterlyEstimates) == 0 {
		return missing(src.estimatesErr, "no quarterly estimates")
	}

	hybrid := aggregate.HybridYear(year, elapsed, src.quarterlyActuals, src.quarterlyEstimates, factor)
	prior := aggregate.YearActuals(year-1, src.quarterlyActuals)

	current, ok := a.value(hybrid)
	if !ok {
		return contracts.Failuref(contracts.MissingData, "hybrid year has no %s", a)
	}
	baseline, ok := a.value(prior)
	if !ok {
		return contracts.Failuref(contracts.MissingData, "prior year has no %s", a)
	}
	return calc.GrowthRate(current, baseline)
}

func (s *Service) nextYearGrowth(src sourceData, year, elapsed int, factor reconcile.Factor, a axis) contracts.MetricResult {
	if len(src.quarterlyEstimates) == 0 {
		return missing(src.estimatesErr, "no quarterly estimates")
	}

	next := aggregate.YearEstimates(year+1, src.quarterlyEstimates, factor)
	hybrid := aggregate.HybridYear(year, elapsed, src.quarterlyActuals, src.quarterlyEstimates, factor)

	current, ok := a.value(next)
	if !ok {
		return contracts.Failuref(contracts.MissingData, "next year has no %s estimates", a)
	}
	baseline, ok := a.value(hybrid)
	if !ok {
		return contracts.Failuref(contracts.MissingData, "hybrid year has no %s", a)
	}
	return calc.GrowthRate(current, baseline)
}

func (s *Service) grossMargin(src sourceData, ttm aggregate.Totals) contracts.MetricResult {
	if !ttm.HasGrossProfit() || !ttm.HasRevenue() {
		return missing(src.actualsErr, "no reported gross profit")
	}
	return calc.Margin(ttm.GrossProfit, ttm.Revenue)
}

func (s *Service) netMargin(src sourceData, ttm aggregate.Totals) contracts.MetricResult {
	if !ttm.HasNetIncome() || !ttm.HasRevenue() {
		return missing(src.actualsErr, "no reported net income")
	}
	return calc.Margin(ttm.NetIncome, ttm.Revenue)
}
