// Package reconcile measures how analyst EPS estimates have tracked
// reported results and produces a correction factor for the quarters that
// are still estimates.
package reconcile

import (
	"math"
	"sort"

	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/internal/fiscal"
)

// Strategy selects how actual/estimate pairs are reduced to a factor.
type Strategy string

const (
	// StrategyNone applies no adjustment (identity factor).
	StrategyNone Strategy = "none"
	// StrategyAbsolute subtracts the mean absolute EPS miss.
	StrategyAbsolute Strategy = "absolute"
	// StrategyRatio multiplies by the mean actual/estimate ratio.
	StrategyRatio Strategy = "ratio"
	// StrategyMedian multiplies by the median actual/estimate ratio.
	// Canonical default: robust to a single blowout quarter.
	StrategyMedian Strategy = "median"
)

// Factor is the computed adjustment plus enough context to log it.
type Factor struct {
	Strategy Strategy `json:"strategy"`
	Value    float64  `json:"value"`
	Pairs    int      `json:"pairs"`
}

// pair is one (actual, estimated) EPS observation for the same quarter.
type pair struct {
	actual    float64
	estimated float64
}

// ComputeFactor derives the adjustment factor for a strategy from the
// historical record. Up to the four most recent actual quarters are paired
// with the estimate record carrying the exact same report date; quarters
// with no matching estimate fall out of the population. With no usable
// pairs the factor is the strategy's identity (0 for absolute, 1 for the
// multiplicative strategies), so applying it is a no-op.
func ComputeFactor(strategy Strategy, actuals, estimates []contracts.DatedRecord) Factor {
	f := Factor{Strategy: strategy, Value: identity(strategy)}
	if strategy == StrategyNone {
		return f
	}

	pairs := pairRecent(actuals, estimates)

	switch strategy {
	case StrategyAbsolute:
		// Only quarters where both sides are non-zero carry signal.
		sum, n := 0.0, 0
		for _, p := range pairs {
			if p.actual == 0 || p.estimated == 0 {
				continue
			}
			sum += math.Abs(p.actual - p.estimated)
			n++
		}
		if n > 0 {
			f.Value = sum / float64(n)
			f.Pairs = n
		}

	case StrategyRatio:
		sum, n := 0.0, 0
		for _, p := range pairs {
			if p.actual <= 0 || p.estimated <= 0 {
				continue
			}
			sum += p.actual / p.estimated
			n++
		}
		if n > 0 {
			f.Value = sum / float64(n)
			f.Pairs = n
		}

	case StrategyMedian:
		ratios := make([]float64, 0, len(pairs))
		for _, p := range pairs {
			if p.actual <= 0 || p.estimated <= 0 {
				continue
			}
			ratios = append(ratios, p.actual/p.estimated)
		}
		if len(ratios) > 0 {
			f.Value = median(ratios)
			f.Pairs = len(ratios)
		}
	}

	return f
}

// Apply adjusts one estimated EPS value. Only EPS is ever adjusted;
// revenue and net income pass through the aggregation untouched.
func (f Factor) Apply(estimatedEPS float64) float64 {
	switch f.Strategy {
	case StrategyAbsolute:
		return estimatedEPS - f.Value
	case StrategyRatio, StrategyMedian:
		return estimatedEPS * f.Value
	default:
		return estimatedEPS
	}
}

// Identity reports whether the factor is the strategy's no-op value.
func (f Factor) Identity() bool {
	return f.Value == identity(f.Strategy)
}

func identity(s Strategy) float64 {
	if s == StrategyAbsolute {
		return 0
	}
	return 1
}

// pairRecent pairs the four most recent actual quarters with estimates by
// exact report date.
func pairRecent(actuals, estimates []contracts.DatedRecord) []pair {
	recent := fiscal.SortByDateDesc(actuals)
	if len(recent) > contracts.QuartersForTTM {
		recent = recent[:contracts.QuartersForTTM]
	}

	byDate := make(map[int64]contracts.DatedRecord, len(estimates))
	for _, est := range estimates {
		if !est.ReportDate.IsZero() {
			byDate[est.ReportDate.Unix()] = est
		}
	}

	pairs := make([]pair, 0, len(recent))
	for _, act := range recent {
		actualEPS, ok := act.EPSValue()
		if !ok {
			continue
		}
		est, ok := byDate[act.ReportDate.Unix()]
		if !ok {
			continue
		}
		estimatedEPS, ok := est.EstimatedEPS()
		if !ok {
			continue
		}
		pairs = append(pairs, pair{actual: actualEPS, estimated: estimatedEPS})
	}
	return pairs
}

// median averages the two middle values for even-length input.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
