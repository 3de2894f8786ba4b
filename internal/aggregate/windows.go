package aggregate

import (
	"time"

	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/internal/fiscal"
	"github.com/equimetrics/backend/internal/reconcile"
)

// HybridYear blends one fiscal year from reported and estimated quarters:
// the first elapsed quarters come from actuals, the remainder from
// estimates with the reconciliation factor applied to estimated EPS. An
// elapsed quarter with no reported record falls back to its estimate, so
// a company that has not filed yet still contributes a full quarter.
// Quarters missing on both sides simply contribute nothing.
func HybridYear(year, elapsed int, actuals, estimates []contracts.DatedRecord, factor reconcile.Factor) Totals {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > 4 {
		elapsed = 4
	}

	actualQs := fiscal.SelectYearQuarters(year, actuals)
	estQs := fiscal.SelectYearQuarters(year, estimates)

	var t Totals
	for i := 0; i < 4; i++ {
		switch {
		case i < elapsed && i < len(actualQs):
			t.addActual(actualQs[i])
		case i < len(estQs):
			t.addEstimate(estQs[i], factor.Apply)
		}
	}
	return t
}

// YearActuals sums a fiscal year from reported quarters only. Used as the
// prior-year baseline.
func YearActuals(year int, actuals []contracts.DatedRecord) Totals {
	var t Totals
	for _, rec := range fiscal.SelectYearQuarters(year, actuals) {
		t.addActual(rec)
	}
	return t
}

// YearEstimates sums a fiscal year from estimates only, adjusting every
// quarter's EPS. Future fiscal years are all-estimate, so the factor
// covers the whole year.
func YearEstimates(year int, estimates []contracts.DatedRecord, factor reconcile.Factor) Totals {
	var t Totals
	for _, rec := range fiscal.SelectYearQuarters(year, estimates) {
		t.addEstimate(rec, factor.Apply)
	}
	return t
}

// forwardQuarters lists the estimate quarters still ahead as of the
// reference date, chronological: the unreported remainder of the current
// fiscal year, then the next two full years.
func forwardQuarters(asOf time.Time, estimates []contracts.DatedRecord) []contracts.DatedRecord {
	year := asOf.Year()
	elapsed := fiscal.QuartersElapsed(year, asOf)

	current := fiscal.SelectYearQuarters(year, estimates)
	if len(current) > elapsed {
		current = current[elapsed:]
	} else {
		current = nil
	}

	out := make([]contracts.DatedRecord, 0, 12)
	out = append(out, current...)
	out = append(out, fiscal.SelectYearQuarters(year+1, estimates)...)
	out = append(out, fiscal.SelectYearQuarters(year+2, estimates)...)
	return out
}

// NTM sums the next twelve months of estimates: the remaining
// current-year quarters, then next-year quarters to fill four. The factor
// applies to every quarter since all of them are estimates.
func NTM(asOf time.Time, estimates []contracts.DatedRecord, factor reconcile.Factor) Totals {
	quarters := forwardQuarters(asOf, estimates)
	if len(quarters) > 4 {
		quarters = quarters[:4]
	}

	var t Totals
	for _, rec := range quarters {
		t.addEstimate(rec, factor.Apply)
	}
	return t
}

// NTMPlusOne sums estimate quarters five through eight ahead, the year
// that starts where the NTM window ends.
func NTMPlusOne(asOf time.Time, estimates []contracts.DatedRecord, factor reconcile.Factor) Totals {
	quarters := forwardQuarters(asOf, estimates)

	var t Totals
	if len(quarters) <= 4 {
		return t
	}
	quarters = quarters[4:]
	if len(quarters) > 4 {
		quarters = quarters[:4]
	}
	for _, rec := range quarters {
		t.addEstimate(rec, factor.Apply)
	}
	return t
}

// TTM sums the four most recent reported quarters, regardless of fiscal
// year boundaries.
func TTM(actuals []contracts.DatedRecord) Totals {
	return trailingWindow(actuals, 0)
}

// PriorTTM sums the four quarters preceding the TTM window. Meaningful
// only when at least eight reported quarters exist; with fewer the totals
// come back partial or empty and callers fail the metric.
func PriorTTM(actuals []contracts.DatedRecord) Totals {
	return trailingWindow(actuals, 4)
}

func trailingWindow(actuals []contracts.DatedRecord, skip int) Totals {
	recent := fiscal.SortByDateDesc(actuals)

	var t Totals
	if len(recent) <= skip {
		return t
	}
	recent = recent[skip:]
	if len(recent) > contracts.QuartersForTTM {
		recent = recent[:contracts.QuartersForTTM]
	}
	for _, rec := range recent {
		t.addActual(rec)
	}
	return t
}

// AnnualRecord finds the annual record whose report date falls in the
// given fiscal year (annual statements carry the fiscal year-end date).
func AnnualRecord(year int, annuals []contracts.DatedRecord) (contracts.DatedRecord, bool) {
	for _, rec := range annuals {
		if !rec.ReportDate.IsZero() && rec.ReportDate.Year() == year {
			return rec, true
		}
	}
	return contracts.DatedRecord{}, false
}
