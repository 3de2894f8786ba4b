package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/internal/reconcile"
)

func actualRec(y, m, d int, eps, revenue float64) contracts.DatedRecord {
	return contracts.DatedRecord{
		ReportDate: time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC),
		EPS:        contracts.Float64Ptr(eps),
		Revenue:    contracts.Float64Ptr(revenue),
	}
}

func estimateRec(y, m, d int, eps, revenue float64) contracts.DatedRecord {
	return contracts.DatedRecord{
		ReportDate:          time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC),
		EstimatedEPSAvg:     contracts.Float64Ptr(eps),
		EstimatedRevenueAvg: contracts.Float64Ptr(revenue),
	}
}

func identityFactor() reconcile.Factor {
	return reconcile.ComputeFactor(reconcile.StrategyNone, nil, nil)
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// fullYearData builds a 2025 fiscal year: four actual quarters of EPS 1.0
// and four estimate quarters of EPS 2.0, aligned to the same buckets.
func fullYearData() (actuals, estimates []contracts.DatedRecord) {
	months := []int{4, 5, 8, 11}
	for _, m := range months {
		actuals = append(actuals, actualRec(2025, m, 1, 1.0, 100))
		estimates = append(estimates, estimateRec(2025, m, 1, 2.0, 110))
	}
	return actuals, estimates
}

func TestHybridYear_BlendBoundary(t *testing.T) {
	actuals, estimates := fullYearData()

	// two quarters reported: 2 actual + 2 estimate quarters
	blended := HybridYear(2025, 2, actuals, estimates, identityFactor())
	if !almostEqual(blended.EPS, 1.0+1.0+2.0+2.0) {
		t.Errorf("elapsed=2 EPS = %v, want 6.0", blended.EPS)
	}
	if blended.EPSQuarters != 4 {
		t.Errorf("elapsed=2 quarters = %d, want 4", blended.EPSQuarters)
	}

	// whole year reported: no estimate may leak in
	reported := HybridYear(2025, 4, actuals, estimates, identityFactor())
	if !almostEqual(reported.EPS, 4.0) {
		t.Errorf("elapsed=4 EPS = %v, want 4.0 (actuals only)", reported.EPS)
	}

	// nothing reported: all estimates
	estimated := HybridYear(2025, 0, actuals, estimates, identityFactor())
	if !almostEqual(estimated.EPS, 8.0) {
		t.Errorf("elapsed=0 EPS = %v, want 8.0 (estimates only)", estimated.EPS)
	}
}

func TestHybridYear_MissingActualFallsBackToEstimate(t *testing.T) {
	// Two quarters elapsed but only Q1 has been filed: Q2 must come from
	// its estimate instead of dropping out of the year.
	actuals := []contracts.DatedRecord{
		actualRec(2025, 4, 1, 1.0, 100),
	}
	_, estimates := fullYearData()
	for i := range estimates {
		estimates[i].EstimatedEPSAvg = contracts.Float64Ptr(1.0)
	}

	blended := HybridYear(2025, 2, actuals, estimates, identityFactor())
	if !almostEqual(blended.EPS, 4.0) {
		t.Errorf("EPS = %v, want 4.0 (one actual + three estimates)", blended.EPS)
	}
	if blended.EPSQuarters != 4 {
		t.Errorf("quarters = %d, want 4", blended.EPSQuarters)
	}
}

func TestHybridYear_FactorAdjustsOnlyEstimatedEPS(t *testing.T) {
	actuals, estimates := fullYearData()

	factor := reconcile.Factor{Strategy: reconcile.StrategyMedian, Value: 0.5, Pairs: 4}
	blended := HybridYear(2025, 2, actuals, estimates, factor)

	// actual EPS untouched, estimated EPS halved
	if !almostEqual(blended.EPS, 1.0+1.0+1.0+1.0) {
		t.Errorf("EPS = %v, want 4.0", blended.EPS)
	}
	// revenue never adjusted on either side
	if !almostEqual(blended.Revenue, 100+100+110+110) {
		t.Errorf("Revenue = %v, want 420", blended.Revenue)
	}
}

func TestYearEstimates_AdjustsAllQuarters(t *testing.T) {
	_, estimates := fullYearData()

	factor := reconcile.Factor{Strategy: reconcile.StrategyRatio, Value: 1.5, Pairs: 2}
	got := YearEstimates(2025, estimates, factor)
	if !almostEqual(got.EPS, 4*2.0*1.5) {
		t.Errorf("EPS = %v, want 12.0", got.EPS)
	}
	if !almostEqual(got.Revenue, 440) {
		t.Errorf("Revenue = %v, want 440 (unadjusted)", got.Revenue)
	}
}

func TestNTM_FillsFromNextYear(t *testing.T) {
	// as of 2025-08-15 two quarters counted as elapsed; NTM should take
	// the last two current-year estimate quarters plus the first two of
	// next year.
	asOf := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	estimates := []contracts.DatedRecord{
		estimateRec(2025, 4, 30, 1.0, 10),
		estimateRec(2025, 7, 30, 2.0, 20),
		estimateRec(2025, 10, 30, 3.0, 30),
		estimateRec(2026, 1, 30, 4.0, 40),
		estimateRec(2026, 4, 30, 5.0, 50),
		estimateRec(2026, 7, 30, 6.0, 60),
	}

	got := NTM(asOf, estimates, identityFactor())
	if !almostEqual(got.EPS, 3.0+4.0+5.0+6.0) {
		t.Errorf("NTM EPS = %v, want 18.0", got.EPS)
	}
	if got.EPSQuarters != 4 {
		t.Errorf("NTM quarters = %d, want 4", got.EPSQuarters)
	}
}

func TestNTMPlusOne_TakesQuartersFiveThroughEight(t *testing.T) {
	asOf := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	var estimates []contracts.DatedRecord
	// full current year (Q1/Q2 already reported), then 2026 and 2027
	estimates = append(estimates,
		estimateRec(2025, 4, 30, 0.5, 0),
		estimateRec(2025, 7, 30, 0.6, 0),
		estimateRec(2025, 10, 30, 1.0, 0),
		estimateRec(2026, 1, 30, 2.0, 0),
		estimateRec(2026, 4, 30, 3.0, 0),
		estimateRec(2026, 7, 30, 4.0, 0),
		estimateRec(2026, 10, 30, 5.0, 0),
		estimateRec(2027, 1, 30, 6.0, 0),
		estimateRec(2027, 4, 30, 7.0, 0),
		estimateRec(2027, 7, 30, 8.0, 0),
	)

	ntm := NTM(asOf, estimates, identityFactor())
	if !almostEqual(ntm.EPS, 1.0+2.0+3.0+4.0) {
		t.Errorf("NTM EPS = %v, want 10.0", ntm.EPS)
	}

	ntm1 := NTMPlusOne(asOf, estimates, identityFactor())
	if !almostEqual(ntm1.EPS, 5.0+6.0+7.0+8.0) {
		t.Errorf("NTM+1 EPS = %v, want 26.0", ntm1.EPS)
	}
}

func TestTTMAndPriorTTM(t *testing.T) {
	var actuals []contracts.DatedRecord
	// eight quarters, oldest EPS 1 .. newest EPS 8
	dates := [][2]int{{2023, 11}, {2024, 2}, {2024, 5}, {2024, 8}, {2024, 11}, {2025, 2}, {2025, 5}, {2025, 8}}
	for i, ym := range dates {
		actuals = append(actuals, actualRec(ym[0], ym[1], 1, float64(i+1), float64((i+1)*10)))
	}

	ttm := TTM(actuals)
	if !almostEqual(ttm.EPS, 5+6+7+8) {
		t.Errorf("TTM EPS = %v, want 26", ttm.EPS)
	}

	prior := PriorTTM(actuals)
	if !almostEqual(prior.EPS, 1+2+3+4) {
		t.Errorf("prior TTM EPS = %v, want 10", prior.EPS)
	}
	if !almostEqual(prior.Revenue, 100) {
		t.Errorf("prior TTM revenue = %v, want 100", prior.Revenue)
	}
}

func TestPriorTTM_InsufficientHistory(t *testing.T) {
	actuals := []contracts.DatedRecord{
		actualRec(2025, 2, 1, 1, 10),
		actualRec(2025, 5, 1, 2, 20),
	}
	if got := PriorTTM(actuals); !got.Empty() {
		t.Errorf("PriorTTM with 2 quarters = %+v, want empty", got)
	}
}

func TestAnnualRecord(t *testing.T) {
	annuals := []contracts.DatedRecord{
		actualRec(2024, 9, 28, 6.0, 400),
		actualRec(2023, 9, 30, 5.0, 380),
	}

	got, ok := AnnualRecord(2024, annuals)
	if !ok {
		t.Fatal("AnnualRecord(2024) not found")
	}
	if eps, _ := got.EPSValue(); !almostEqual(eps, 6.0) {
		t.Errorf("annual EPS = %v, want 6.0", eps)
	}

	if _, ok := AnnualRecord(2020, annuals); ok {
		t.Error("AnnualRecord(2020) should not be found")
	}
}
