package fiscal

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestReportingQuarter(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want QuarterKey
	}{
		{"january continues prior year", date(2025, 1, 31), QuarterKey{2024, 4}},
		{"march continues prior year", date(2025, 3, 15), QuarterKey{2024, 4}},
		{"april is q1", date(2025, 4, 30), QuarterKey{2025, 1}},
		{"may is q2", date(2025, 5, 1), QuarterKey{2025, 2}},
		{"july is q2", date(2025, 7, 31), QuarterKey{2025, 2}},
		{"august is q3", date(2025, 8, 1), QuarterKey{2025, 3}},
		{"october is q3", date(2025, 10, 31), QuarterKey{2025, 3}},
		{"november is q4", date(2025, 11, 1), QuarterKey{2025, 4}},
		{"december is q4", date(2025, 12, 31), QuarterKey{2025, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReportingQuarter(tt.in)
			if !ok {
				t.Fatal("ReportingQuarter returned no mapping")
			}
			if got != tt.want {
				t.Errorf("ReportingQuarter(%s) = %s, want %s", tt.in.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestCalendarQuarter(t *testing.T) {
	tests := []struct {
		in   time.Time
		want QuarterKey
	}{
		{date(2025, 1, 31), QuarterKey{2025, 1}},
		{date(2025, 4, 1), QuarterKey{2025, 2}},
		{date(2025, 9, 30), QuarterKey{2025, 3}},
		{date(2025, 12, 1), QuarterKey{2025, 4}},
	}
	for _, tt := range tests {
		got, ok := CalendarQuarter(tt.in)
		if !ok || got != tt.want {
			t.Errorf("CalendarQuarter(%s) = %s, want %s", tt.in.Format("2006-01-02"), got, tt.want)
		}
	}
}

// The two rules must disagree on early-year report dates: that
// disagreement is what the continuation rule exists for.
func TestQuarterRulesDisagreeInJanuary(t *testing.T) {
	in := date(2025, 1, 31)

	reporting, _ := ReportingQuarter(in)
	calendar, _ := CalendarQuarter(in)

	if reporting != (QuarterKey{2024, 4}) {
		t.Errorf("ReportingQuarter = %s, want 2024Q4", reporting)
	}
	if calendar != (QuarterKey{2025, 1}) {
		t.Errorf("CalendarQuarter = %s, want 2025Q1", calendar)
	}
}

func TestQuarterMappersRejectZeroTime(t *testing.T) {
	if _, ok := ReportingQuarter(time.Time{}); ok {
		t.Error("ReportingQuarter accepted zero time")
	}
	if _, ok := CalendarQuarter(time.Time{}); ok {
		t.Error("CalendarQuarter accepted zero time")
	}
}

func TestQuartersElapsed(t *testing.T) {
	tests := []struct {
		name string
		year int
		asOf time.Time
		want int
	}{
		{"future year", 2026, date(2025, 6, 1), 0},
		{"past year", 2024, date(2025, 6, 1), 4},
		{"current year q1", 2025, date(2025, 2, 15), 0},
		{"current year march boundary", 2025, date(2025, 3, 31), 0},
		{"current year april", 2025, date(2025, 4, 1), 1},
		{"current year june boundary", 2025, date(2025, 6, 30), 1},
		{"current year july", 2025, date(2025, 7, 1), 2},
		{"current year september boundary", 2025, date(2025, 9, 30), 2},
		{"current year october", 2025, date(2025, 10, 1), 3},
		{"current year december", 2025, date(2025, 12, 31), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuartersElapsed(tt.year, tt.asOf); got != tt.want {
				t.Errorf("QuartersElapsed(%d, %s) = %d, want %d",
					tt.year, tt.asOf.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}
