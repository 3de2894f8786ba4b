// Package fiscal maps report dates to fiscal quarters and selects the
// quarterly records that make up a fiscal year.
package fiscal

import (
	"fmt"
	"time"
)

// QuarterKey identifies one fiscal quarter. Derived from report dates,
// never stored.
type QuarterKey struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"` // 1..4
}

// String renders the key as "2024Q4".
func (k QuarterKey) String() string {
	return fmt.Sprintf("%dQ%d", k.Year, k.Quarter)
}

// CalendarQuarter maps a date to the calendar quarter of its own year:
// Q1=Jan-Mar, Q2=Apr-Jun, Q3=Jul-Sep, Q4=Oct-Dec. Used for flat
// trailing-window bucketing and display labels.
func CalendarQuarter(t time.Time) (QuarterKey, bool) {
	if t.IsZero() {
		return QuarterKey{}, false
	}
	return QuarterKey{
		Year:    t.Year(),
		Quarter: (int(t.Month())-1)/3 + 1,
	}, true
}

// ReportingQuarter maps a report date to the fiscal quarter the report
// covers, under the continuation rule: companies file a quarter's results
// one to three months after it closes, so a January-March report date
// belongs to Q4 of the previous year.
//
//	month 1-3  -> (year-1, Q4)
//	month 4    -> (year, Q1)
//	month 5-7  -> (year, Q2)
//	month 8-10 -> (year, Q3)
//	month 11-12 -> (year, Q4)
func ReportingQuarter(t time.Time) (QuarterKey, bool) {
	if t.IsZero() {
		return QuarterKey{}, false
	}
	year, month := t.Year(), int(t.Month())
	switch {
	case month <= 3:
		return QuarterKey{Year: year - 1, Quarter: 4}, true
	case month == 4:
		return QuarterKey{Year: year, Quarter: 1}, true
	case month <= 7:
		return QuarterKey{Year: year, Quarter: 2}, true
	case month <= 10:
		return QuarterKey{Year: year, Quarter: 3}, true
	default:
		return QuarterKey{Year: year, Quarter: 4}, true
	}
}
