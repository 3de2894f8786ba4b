package fiscal

import (
	"sort"

	"github.com/equimetrics/backend/internal/contracts"
)

// SelectYearQuarters picks the records that represent fiscal year's four
// quarters from a mixed pile of dated records.
//
// Bucketing by report month for the target year: 1-4 -> Q1, 5-7 -> Q2,
// 8-10 -> Q3, 11-12 -> Q4. Additionally, January-March reports of year+1
// land in the target year's Q4 bucket (continuation rule), so a single
// January report can legitimately serve as Q1 of its own year and Q4 of
// the prior year in two separate calls.
//
// When a bucket sees more than one record (re-filed statements), the most
// recent report date wins; equal dates keep the first record in input
// order. The result is chronological, holds at most four records, and
// omits quarters with no data.
func SelectYearQuarters(year int, records []contracts.DatedRecord) []contracts.DatedRecord {
	byQuarter := make(map[int]contracts.DatedRecord, 4)

	assign := func(q int, rec contracts.DatedRecord) {
		cur, ok := byQuarter[q]
		if !ok || rec.ReportDate.After(cur.ReportDate) {
			byQuarter[q] = rec
		}
	}

	for _, rec := range records {
		if rec.ReportDate.IsZero() {
			continue
		}
		y, m := rec.ReportDate.Year(), int(rec.ReportDate.Month())
		switch {
		case y == year && m <= 4:
			assign(1, rec)
		case y == year && m <= 7:
			assign(2, rec)
		case y == year && m <= 10:
			assign(3, rec)
		case y == year:
			assign(4, rec)
		case y == year+1 && m <= 3:
			assign(4, rec)
		}
	}

	out := make([]contracts.DatedRecord, 0, 4)
	for q := 1; q <= 4; q++ {
		if rec, ok := byQuarter[q]; ok {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReportDate.Before(out[j].ReportDate)
	})
	return out
}

// SortByDateDesc returns a copy sorted most recent report date first.
func SortByDateDesc(records []contracts.DatedRecord) []contracts.DatedRecord {
	out := make([]contracts.DatedRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReportDate.After(out[j].ReportDate)
	})
	return out
}

// SortByDateAsc returns a copy sorted oldest report date first.
func SortByDateAsc(records []contracts.DatedRecord) []contracts.DatedRecord {
	out := make([]contracts.DatedRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReportDate.Before(out[j].ReportDate)
	})
	return out
}
