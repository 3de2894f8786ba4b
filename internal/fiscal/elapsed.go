package fiscal

import "time"

// QuartersElapsed estimates how many quarters of the given fiscal year
// have been reported as of a reference date. It is a coarse heuristic:
// reports lag quarter closes by roughly one quarter, so mid-year the
// count trails the calendar.
//
//	future year     -> 0
//	past year       -> 4
//	current year    -> month <= 3: 0, <= 6: 1, <= 9: 2, else 3
//
// asOf is always supplied by the caller; the wall clock enters only at
// the CLI/API boundary.
func QuartersElapsed(year int, asOf time.Time) int {
	switch {
	case year > asOf.Year():
		return 0
	case year < asOf.Year():
		return 4
	}

	switch month := int(asOf.Month()); {
	case month <= 3:
		return 0
	case month <= 6:
		return 1
	case month <= 9:
		return 2
	default:
		return 3
	}
}
