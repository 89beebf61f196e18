// Package valueobject contains domain value objects for the savings ledger.
package valueobject

import "time"

// AddMonths moves t by n calendar months, clamping the day to the last day of
// the target month: Jan 31 + 1 month is Feb 28 (or 29), never Mar 3.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears moves t by n years with the same clamping as AddMonths (Feb 29 -> Feb 28).
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FirstOfMonth returns midnight of the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	return FirstOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DayInMonth returns midnight of the given day in t's month, or false when the
// day does not exist in that month.
func DayInMonth(t time.Time, day int) (time.Time, bool) {
	y, m, _ := t.Date()
	if day < 1 || day > DaysInMonth(y, m) {
		return time.Time{}, false
	}
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location()), true
}
