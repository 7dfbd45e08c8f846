package domain

import "time"

// Date is a calendar date with no time component, as produced by a date
// picker. The zero value is "no date picked".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Today returns the current date in the given location.
func Today(loc *time.Location) Date {
	return DateOf(time.Now().In(loc))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether no date has been picked.
func (d Date) IsZero() bool {
	return d == Date{}
}

// At combines the date with a time of day in the given location.
// Date and time are picked independently and merged exactly once, here;
// no UTC normalization happens before the merge.
func (d Date) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
}

// TimeOfDay is a wall-clock time as produced by a time picker.
// The zero value means midnight, matching a picker left untouched.
type TimeOfDay struct {
	Hour   int
	Minute int
}
