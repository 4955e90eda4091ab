// utils/dates.go
package utils

import "time"

// DateLayout is the calendar-date format used for appointment and
// availability keys.
const DateLayout = "2006-01-02"

// DaysBetween counts calendar days from start to end, each read in its own
// location. Negative when end is the earlier date.
func DaysBetween(start, end time.Time) int {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// LocalDate formats t as YYYY-MM-DD from its own location's calendar fields.
// Converting to UTC first would move late-evening times west of UTC onto
// the next day.
func LocalDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a local calendar date by n days, keeping the location so
// DST transitions do not skip or repeat a date.
func AddDays(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day+n, 0, 0, 0, 0, t.Location())
}

// ParseLocalDate parses YYYY-MM-DD as midnight in loc.
func ParseLocalDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// IsLocalDate reports whether s is a valid YYYY-MM-DD date.
func IsLocalDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
