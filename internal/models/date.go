package models

import "time"

// DateFormat is the wire format for calendar dates (YYYY-MM-DD).
const DateFormat = "2006-01-02"

// Fixed clock conventions for presentation. Comparisons in the engine are
// day-granular; these hours never influence eligibility.
const (
	CheckInHour  = 12
	CheckOutHour = 11
)

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// DateOnly strips the time component, keeping year/month/day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DaysBetween returns the number of whole days from a to b (b - a).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// AtCheckIn returns the date at the conventional check-in hour.
func AtCheckIn(date time.Time) time.Time {
	d := DateOnly(date)
	return d.Add(CheckInHour * time.Hour)
}

// AtCheckOut returns the date at the conventional check-out hour.
func AtCheckOut(date time.Time) time.Time {
	d := DateOnly(date)
	return d.Add(CheckOutHour * time.Hour)
}
