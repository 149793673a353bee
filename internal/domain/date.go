package domain

import "time"

const (
	// DateLayout is the ISO date format used for Trip.Date and the
	// closure date.
	DateLayout = "2006-01-02"
	// MonthLayout is the calendar-month format used by report filters
	// and driver exports.
	MonthLayout = "2006-01"
)

// ParseDate parses an ISO "2006-01-02" date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseMonth parses a "2006-01" month string.
func ParseMonth(s string) (time.Time, error) {
	return time.Parse(MonthLayout, s)
}

// InMonth reports whether the ISO date s falls in the calendar month
// month ("2006-01"). Malformed dates match nothing.
func InMonth(s, month string) bool {
	d, err := ParseDate(s)
	if err != nil {
		return false
	}
	m, err := ParseMonth(month)
	if err != nil {
		return false
	}
	return d.Year() == m.Year() && d.Month() == m.Month()
}

// OnOrBefore reports whether ISO date s is on or before ISO date cutoff.
// An empty or malformed cutoff locks nothing; a malformed s is treated
// as unlocked so a bad record can still be repaired.
func OnOrBefore(s, cutoff string) bool {
	if cutoff == "" {
		return false
	}
	d, err := ParseDate(s)
	if err != nil {
		return false
	}
	c, err := ParseDate(cutoff)
	if err != nil {
		return false
	}
	return !d.After(c)
}
