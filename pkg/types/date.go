package types

import (
	"fmt"
	"time"
)

// DateLayout is the wire and display layout for calendar dates.
const DateLayout = "2006-01-02"

// Date returns the calendar date y-m-d as a UTC midnight time.Time.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to its calendar date in t's own location and returns it
// as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string. Returns ErrInvalidDate on failure.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseDatePtr parses s like ParseDate but maps the empty string to nil.
func ParseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DatePtr returns a pointer to the calendar date of t.
func DatePtr(t time.Time) *time.Time {
	d := DateOf(t)
	return &d
}

// FormatDate renders an optional date, using "?" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "?"
	}
	return t.Format(DateLayout)
}

// DaysBetween returns the whole number of days from a to b (negative when b
// precedes a).
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// DateRange is an occupancy window. Either endpoint may be unknown.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Complete reports whether both endpoints are known.
func (r DateRange) Complete() bool {
	return r.Start != nil && r.End != nil
}

// Valid reports whether a complete range has Start strictly before End.
// Incomplete ranges are valid; they simply cannot be evaluated.
func (r DateRange) Valid() bool {
	if !r.Complete() {
		return true
	}
	return r.Start.Before(*r.End)
}

// String renders the range for display, e.g. "2024-05-01 to 2024-08-15".
func (r DateRange) String() string {
	return FormatDate(r.Start) + " to " + FormatDate(r.End)
}
