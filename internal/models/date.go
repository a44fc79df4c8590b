package models

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date represents a calendar date without time of day or zone.
// The zero Date is treated as "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// IsValid reports whether d names an existing calendar day.
func (d Date) IsValid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= daysIn(d.Year, d.Month)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths returns d shifted by n months. The day is clamped to the
// last day of the resulting month, so 2024-03-31 minus one month is 2024-02-29.
func (d Date) AddMonths(n int) Date {
	total := d.Year*12 + int(d.Month-1) + n
	year := floorDiv(total, 12)
	month := time.Month(total-year*12) + time.January
	day := d.Day
	if last := daysIn(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

// MonthsBetween returns the number of whole months from start to end.
// A trailing partial month is not counted and the result is negative
// when end precedes start.
func MonthsBetween(start, end Date) int {
	months := (end.Year*12 + int(end.Month)) - (start.Year*12 + int(start.Month))
	days := end.Day - start.Day
	switch {
	case months > 0 && days < 0:
		months--
	case months < 0 && days > 0:
		months++
	}
	return months
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
