// Package civil provides an immutable proleptic Gregorian calendar date.
//
// Date values carry no time of day and no time zone. Every transform returns
// a new value.
package civil

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
	"github.com/tartampluch/go-almanac/internal/config"
)

// ISO weekday numbers.
const (
	Monday   = 1
	Saturday = 6
	Sunday   = 7
)

// Date is a calendar day. The zero value is not a valid date; use New or Parse.
type Date struct {
	t time.Time // midnight UTC
}

// New returns the date for year, month and day. Out of range values are
// normalized the way time.Date does (Feb 30 becomes Mar 1 or 2).
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Parse parses a YYYY-MM-DD string.
func Parse(value string) (Date, error) {
	t, err := time.Parse(config.DateFormatISO, value)
	if err != nil {
		return Date{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return FromTime(t), nil
}

func (d Date) Year() int { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int { return d.t.Day() }
func (d Date) Time() time.Time { return d.t }
func (d Date) IsZero() bool { return d.t.IsZero() }
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
func (d Date) String() string { return d.Format() }
func (d Date) SubtractDays(n int) Date { return d.AddDays(-n) }

// Weekday returns the ISO weekday, 1=Monday..7=Sunday.
func (d Date) Weekday() int {
	if wd := d.t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return Sunday
}

// IsWeekend reports whether the date is a Saturday or a Sunday.
func (d Date) IsWeekend() bool {
	return d.Weekday() >= Saturday
}

// DaysInMonth returns the number of days of the date's month.
func (d Date) DaysInMonth() int {
	return int(datetime.DaysInMonth(d.Year(), datetime.Month(d.Month())))
}

// StartOfMonth returns the first day of the date's month.
func (d Date) StartOfMonth() Date {
	return New(d.Year(), d.Month(), 1)
}

// EndOfMonth returns the last day of the date's month.
func (d Date) EndOfMonth() Date {
	return New(d.Year(), d.Month(), d.DaysInMonth())
}

// SameMonth reports whether both dates fall in the same month of the same year.
func (d Date) SameMonth(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month()
}

// Format returns the date as YYYY-MM-DD.
func (d Date) Format() string {
	return d.t.Format(config.DateFormatISO)
}
