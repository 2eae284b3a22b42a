// Package contacts reads birthdays from vCard sources and labels them on the
// calendar.
package contacts

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
)

// Birthday is the part of a vCard the calendar cares about.
type Birthday struct {
	Name string

	// Month and Day of birth. Year is zero when the vCard only carries --MM-DD.
	Month time.Month
	Day   int
	Year  int
}

// Label is the annotation shown on the birthday cell.
func (b Birthday) Label() string {
	name := []rune(b.Name)
	if len(name) > config.LabelMaxNameLen {
		name = name[:config.LabelMaxNameLen]
	}
	return fmt.Sprintf(config.FormatBirthday, string(name))
}

// ObservedOn returns the day the birthday falls on in year. Feb 29 births
// are observed on Feb 28 in common years.
func (b Birthday) ObservedOn(year int) civil.Date {
	d := civil.New(year, b.Month, b.Day)
	if d.Month() != b.Month {
		return civil.New(year, b.Month+1, 1).AddDays(-1)
	}
	return d
}
