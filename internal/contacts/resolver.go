package contacts

import (
	"time"

	"github.com/tartampluch/go-almanac/internal/annotate"
)

type monthDay struct {
	month time.Month
	day   int
}

// Resolver labels the birthdays of a contact list. When several contacts
// share a day, the first one loaded wins.
type Resolver struct {
	byDay map[monthDay]Birthday
}

var _ annotate.Resolver = (*Resolver)(nil)

// NewResolver indexes birthdays by month and day.
func NewResolver(birthdays []Birthday) *Resolver {
	r := &Resolver{byDay: make(map[monthDay]Birthday, len(birthdays))}
	for _, b := range birthdays {
		key := monthDay{b.Month, b.Day}
		if _, taken := r.byDay[key]; !taken {
			r.byDay[key] = b
		}
	}
	return r
}

// Len returns the number of distinct birthday dates.
func (r *Resolver) Len() int {
	return len(r.byDay)
}

// Resolve returns "{name}生日" when a contact was born on the day.
func (r *Resolver) Resolve(day annotate.DayInfo) (string, error) {
	if b, ok := r.byDay[monthDay{day.Date.Month(), day.Date.Day()}]; ok {
		return b.Label(), nil
	}
	// Feb 29 births in a common year.
	if b, ok := r.byDay[monthDay{time.February, 29}]; ok && b.ObservedOn(day.Date.Year()).Equal(day.Date) {
		return b.Label(), nil
	}
	return "", nil
}
