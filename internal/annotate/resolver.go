// Package annotate decides which single label, if any, is shown on a day.
//
// A label comes from an ordered Chain of Resolvers. Each resolver classifies
// the day against one labeling scheme; the first non-empty label wins and the
// remaining resolvers are not evaluated.
package annotate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/tartampluch/go-almanac/internal/lunar"
)

// DayInfo is everything a resolver may look at for one date.
type DayInfo struct {
	LunarMonthName string
	LunarDayName   string
	Month          int
	Day            int
	DateOrderKey   string
	SolarTerm      string
	Date           civil.Date
	StemBranchDay  string

	lunar lunar.Converter
}

// Describe computes the DayInfo of d. Conversion errors, including
// lunar.OutOfRangeError, are returned unchanged.
func Describe(conv lunar.Converter, d civil.Date) (DayInfo, error) {
	if conv == nil {
		return DayInfo{}, errors.New(config.ErrLunarMissing)
	}
	info, err := conv.Convert(d)
	if err != nil {
		return DayInfo{}, err
	}
	month := int(d.Month())
	return DayInfo{
		LunarMonthName: info.MonthName,
		LunarDayName:   info.DayName,
		Month:          month,
		Day:            d.Day(),
		DateOrderKey:   DateOrderKey(month, d.Day(), d.Weekday()),
		SolarTerm:      info.SolarTerm,
		Date:           d,
		StemBranchDay:  info.StemBranchDay,
		lunar:          conv,
	}, nil
}

// TermOn returns the solar term of another date, using the same converter
// that described this day.
func (i DayInfo) TermOn(d civil.Date) (string, error) {
	if i.lunar == nil {
		return "", errors.New(config.ErrLunarMissing)
	}
	info, err := i.lunar.Convert(d)
	if err != nil {
		return "", err
	}
	return info.SolarTerm, nil
}

// IsGengDay reports whether the day stem is 庚.
func (i DayInfo) IsGengDay() bool {
	return lunar.Info{StemBranchDay: i.StemBranchDay}.IsGengDay()
}

// Resolver classifies a day against one labeling scheme.
// An empty label means no match.
type Resolver interface {
	Resolve(day DayInfo) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(day DayInfo) (string, error)

// Resolve calls f(day).
func (f ResolverFunc) Resolve(day DayInfo) (string, error) {
	return f(day)
}

// Chain is an ordered list of resolvers, highest priority first.
type Chain []Resolver

// Validate rejects chains that contain nil resolvers.
func (c Chain) Validate() error {
	for i, r := range c {
		if r == nil {
			return config.Invalid("resolvers["+strconv.Itoa(i)+"]", nil, config.ErrNilResolver)
		}
		if f, ok := r.(ResolverFunc); ok && f == nil {
			return config.Invalid("resolvers["+strconv.Itoa(i)+"]", nil, config.ErrNilResolver)
		}
	}
	return nil
}

// Resolve returns the first non-empty label of the chain. Resolvers after the
// first match are not called. An empty chain labels nothing. Range errors pass
// through unchanged; any other resolver error is wrapped with the date.
func (c Chain) Resolve(day DayInfo) (string, error) {
	for _, r := range c {
		label, err := r.Resolve(day)
		if err != nil {
			if errors.Is(err, lunar.ErrOutOfRange) {
				return "", err
			}
			return "", fmt.Errorf("%s %s: %w", config.ErrAnnotate, day.Date, err)
		}
		if label != "" {
			return label, nil
		}
	}
	return "", nil
}
