// Package lunar converts civil dates to their traditional Chinese calendar
// description: lunar month and day names, solar term and day stem-branch.
package lunar

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/6tail/lunar-go/calendar"
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
)

// Term names the resolvers test for.
const (
	TermSummerSolstice = "夏至"
	TermAutumnBegins   = "立秋"
	TermWinterSolstice = "冬至"

	// StemGeng is the heavenly stem of a "geng day".
	StemGeng = "庚"

	monthSuffix = "月"
)

// Supported conversion range, inclusive.
var (
	MinDate = civil.New(1900, time.January, 31)
	MaxDate = civil.New(2100, time.December, 31)
)

// ErrOutOfRange is matched by every OutOfRangeError via errors.Is.
var ErrOutOfRange = errors.New(config.ErrOutOfRange)

// OutOfRangeError is returned for dates the conversion cannot represent.
type OutOfRangeError struct {
	Date civil.Date
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s (supported %s..%s)", config.ErrOutOfRange, e.Date, MinDate, MaxDate)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Info is the lunar description of one civil date.
type Info struct {
	MonthName     string // e.g. "正月", "闰二月", "腊月"
	DayName       string // e.g. "初一", "廿三", "三十"
	SolarTerm     string // empty unless the date is exactly a term date
	StemBranchDay string // e.g. "庚午"
}

// IsGengDay reports whether the day stem is 庚.
func (i Info) IsGengDay() bool {
	return strings.HasPrefix(i.StemBranchDay, StemGeng)
}

// Converter is the solar to lunar conversion primitive.
type Converter interface {
	Convert(d civil.Date) (Info, error)
}

// Calendar implements Converter with the lunar-go astronomical tables.
type Calendar struct{}

// InRange reports whether d can be converted.
func InRange(d civil.Date) bool {
	return !d.Before(MinDate) && !MaxDate.Before(d)
}

// Convert returns the lunar description of d.
func (Calendar) Convert(d civil.Date) (Info, error) {
	if d.IsZero() || !InRange(d) {
		slog.Debug(config.ErrOutOfRange,
			config.LogKeyComponent, config.CompLunar,
			config.LogKeyDate, d.String())
		return Info{}, &OutOfRangeError{Date: d}
	}
	l := calendar.NewSolarFromYmd(d.Year(), int(d.Month()), d.Day()).GetLunar()
	return Info{
		MonthName:     l.GetMonthInChinese() + monthSuffix,
		DayName:       l.GetDayInChinese(),
		SolarTerm:     l.GetJieQi(),
		StemBranchDay: l.GetDayInGanZhi(),
	}, nil
}
