package grid_test

import (
	"time"

	"github.com/tartampluch/go-almanac/internal/annotate"
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/lunar"
)

// countingConverter answers every date and counts conversions.
type countingConverter struct {
	calls int
}

func (c *countingConverter) Convert(d civil.Date) (lunar.Info, error) {
	c.calls++
	if !lunar.InRange(d) {
		return lunar.Info{}, &lunar.OutOfRangeError{Date: d}
	}
	return lunar.Info{MonthName: "三月", DayName: "初三", StemBranchDay: "甲子"}, nil
}

// idResolver labels each day with its own date.
var idResolver = annotate.ResolverFunc(func(day annotate.DayInfo) (string, error) {
	return "L" + day.Date.Format(), nil
})

func date(y int, m time.Month, d int) civil.Date {
	return civil.New(y, m, d)
}
