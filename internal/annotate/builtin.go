package annotate

import "github.com/tartampluch/go-almanac/internal/lunar"

// LunarHoliday labels holidays fixed on the lunar calendar.
var LunarHoliday = ResolverFunc(func(day DayInfo) (string, error) {
	name, _ := LunarHolidayName(day.LunarMonthName, day.LunarDayName)
	return name, nil
})

// CivilHoliday labels fixed-date civil holidays, then floating weekday ones.
var CivilHoliday = ResolverFunc(func(day DayInfo) (string, error) {
	name, _ := CivilHolidayName(day.Month, day.Day, day.DateOrderKey)
	return name, nil
})

// TermOrLunarDay labels every day: its solar term if it has one, else its
// lunar day name.
var TermOrLunarDay = ResolverFunc(func(day DayInfo) (string, error) {
	if day.SolarTerm != "" {
		return day.SolarTerm, nil
	}
	return day.LunarDayName, nil
})

// WinterNine labels the first day of the second and third nine-day periods
// after the winter solstice.
var WinterNine = ResolverFunc(func(day DayInfo) (string, error) {
	term, err := day.TermOn(day.Date.SubtractDays(9))
	if err != nil {
		return "", err
	}
	if term == lunar.TermWinterSolstice {
		return LabelWinterSecondNine, nil
	}
	term, err = day.TermOn(day.Date.SubtractDays(18))
	if err != nil {
		return "", err
	}
	if term == lunar.TermWinterSolstice {
		return LabelWinterThirdNine, nil
	}
	return "", nil
})

// dogDayRules are checked in order on geng days. A rule matches when one of
// the days from date-far through date-near (both inclusive) has the term.
var dogDayRules = []struct {
	label     string
	term      string
	far, near int
}{
	{LabelDogDaysStart, lunar.TermSummerSolstice, 29, 20},
	{LabelDogDaysMid, lunar.TermSummerSolstice, 39, 30},
	{LabelDogDaysLate, lunar.TermAutumnBegins, 9, 1},
	{LabelDogDaysEnd, lunar.TermAutumnBegins, 19, 11},
}

// DogDays labels the geng days that open the phases of the dog days.
var DogDays = ResolverFunc(func(day DayInfo) (string, error) {
	if !day.IsGengDay() {
		return "", nil
	}
	for _, rule := range dogDayRules {
		found, err := scanForTerm(day, rule.far, rule.near, rule.term)
		if err != nil {
			return "", err
		}
		if found {
			return rule.label, nil
		}
	}
	return "", nil
})

func scanForTerm(day DayInfo, far, near int, want string) (bool, error) {
	for offset := far; offset >= near; offset-- {
		term, err := day.TermOn(day.Date.SubtractDays(offset))
		if err != nil {
			return false, err
		}
		if term == want {
			return true, nil
		}
	}
	return false, nil
}
