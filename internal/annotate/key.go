package annotate

import "strconv"

// DateOrderKey returns "{month}.{weekOfMonth}.{isoWeekday}", the key of
// floating holidays such as "second Sunday of May" ("5.2.7").
// Days 7, 14, 21 and 28 close their week: day 14 is in week 2, day 15 in week 3.
func DateOrderKey(month, day, isoWeekday int) string {
	week := day/7 + 1
	if day%7 == 0 {
		week = day / 7
	}
	return strconv.Itoa(month) + "." + strconv.Itoa(week) + "." + strconv.Itoa(isoWeekday)
}

func monthDayKey(month, day int) string {
	return strconv.Itoa(month) + "." + strconv.Itoa(day)
}

func lunarKey(monthName, dayName string) string {
	return monthName + "." + dayName
}
