package annotate

// Label tables. They are read-only after package initialization; use the
// lookup functions rather than the maps.

// lunarHolidays is keyed by "{lunar month name}.{lunar day name}".
var lunarHolidays = map[string]string{
	"正月.初一": "春节",
	"正月.十五": "元宵节",
	"五月.初五": "端午节",
	"七月.初七": "七夕节",
	"八月.十五": "中秋节",
	"九月.初九": "重阳节",
	"腊月.廿三": "北小年",
	"腊月.廿四": "南小年",
	"腊月.三十": "除夕",
}

// civilHolidays is keyed by "{month}.{day}" for fixed dates.
var civilHolidays = map[string]string{
	"1.1":   "元旦",
	"2.14":  "情人节",
	"3.8":   "妇女节",
	"4.1":   "愚人节",
	"5.1":   "劳动节",
	"5.4":   "青年节",
	"6.1":   "儿童节",
	"7.1":   "建党节",
	"8.1":   "建军节",
	"9.10":  "教师节",
	"10.1":  "国庆节",
	"10.31": "万圣夜",
	"11.1":  "万圣节",
	"12.24": "平安夜",
	"12.25": "圣诞节",
}

// floatingHolidays is keyed by DateOrderKey.
var floatingHolidays = map[string]string{
	"5.2.7":  "母亲节",
	"6.3.7":  "父亲节",
	"11.4.4": "感恩节",
}

// Countdown labels.
const (
	LabelWinterSecondNine = "冬二九"
	LabelWinterThirdNine  = "冬三九"
	LabelDogDaysStart     = "初伏"
	LabelDogDaysMid       = "中伏"
	LabelDogDaysLate      = "末伏"
	LabelDogDaysEnd       = "出伏"
)

// LunarHolidayName returns the holiday fixed on the given lunar month and day.
func LunarHolidayName(monthName, dayName string) (string, bool) {
	name, ok := lunarHolidays[lunarKey(monthName, dayName)]
	return name, ok
}

// CivilHolidayName returns the holiday of a civil date. Fixed dates take
// priority over floating weekday rules.
func CivilHolidayName(month, day int, dateOrderKey string) (string, bool) {
	if name, ok := civilHolidays[monthDayKey(month, day)]; ok {
		return name, true
	}
	name, ok := floatingHolidays[dateOrderKey]
	return name, ok
}
