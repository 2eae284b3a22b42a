package annotate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-almanac/internal/annotate"
	"github.com/tartampluch/go-almanac/internal/lunar"
)

func resolveWith(t *testing.T, conv lunar.Converter, r annotate.Resolver, date string) string {
	t.Helper()
	day, err := annotate.Describe(conv, mustParse(date))
	require.NoError(t, err)
	label, err := r.Resolve(day)
	require.NoError(t, err)
	return label
}

func TestTermOrLunarDay(t *testing.T) {
	stub := newStub().withTerm("2023-06-21", lunar.TermSummerSolstice)

	assert.Equal(t, "夏至", resolveWith(t, stub, annotate.TermOrLunarDay, "2023-06-21"))
	assert.Equal(t, "初三", resolveWith(t, stub, annotate.TermOrLunarDay, "2023-06-22"))

	stub.infos["2023-06-23"] = lunar.Info{StemBranchDay: "甲子"}
	assert.Empty(t, resolveWith(t, stub, annotate.TermOrLunarDay, "2023-06-23"))
}

func TestWinterNine(t *testing.T) {
	stub := newStub().withTerm("2023-12-22", lunar.TermWinterSolstice)

	tests := []struct {
		date string
		want string
	}{
		{"2023-12-22", ""},
		{"2023-12-30", ""},
		{"2023-12-31", annotate.LabelWinterSecondNine},
		{"2024-01-01", ""},
		{"2024-01-08", ""},
		{"2024-01-09", annotate.LabelWinterThirdNine},
		{"2024-01-10", ""},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveWith(t, stub, annotate.WinterNine, tt.date))
		})
	}
}

func TestDogDays_Boundaries(t *testing.T) {
	// Summer solstice S = 06-01, start of autumn L = 08-01. Every sampled day is a geng day.
	samples := []struct {
		date string
		want string
		why  string
	}{
		{"2023-06-20", "", "S+19 is too early"},
		{"2023-06-21", annotate.LabelDogDaysStart, "S+20, window end is inclusive"},
		{"2023-06-30", annotate.LabelDogDaysStart, "S+29, window start is inclusive"},
		{"2023-07-01", annotate.LabelDogDaysMid, "S+30"},
		{"2023-07-10", annotate.LabelDogDaysMid, "S+39"},
		{"2023-07-11", "", "S+40"},
		{"2023-08-01", "", "L itself is excluded"},
		{"2023-08-02", annotate.LabelDogDaysLate, "L+1"},
		{"2023-08-10", annotate.LabelDogDaysLate, "L+9"},
		{"2023-08-11", "", "L+10 is excluded from both windows"},
		{"2023-08-12", annotate.LabelDogDaysEnd, "L+11"},
		{"2023-08-20", annotate.LabelDogDaysEnd, "L+19"},
		{"2023-08-21", "", "L+20"},
	}

	stub := newStub().
		withTerm("2023-06-01", lunar.TermSummerSolstice).
		withTerm("2023-08-01", lunar.TermAutumnBegins)
	for _, p := range samples {
		stub.withGeng(p.date)
	}

	for _, p := range samples {
		t.Run(p.date, func(t *testing.T) {
			assert.Equal(t, p.want, resolveWith(t, stub, annotate.DogDays, p.date), p.why)
		})
	}
}

func TestDogDays_OnlyGengDays(t *testing.T) {
	stub := newStub().withTerm("2023-06-01", lunar.TermSummerSolstice)

	day, err := annotate.Describe(stub, mustParse("2023-06-21"))
	require.NoError(t, err)
	before := stub.calls

	label, err := annotate.DogDays.Resolve(day)
	require.NoError(t, err)
	assert.Empty(t, label)
	assert.Equal(t, before, stub.calls, "non-geng days do not scan")
}

func TestDogDays_PriorityOfPhases(t *testing.T) {
	// With both solstice windows matching, the start phase wins.
	stub := newStub().
		withTerm("2023-06-01", lunar.TermSummerSolstice).
		withTerm("2023-05-22", lunar.TermSummerSolstice).
		withGeng("2023-06-30")
	assert.Equal(t, annotate.LabelDogDaysStart, resolveWith(t, stub, annotate.DogDays, "2023-06-30"))
}

func TestCivilAndLunarResolvers(t *testing.T) {
	stub := newStub()
	stub.infos["2023-01-22"] = lunar.Info{MonthName: "正月", DayName: "初一"}

	assert.Equal(t, "春节", resolveWith(t, stub, annotate.LunarHoliday, "2023-01-22"))
	assert.Empty(t, resolveWith(t, stub, annotate.CivilHoliday, "2023-01-22"))
	assert.Equal(t, "元旦", resolveWith(t, stub, annotate.CivilHoliday, "2023-01-01"))
	assert.Equal(t, "母亲节", resolveWith(t, stub, annotate.CivilHoliday, "2023-05-14"))
	assert.Empty(t, resolveWith(t, stub, annotate.CivilHoliday, "2023-05-21"), "third Sunday of May")
	assert.Equal(t, "感恩节", resolveWith(t, stub, annotate.CivilHoliday, "2023-11-23"))
}
