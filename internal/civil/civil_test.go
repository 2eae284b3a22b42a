package civil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestParseAndFormat(t *testing.T) {
	d, err := civil.Parse("2023-05-14")
	require.NoError(t, err)
	assert.Equal(t, 2023, d.Year())
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, 14, d.Day())
	assert.Equal(t, "2023-05-14", d.Format())
	assert.Equal(t, "2023-05-14", d.String())

	_, err = civil.Parse("2023-02-30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDateParse)

	_, err = civil.Parse("14/05/2023")
	assert.Error(t, err)
}

func TestWeekday_ISO(t *testing.T) {
	tests := []struct {
		date    string
		weekday int
		weekend bool
	}{
		{"2023-05-08", 1, false}, // Monday
		{"2023-05-12", 5, false},
		{"2023-05-13", 6, true},
		{"2023-05-14", 7, true}, // Sunday maps to 7, not 0
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := civil.Parse(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.weekday, d.Weekday())
			assert.Equal(t, tt.weekend, d.IsWeekend())
		})
	}
}

func TestArithmetic(t *testing.T) {
	d := civil.New(2023, time.March, 1)

	assert.Equal(t, "2023-02-28", d.SubtractDays(1).Format())
	assert.Equal(t, "2023-03-31", d.AddDays(30).Format())
	assert.Equal(t, "2022-12-31", civil.New(2023, time.January, 1).AddDays(-1).Format())
	assert.True(t, d.SubtractDays(1).Before(d))
	assert.True(t, d.AddDays(7).SubtractDays(7).Equal(d))

	// The receiver is never mutated.
	_ = d.AddDays(10)
	assert.Equal(t, "2023-03-01", d.Format())
}

func TestMonthBoundaries(t *testing.T) {
	tests := []struct {
		date  civil.Date
		start string
		end   string
		days  int
	}{
		{civil.New(2023, time.February, 14), "2023-02-01", "2023-02-28", 28},
		{civil.New(2024, time.February, 14), "2024-02-01", "2024-02-29", 29},
		{civil.New(1900, time.February, 1), "1900-02-01", "1900-02-28", 28},
		{civil.New(2000, time.February, 1), "2000-02-01", "2000-02-29", 29},
		{civil.New(2023, time.December, 31), "2023-12-01", "2023-12-31", 31},
		{civil.New(2023, time.April, 1), "2023-04-01", "2023-04-30", 30},
	}
	for _, tt := range tests {
		t.Run(tt.date.Format(), func(t *testing.T) {
			assert.Equal(t, tt.start, tt.date.StartOfMonth().Format())
			assert.Equal(t, tt.end, tt.date.EndOfMonth().Format())
			assert.Equal(t, tt.days, tt.date.DaysInMonth())
		})
	}
}

func TestSameMonth(t *testing.T) {
	a := civil.New(2023, time.January, 5)
	assert.True(t, a.SameMonth(civil.New(2023, time.January, 31)))
	assert.False(t, a.SameMonth(civil.New(2023, time.February, 1)))
	assert.False(t, a.SameMonth(civil.New(2024, time.January, 5)), "same month number in another year")
}

func TestNew_Normalizes(t *testing.T) {
	assert.Equal(t, "2023-03-02", civil.New(2023, time.February, 30).Format())
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	clock := fixedClock{now: time.Date(2023, 6, 21, 23, 30, 0, 0, loc)}
	assert.Equal(t, "2023-06-21", civil.Today(clock).Format(), "today uses the clock's own location")
}
