package contacts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-almanac/internal/annotate"
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/contacts"
)

func day(y int, m time.Month, d int) annotate.DayInfo {
	return annotate.DayInfo{Date: civil.New(y, m, d), Month: int(m), Day: d}
}

func TestResolver_Resolve(t *testing.T) {
	r := contacts.NewResolver([]contacts.Birthday{
		{Name: "张三", Month: time.May, Day: 20, Year: 1990},
		{Name: "李四", Month: time.May, Day: 20},
		{Name: "Leap", Month: time.February, Day: 29},
	})
	assert.Equal(t, 2, r.Len())

	tests := []struct {
		name string
		day  annotate.DayInfo
		want string
	}{
		{"First contact wins", day(2023, time.May, 20), "张三生日"},
		{"Year does not matter", day(1970, time.May, 20), "张三生日"},
		{"No birthday", day(2023, time.May, 21), ""},
		{"Leap year keeps Feb 29", day(2024, time.February, 29), "Leap生日"},
		{"Leap year Feb 28 is empty", day(2024, time.February, 28), ""},
		{"Common year moves to Feb 28", day(2023, time.February, 28), "Leap生日"},
		{"Common year Mar 1 is empty", day(2023, time.March, 1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_Feb28OwnerBeatsLeapling(t *testing.T) {
	r := contacts.NewResolver([]contacts.Birthday{
		{Name: "Leap", Month: time.February, Day: 29},
		{Name: "Own", Month: time.February, Day: 28},
	})
	got, err := r.Resolve(day(2023, time.February, 28))
	require.NoError(t, err)
	assert.Equal(t, "Own生日", got)
}

func TestResolver_InChain(t *testing.T) {
	chain, err := annotate.ChainFromNames([]string{"birthday", "civil-holiday"}, map[string]annotate.Resolver{
		"birthday": contacts.NewResolver([]contacts.Birthday{{Name: "Tom", Month: time.October, Day: 1}}),
	})
	require.NoError(t, err)

	got, err := chain.Resolve(day(2023, time.October, 1))
	require.NoError(t, err)
	assert.Equal(t, "Tom生日", got, "birthday placed first shadows 国庆节")
}

func TestBirthday_Label(t *testing.T) {
	assert.Equal(t, "王五生日", contacts.Birthday{Name: "王五"}.Label())
	assert.Equal(t, "ABCDEFGH生日", contacts.Birthday{Name: "ABCDEFGHIJK"}.Label())
}

func TestBirthday_ObservedOn(t *testing.T) {
	b := contacts.Birthday{Month: time.February, Day: 29}
	assert.Equal(t, civil.New(2023, time.February, 28), b.ObservedOn(2023))
	assert.Equal(t, civil.New(2024, time.February, 29), b.ObservedOn(2024))

	c := contacts.Birthday{Month: time.December, Day: 31}
	assert.Equal(t, civil.New(2023, time.December, 31), c.ObservedOn(2023))
}
