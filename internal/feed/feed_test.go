package feed_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/tartampluch/go-almanac/internal/feed"
	"github.com/tartampluch/go-almanac/internal/grid"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func cell(y int, m time.Month, d int, current bool, label string) grid.Cell {
	date := civil.New(y, m, d)
	return grid.Cell{
		ID:             date.Format(),
		Date:           date,
		IsCurrentMonth: current,
		Annotation:     label,
	}
}

func sampleGrid() grid.Grid {
	return grid.Grid{
		Reference: civil.New(2023, time.May, 10),
		WeekStart: 1,
		Cells: []grid.Cell{
			cell(2023, time.April, 30, false, "廿一"),
			cell(2023, time.May, 1, true, "劳动节"),
			cell(2023, time.May, 2, true, ""),
			cell(2023, time.May, 4, true, "青年节"),
			cell(2023, time.June, 1, false, "儿童节"),
		},
	}
}

func TestGenerate_EventsForAnnotatedCurrentMonthCells(t *testing.T) {
	gen := &feed.Generator{Clock: fixedClock{time.Date(2023, 5, 10, 8, 0, 0, 0, time.UTC)}}

	data, err := gen.Generate(sampleGrid())
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2, "other-month and empty cells are not published")

	summary, err := events[0].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "劳动节", summary)

	uid, err := events[0].Props.Text(config.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "2023-05-01@go-almanac", uid)

	start := events[1].Props.Get(config.PropDTStart)
	require.NotNil(t, start)
	assert.Equal(t, "20230504", start.Value)

	stamp := events[1].Props.Get(config.PropDTStamp)
	require.NotNil(t, stamp)
	assert.Equal(t, "20230510T080000Z", stamp.Value)

	prodid, err := cal.Props.Text(config.PropProdid)
	require.NoError(t, err)
	assert.Equal(t, config.ICalProdid, prodid)
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := &feed.Generator{Clock: fixedClock{time.Date(2023, 5, 10, 8, 0, 0, 0, time.UTC)}}

	first, err := gen.Generate(sampleGrid())
	require.NoError(t, err)
	second, err := gen.Generate(sampleGrid())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerate_EmptyMonthReturnsStub(t *testing.T) {
	gr := grid.Grid{
		Reference: civil.New(2023, time.May, 10),
		Cells:     []grid.Cell{cell(2023, time.May, 2, true, "")},
	}

	data, err := (&feed.Generator{}).Generate(gr)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))

	_, err = ical.NewDecoder(bytes.NewReader(data)).Decode()
	assert.NoError(t, err, "the stub must stay a parseable calendar")
}

func TestGenerate_FromBuiltGrid(t *testing.T) {
	opts := grid.DefaultOptions()
	opts.HighlightToday = false
	b, err := grid.NewBuilder(opts)
	require.NoError(t, err)

	gr, err := b.Build(civil.New(2023, time.October, 1))
	require.NoError(t, err)

	data, err := (&feed.Generator{Clock: fixedClock{time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)}}).Generate(gr)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 31, "the default chain labels every day")
	assert.Contains(t, string(data), "SUMMARY:国庆节")
}
