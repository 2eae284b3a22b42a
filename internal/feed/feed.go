// Package feed publishes the annotations of a month grid as iCalendar.
package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/tartampluch/go-almanac/internal/grid"
)

// Generator turns grids into iCalendar documents.
type Generator struct {
	Clock civil.Clock // stamps DTSTAMP; nil means the wall clock
}

// Generate emits one all-day event per annotated cell of the reference
// month. A month without annotations yields a minimal valid calendar.
func (g *Generator) Generate(gr grid.Grid) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)

	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(g.now().UTC())

	for _, c := range gr.CurrentMonth() {
		if c.Annotation == "" {
			continue
		}
		event := newEvent(c)
		event.Props.Set(stamp)
		cal.Children = append(cal.Children, event.Component)
	}

	log := slog.With(
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyMonth, gr.Reference.Time().Format(config.DateFormatMonth),
		config.LogKeyEvents, len(cal.Children),
	)

	if len(cal.Children) == 0 {
		log.Debug(config.MsgFeedGenerated)
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	log.Debug(config.MsgFeedGenerated, config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

func (g *Generator) now() time.Time {
	if g.Clock == nil {
		return time.Now()
	}
	return g.Clock.Now()
}

func newEvent(c grid.Cell) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, c.ID, config.ICalDomain))
	event.Props.SetText(config.PropSummary, c.Annotation)
	event.Props.SetText(config.PropTransp, config.ICalTransp)

	start := ical.NewProp(config.PropDTStart)
	start.SetDate(c.Date.Time())
	event.Props.Set(start)
	return event
}
