package grid

import (
	"log/slog"

	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
)

// Transition tells how the Gate answered an update.
type Transition int

const (
	// Rebuilt means the grid was built from scratch.
	Rebuilt Transition = iota + 1
	// HighlightOnly means only IsHighlighted was recomputed on the existing cells.
	HighlightOnly
)

func (t Transition) String() string {
	switch t {
	case Rebuilt:
		return "rebuilt"
	case HighlightOnly:
		return "highlight_only"
	default:
		return "none"
	}
}

// MonthChangeFunc is notified with the new reference date when the displayed
// month changes.
type MonthChangeFunc func(ref civil.Date)

type gateState struct {
	ref       civil.Date
	weekStart int
}

// Gate owns the displayed grid and rebuilds it only when the month or the
// week start changes. It is not safe for concurrent use.
type Gate struct {
	builder       *Builder
	onMonthChange MonthChangeFunc
	grid          Grid
	last          *gateState // nil until the first successful rebuild
}

// NewGate validates opts. onMonthChange may be nil.
func NewGate(opts Options, onMonthChange MonthChangeFunc) (*Gate, error) {
	b, err := NewBuilder(opts)
	if err != nil {
		return nil, err
	}
	return &Gate{builder: b, onMonthChange: onMonthChange}, nil
}

// Update moves the gate to (ref, weekStart).
//
// Same month and week start: only the highlight moves. Otherwise the grid is
// rebuilt, and if the month differs from the previous one the month-change
// callback runs. The first update always rebuilds without notifying.
// On error the previous grid and state are kept.
func (g *Gate) Update(ref civil.Date, weekStart int) (Grid, Transition, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompGate,
		config.LogKeyDate, ref.Format(),
		config.LogKeyWeekStart, weekStart,
	)

	if g.last != nil && g.last.weekStart == weekStart && g.last.ref.SameMonth(ref) {
		log.Debug(config.MsgGateHighlight)
		g.grid.Reference = ref
		if g.builder.opts.HighlightToday {
			g.grid.Highlight(ref)
		}
		g.last.ref = ref
		return g.grid.Clone(), HighlightOnly, nil
	}

	b := g.builder
	if weekStart != b.opts.WeekStart {
		opts := b.Options()
		opts.WeekStart = weekStart
		nb, err := NewBuilder(opts)
		if err != nil {
			return Grid{}, 0, err
		}
		b = nb
	}

	log.Debug(config.MsgGateRebuild)
	grid, err := b.Build(ref)
	if err != nil {
		return Grid{}, 0, err
	}

	monthChanged := g.last != nil && !g.last.ref.SameMonth(ref)
	g.builder = b
	g.grid = grid
	g.last = &gateState{ref: ref, weekStart: weekStart}

	if monthChanged {
		log.Info(config.MsgMonthChanged)
		if g.onMonthChange != nil {
			g.onMonthChange(ref)
		}
	}
	return g.grid.Clone(), Rebuilt, nil
}

// Select moves the reference date to a cell picked by the renderer, keeping
// the current week start.
func (g *Gate) Select(c Cell) (Grid, Transition, error) {
	return g.Update(c.Date, g.WeekStart())
}

// Grid returns a copy of the displayed grid.
func (g *Gate) Grid() Grid {
	return g.grid.Clone()
}

// WeekStart returns the week start of the displayed grid.
func (g *Gate) WeekStart() int {
	if g.last != nil {
		return g.last.weekStart
	}
	return g.builder.opts.WeekStart
}

// Titles returns the header row of the displayed grid.
func (g *Gate) Titles() []string {
	return g.builder.Titles()
}
