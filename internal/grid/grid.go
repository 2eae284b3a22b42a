// Package grid lays out the days of a month as rows of seven cells and
// decides when that layout has to be rebuilt.
package grid

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/tartampluch/go-almanac/internal/annotate"
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/tartampluch/go-almanac/internal/lunar"
)

// Cell is one day of the grid.
type Cell struct {
	ID             string // YYYY-MM-DD
	Value          string // day of month
	IsCurrentMonth bool
	IsWeekend      bool
	Annotation     string
	IsHighlighted  bool
	Date           civil.Date
}

// Grid is the ordered cell sequence of one month, a multiple of seven long.
type Grid struct {
	Reference civil.Date
	WeekStart int
	Titles    []string // rotated so Titles[0] heads the first column
	Cells     []Cell
}

// Rows splits the cells into weeks.
func (g Grid) Rows() [][]Cell {
	return slices.Collect(slices.Chunk(g.Cells, config.DaysPerWeek))
}

// CurrentMonth returns the cells of the reference month.
func (g Grid) CurrentMonth() []Cell {
	var out []Cell
	for _, c := range g.Cells {
		if c.IsCurrentMonth {
			out = append(out, c)
		}
	}
	return out
}

// Highlight marks the cell of ref and clears every other one.
func (g *Grid) Highlight(ref civil.Date) {
	id := ref.Format()
	for i := range g.Cells {
		g.Cells[i].IsHighlighted = g.Cells[i].ID == id
	}
}

// Clone returns a grid that shares no cells with g.
func (g Grid) Clone() Grid {
	g.Titles = slices.Clone(g.Titles)
	g.Cells = slices.Clone(g.Cells)
	return g
}

// Options configure a Builder.
type Options struct {
	WeekStart      int  // ISO weekday of the first column, 1..7
	FillLeading    bool // add a whole row of the previous month when the 1st sits in the first column
	FillTrailing   bool // add a whole row of the next month when the last day sits in the last column
	HighlightToday bool
	Titles         []string // Monday first; defaults to config.CanonicalWeekdayTitles
	Chain          annotate.Chain
	Lunar          lunar.Converter // defaults to lunar.Calendar
}

// DefaultOptions mirror the configuration defaults.
func DefaultOptions() Options {
	return Options{
		WeekStart:      config.DefaultWeekStart,
		FillLeading:    config.DefaultFillLeading,
		FillTrailing:   config.DefaultFillTrailing,
		HighlightToday: config.DefaultHighlightToday,
		Chain:          annotate.DefaultChain(),
	}
}

// Builder computes grids. It is immutable once constructed.
type Builder struct {
	opts    Options
	ordered []string
}

// NewBuilder validates opts. Every configuration error is reported here,
// before any grid is built.
func NewBuilder(opts Options) (*Builder, error) {
	if opts.WeekStart < 1 || opts.WeekStart > config.DaysPerWeek {
		return nil, config.Invalid("week_start", opts.WeekStart, config.ErrWeekStartRange)
	}
	if opts.Titles == nil {
		opts.Titles = config.CanonicalWeekdayTitles[:]
	}
	if err := validateTitles(opts.Titles); err != nil {
		return nil, err
	}
	if err := opts.Chain.Validate(); err != nil {
		return nil, err
	}
	if opts.Lunar == nil {
		opts.Lunar = lunar.Calendar{}
	}
	opts.Titles = slices.Clone(opts.Titles)
	opts.Chain = slices.Clone(opts.Chain)
	return &Builder{
		opts:    opts,
		ordered: RotateTitles(opts.Titles, opts.WeekStart),
	}, nil
}

// Options returns the validated options.
func (b *Builder) Options() Options {
	o := b.opts
	o.Titles = slices.Clone(o.Titles)
	o.Chain = slices.Clone(o.Chain)
	return o
}

// Titles returns the header row.
func (b *Builder) Titles() []string {
	return slices.Clone(b.ordered)
}

// LeadingCount is the number of previous-month cells before the 1st of ref's month.
func (b *Builder) LeadingCount(ref civil.Date) (int, error) {
	col, ok := column(b.opts.Titles, b.ordered, ref.StartOfMonth().Weekday())
	if !ok {
		return 0, errors.New(config.ErrColumnNotFound)
	}
	return fillCount(col, b.opts.FillLeading), nil
}

// TrailingCount is the number of next-month cells after the last day of ref's month.
func (b *Builder) TrailingCount(ref civil.Date) (int, error) {
	col, ok := column(b.opts.Titles, b.ordered, ref.EndOfMonth().Weekday())
	if !ok {
		return 0, errors.New(config.ErrColumnNotFound)
	}
	return fillCount(config.DaysPerWeek-1-col, b.opts.FillTrailing), nil
}

// fillCount turns a zero gap into a whole row when filling is enabled.
func fillCount(gap int, fillRow bool) int {
	if gap > 0 {
		return gap
	}
	if fillRow {
		return config.DaysPerWeek
	}
	return 0
}

// Build returns the grid of ref's month. Lunar conversion errors abort the
// build and no partial grid is returned. A *lunar.OutOfRangeError comes back
// as is; other failures are wrapped with config.ErrBuildGrid.
func (b *Builder) Build(ref civil.Date) (Grid, error) {
	leading, err := b.LeadingCount(ref)
	if err != nil {
		return Grid{}, buildError(err)
	}
	trailing, err := b.TrailingCount(ref)
	if err != nil {
		return Grid{}, buildError(err)
	}

	start, end := ref.StartOfMonth(), ref.EndOfMonth()
	cells := make([]Cell, 0, leading+ref.DaysInMonth()+trailing)
	add := func(d civil.Date, current bool) error {
		c, err := b.cell(d, current)
		if err != nil {
			return buildError(err)
		}
		cells = append(cells, c)
		return nil
	}

	for d := start.SubtractDays(leading); d.Before(start); d = d.AddDays(1) {
		if err := add(d, false); err != nil {
			return Grid{}, err
		}
	}
	for d := start; !end.Before(d); d = d.AddDays(1) {
		if err := add(d, true); err != nil {
			return Grid{}, err
		}
	}
	for i := 1; i <= trailing; i++ {
		if err := add(end.AddDays(i), false); err != nil {
			return Grid{}, err
		}
	}

	g := Grid{
		Reference: ref,
		WeekStart: b.opts.WeekStart,
		Titles:    b.Titles(),
		Cells:     cells,
	}
	if b.opts.HighlightToday {
		g.Highlight(ref)
	}

	slog.Debug(config.MsgGridBuilt,
		config.LogKeyComponent, config.CompGrid,
		config.LogKeyMonth, ref.Format()[:7],
		config.LogKeyWeekStart, b.opts.WeekStart,
		config.LogKeyLeading, leading,
		config.LogKeyTrailing, trailing,
		config.LogKeyCells, len(cells))
	return g, nil
}

func (b *Builder) cell(d civil.Date, current bool) (Cell, error) {
	c := Cell{
		ID:             d.Format(),
		Value:          strconv.Itoa(d.Day()),
		IsCurrentMonth: current,
		IsWeekend:      d.IsWeekend(),
		Date:           d,
	}
	if len(b.opts.Chain) == 0 {
		return c, nil
	}
	day, err := annotate.Describe(b.opts.Lunar, d)
	if err != nil {
		return Cell{}, err
	}
	if c.Annotation, err = b.opts.Chain.Resolve(day); err != nil {
		return Cell{}, err
	}
	return c, nil
}

// buildError leaves range errors untouched so callers can report the exact
// date that fell off the lunar table.
func buildError(err error) error {
	if errors.Is(err, lunar.ErrOutOfRange) {
		return err
	}
	return fmt.Errorf("%s: %w", config.ErrBuildGrid, err)
}
