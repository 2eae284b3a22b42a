// Package render draws a month grid for the terminal.
package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-almanac/internal/grid"
)

const cellWidth = 10

// Styles holds the lipgloss styles of the month view.
type Styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	Day        lipgloss.Style
	Weekend    lipgloss.Style
	OtherMonth lipgloss.Style
	Today      lipgloss.Style
	Annotation lipgloss.Style
}

// DefaultStyles marks weekends in red, dims the days of adjacent months and
// reverses the highlighted day.
func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Width(cellWidth * 7).Align(lipgloss.Center),
		Header:     cell.Bold(true).Foreground(lipgloss.Color("241")),
		Day:        cell,
		Weekend:    cell.Foreground(lipgloss.Color("9")),
		OtherMonth: cell.Faint(true),
		Today:      cell.Reverse(true),
		Annotation: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// Text renders g with the default styles.
func Text(g grid.Grid) string {
	return DefaultStyles().Render(g)
}

// Render draws the title line, the weekday header and one block per week.
func (s Styles) Render(g grid.Grid) string {
	header := make([]string, 0, len(g.Titles))
	for _, title := range g.Titles {
		header = append(header, s.Header.Render(title))
	}

	blocks := []string{
		s.Title.Render(g.Reference.Time().Format("2006年1月")),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for _, row := range g.Rows() {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, s.cell(c))
		}
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (s Styles) cell(c grid.Cell) string {
	style := s.Day
	switch {
	case c.IsHighlighted:
		style = s.Today
	case !c.IsCurrentMonth:
		style = s.OtherMonth
	case c.IsWeekend:
		style = s.Weekend
	}
	label := c.Annotation
	if label == "" {
		label = " "
	}
	return style.Render(strconv.Itoa(c.Date.Day()) + "\n" + s.Annotation.Render(label))
}
