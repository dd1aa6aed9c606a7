package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jcanete/agendum/internal/layout"
	"github.com/jcanete/agendum/internal/schedule"
)

// overlay is the live geometry of an in-progress gesture, rendered
// full-width on top of the day column it targets.
type overlay struct {
	id    string // hidden at its committed position while active
	day   int
	start int
	end   int
}

// View renders the full screen: title, day header, time grid, footer.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTitle() + "\n")
	b.WriteString(m.renderDayHeader() + "\n")

	ov := m.activeOverlay()
	step := m.grid.StepMinutes
	for row := 0; row < m.gridRows(); row++ {
		rowStart := m.openMinutes() + row*step
		label := fmt.Sprintf("%-*s", int(m.grid.LabelWidth), schedule.MinutesToTime(rowStart))
		b.WriteString(m.styles.TimeLabel.Render(label))
		for day := 0; day < numDays; day++ {
			b.WriteString(m.renderCell(day, rowStart, ov))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTitle() string {
	last := m.weekStart.AddDate(0, 0, numDays-1)
	title := fmt.Sprintf("agendum  %s - %s",
		m.weekStart.Format("Jan 2"), last.Format("Jan 2, 2006"))
	if m.loading {
		title += "  " + m.spin.View()
	}
	return m.styles.Title.Render(title)
}

func (m Model) renderDayHeader() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", int(m.grid.LabelWidth)))
	today := schedule.TruncateToDay(m.now())
	cw := m.cellWidth()
	for day := 0; day < numDays; day++ {
		date := m.dayDate(day)
		label := ansi.Truncate(date.Format("Mon 2"), cw, "")
		label = fmt.Sprintf("%-*s", cw, label)
		if date.Equal(today) {
			b.WriteString(m.styles.Today.Render(label))
		} else {
			b.WriteString(m.styles.DayHeader.Render(label))
		}
	}
	return b.String()
}

// activeOverlay returns the live gesture geometry, if a session is
// rendering one.
func (m Model) activeOverlay() *overlay {
	if p, ok := m.ctrl.CreatePreview(); ok {
		return &overlay{day: p.Day, start: p.StartMinutes, end: p.EndMinutes}
	}
	if p, ok := m.ctrl.MovePreview(); ok {
		return &overlay{id: p.ID, day: p.Day, start: p.StartMinutes, end: p.EndMinutes}
	}
	if p, ok := m.ctrl.ResizePreview(); ok {
		return &overlay{id: p.ID, day: p.Day, start: p.StartMinutes, end: p.EndMinutes}
	}
	return nil
}

// renderCell draws one day column slice for the row starting at
// rowStart. Overlapping appointments split the cell into side-by-side
// lanes matching their column assignment.
func (m Model) renderCell(day, rowStart int, ov *overlay) string {
	cw := m.cellWidth()
	step := m.grid.StepMinutes

	if ov != nil && ov.day == day && ov.start < rowStart+step && ov.end > rowStart {
		return m.renderBlockRow(m.styles.Preview, cw, rowStart, ov.start, previewLabel(ov))
	}

	type lane struct {
		x, w int
		text string
	}
	var lanes []lane

	var out strings.Builder
	cursor := 0
	for i := range m.columns[day] {
		ca := &m.columns[day][i]
		if ov != nil && ca.ID == ov.id {
			continue
		}
		if ca.StartMinutes >= rowStart+step || ca.EndMinutes <= rowStart {
			continue
		}
		x := ca.ColumnIndex * cw / ca.TotalColumns
		w := cw/ca.TotalColumns - 1 // one cell of breathing room between lanes
		if w < 1 {
			w = 1
		}
		lanes = append(lanes, lane{x: x, w: w, text: m.renderBlock(ca, w, rowStart)})
	}

	for _, l := range lanes {
		if l.x < cursor {
			continue
		}
		out.WriteString(strings.Repeat(" ", l.x-cursor))
		out.WriteString(l.text)
		cursor = l.x + l.w
	}
	if cursor < cw {
		out.WriteString(strings.Repeat(" ", cw-cursor))
	}
	return out.String()
}

// renderBlock draws one row of an appointment block at the given width.
func (m Model) renderBlock(ca *layout.ColumnAssignment, w, rowStart int) string {
	appt := m.byID[ca.ID]
	style := m.styles.EmptyCell
	label := ""

	if appt != nil {
		style = m.styles.statusStyle(appt.Status, appt.IsPast(m.now()))
		if appt.ID == m.selectedID {
			style = m.styles.Selected
		}
		label = appt.ServiceName
		if appt.CustomerName != "" {
			label += " " + appt.CustomerName
		}
	}
	return m.renderBlockRow(style, w, rowStart, ca.StartMinutes, label)
}

// renderBlockRow renders one grid row of a block: the label on its
// first row, fill below.
func (m Model) renderBlockRow(style lipgloss.Style, w, rowStart, blockStart int, label string) string {
	text := ""
	if blockStart >= rowStart && blockStart < rowStart+m.grid.StepMinutes {
		text = ansi.Truncate(label, w, "…")
	}
	pad := w - ansi.StringWidth(text)
	if pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return style.Render(text)
}

func previewLabel(ov *overlay) string {
	return schedule.MinutesToTime(ov.start) + "-" + schedule.MinutesToTime(ov.end)
}

func (m Model) renderFooter() string {
	line := ""
	switch {
	case m.err != nil:
		line = m.styles.Error.Render("error: " + m.err.Error())
	case m.status != "":
		line = m.styles.Status.Render(m.status)
	}
	help := m.styles.Help.Render(
		"←/→ week · t today · drag empty cell to book · drag block to move · drag bottom edge to resize · c confirm · d done · x cancel · y copy · q quit")
	return line + "\n" + help
}
