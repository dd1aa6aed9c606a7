package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcanete/agendum/internal/interaction"
	"github.com/jcanete/agendum/internal/timegrid"
	"github.com/jcanete/agendum/internal/tui/commands"
)

// cellWidth is the width of one day column, excluding the gutter.
func (m *Model) cellWidth() int {
	w := (m.width - int(m.grid.LabelWidth)) / numDays
	if w < 1 {
		w = 1
	}
	return w
}

// gridRect is the pixel-space bounding box fed to the grid mapper. Its
// width covers exactly the rendered columns so integer cell math and
// the mapper's division agree.
func (m *Model) gridRect() timegrid.Rect {
	return timegrid.Rect{
		X:      0,
		Y:      headerRows,
		Width:  m.grid.LabelWidth + float64(m.cellWidth()*numDays),
		Height: float64(m.gridRows()),
	}
}

// locate maps terminal coordinates to a day index and minutes since
// midnight within the business window.
func (m *Model) locate(x, y int) (day, minutes int) {
	day, raw := m.grid.OffsetToMinutes(float64(x), float64(y), m.gridRect(), numDays)
	minutes = timegrid.Clamp(m.openMinutes()+raw, m.openMinutes(), m.closeMinutes()-1)
	return day, minutes
}

// inGrid reports whether a terminal cell falls inside the time grid.
func (m *Model) inGrid(x, y int) bool {
	if y < headerRows || y >= headerRows+m.gridRows() {
		return false
	}
	left := int(m.grid.LabelWidth)
	return x >= left && x < left+m.cellWidth()*numDays
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
		return m, nil
	}

	day, minutes := m.locate(msg.X, msg.Y)

	var ev interaction.Event
	switch msg.Action {
	case tea.MouseActionPress:
		if !m.inGrid(msg.X, msg.Y) {
			return m, nil
		}
		ev = m.pointerDown(day, minutes, msg.X, msg.Y)

	case tea.MouseActionMotion:
		if m.ctrl.State() == interaction.StateIdle {
			return m, nil
		}
		ev = interaction.PointerMove{Day: day, Minutes: minutes, X: float64(msg.X), Y: float64(msg.Y)}

	case tea.MouseActionRelease:
		ev = interaction.PointerUp{}

	default:
		return m, nil
	}

	req, ok := m.ctrl.Handle(ev)
	if !ok {
		return m, nil
	}

	m.debug.Log("request", map[string]any{"req": req})

	if sel, isSelect := req.(interaction.SelectAppointment); isSelect {
		m.selectedID = sel.ID
		return m, nil
	}
	return m, commands.Apply(m.repo, m.weekStart, req, "Walk-in")
}

// pointerDown classifies what the press landed on and builds the event.
func (m *Model) pointerDown(day, minutes, x, y int) interaction.Event {
	xInCell := x - int(m.grid.LabelWidth) - day*m.cellWidth()

	down := interaction.PointerDown{
		Target:  interaction.TargetEmptyCell,
		Day:     day,
		Minutes: minutes,
		X:       float64(x),
		Y:       float64(y),
	}

	ca, appt := m.appointmentAt(day, minutes, xInCell, m.cellWidth())
	if ca == nil || appt == nil {
		return down
	}

	down.Appointment = &interaction.AppointmentRef{
		ID:           ca.ID,
		Day:          day,
		StartMinutes: ca.StartMinutes,
		EndMinutes:   ca.EndMinutes,
		Past:         appt.IsPast(m.now()),
	}
	if minutes >= ca.EndMinutes-m.grid.StepMinutes {
		down.Target = interaction.TargetResizeHandle
	} else {
		down.Target = interaction.TargetAppointmentBody
	}
	return down
}
