package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcanete/agendum/internal/interaction"
	"github.com/jcanete/agendum/internal/schedule"
	"github.com/jcanete/agendum/internal/tui/commands"
)

const statusLifetime = 4 * time.Second

// Update routes messages to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.BlurMsg:
		// Losing terminal focus is a pointer-capture loss: abandon any
		// in-flight gesture without committing it.
		m.ctrl.Handle(interaction.Cancel{})
		return m, nil

	case commands.WeekLoadedMsg:
		m.loading = false
		m.appts = msg.Appointments
		m.rebuildLayout()
		return m, nil

	case commands.RequestAppliedMsg:
		m.status = msg.Description
		m.err = nil
		return m, tea.Batch(
			commands.LoadWeek(m.repo, m.weekStart),
			commands.ClearStatusAfter(statusLifetime),
		)

	case commands.StatusMsg:
		m.status = msg.Text
		return m, commands.ClearStatusAfter(statusLifetime)

	case commands.ClearStatusMsg:
		m.status = ""
		return m, nil

	case commands.ErrMsg:
		m.loading = false
		m.err = msg.Err
		m.debug.Log("error", map[string]any{"err": msg.Err.Error()})
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		// Abandons the active gesture; with no gesture, clears selection.
		if m.ctrl.State() != interaction.StateIdle {
			m.ctrl.Handle(interaction.Cancel{})
		} else {
			m.selectedID = ""
		}
		m.err = nil
		return m, nil

	case "left", "h":
		m.setWeek(m.weekStart.AddDate(0, 0, -numDays))
		return m, m.reload()

	case "right", "l":
		m.setWeek(m.weekStart.AddDate(0, 0, numDays))
		return m, m.reload()

	case "t":
		m.setWeek(schedule.StartOfWeek(m.now()))
		return m, m.reload()

	case "r":
		return m, m.reload()

	case "c":
		if a, ok := m.byID[m.selectedID]; ok && a.Status.Blocks() {
			return m, commands.SetStatus(m.repo, a.ID, schedule.StatusConfirmed)
		}
		return m, nil

	case "d":
		if a, ok := m.byID[m.selectedID]; ok && a.Status == schedule.StatusConfirmed {
			return m, commands.SetStatus(m.repo, a.ID, schedule.StatusCompleted)
		}
		return m, nil

	case "x":
		if a, ok := m.byID[m.selectedID]; ok && !a.IsCancelled() {
			m.selectedID = ""
			return m, commands.SetStatus(m.repo, a.ID, schedule.StatusCancelled)
		}
		return m, nil

	case "y":
		return m, m.copyAgenda()
	}

	return m, nil
}

// reload fetches the visible week again and restarts the spinner.
func (m *Model) reload() tea.Cmd {
	m.loading = true
	return tea.Batch(commands.LoadWeek(m.repo, m.weekStart), m.spin.Tick)
}

// copyAgenda writes the visible week's agenda to the system clipboard.
func (m Model) copyAgenda() tea.Cmd {
	text := m.agendaText()
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return commands.ErrMsg{Err: err}
		}
		return commands.StatusMsg{Text: "agenda copied to clipboard"}
	}
}

// agendaText renders the loaded week as plain text, one line per
// appointment, grouped by day.
func (m Model) agendaText() string {
	var b strings.Builder
	buckets := schedule.BucketByDay(m.appts, m.weekStart, numDays)
	for _, bucket := range buckets {
		if len(bucket.Appointments) == 0 {
			continue
		}
		b.WriteString(bucket.Date.Format("Monday, January 2") + "\n")
		for _, a := range bucket.Appointments {
			b.WriteString("  " + a.Start + "-" + a.End + "  " + a.ServiceName)
			if a.CustomerName != "" {
				b.WriteString(" (" + a.CustomerName + ")")
			}
			if a.IsCancelled() {
				b.WriteString(" [cancelled]")
			}
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		return "No appointments this week.\n"
	}
	return b.String()
}
