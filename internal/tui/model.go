// Package tui implements the interactive week calendar. The model follows
// the Elm architecture: all state lives here, repository calls run as
// commands, and pointer gestures are resolved by the interaction
// controller before they touch storage.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcanete/agendum/internal/config"
	"github.com/jcanete/agendum/internal/interaction"
	"github.com/jcanete/agendum/internal/layout"
	"github.com/jcanete/agendum/internal/schedule"
	"github.com/jcanete/agendum/internal/timegrid"
	"github.com/jcanete/agendum/internal/tui/commands"
	"github.com/jcanete/agendum/internal/tui/theme"
)

const (
	numDays    = 7
	headerRows = 2 // title line + day header line
	footerRows = 2 // status line + help line
)

// Model is the top-level bubbletea model for the calendar.
type Model struct {
	repo   schedule.Repository
	cfg    *config.Config
	styles Styles
	grid   timegrid.Grid
	ctrl   *interaction.Controller
	now    func() time.Time
	debug  *DebugLogger

	weekStart time.Time
	appts     []*schedule.Appointment
	byID      map[string]*schedule.Appointment
	columns   [numDays][]layout.ColumnAssignment

	selectedID string
	width      int
	height     int
	status     string
	err        error
	loading    bool
	spin       spinner.Model
}

// NewModel builds the calendar model. A nil debug logger disables
// event tracing.
func NewModel(repo schedule.Repository, cfg *config.Config, th *theme.Theme, debug *DebugLogger) Model {
	now := time.Now

	// One terminal row per grid step; the gutter fits "09:00 ".
	grid := timegrid.NewGrid(float64(60/cfg.Business.StepMinutes), cfg.Business.StepMinutes, 6)

	weekStart := schedule.StartOfWeek(now())
	ctrl := interaction.NewController(interaction.Config{
		Grid:        grid,
		FirstDate:   weekStart,
		NumDays:     numDays,
		Now:         now,
		MinDuration: cfg.Business.MinMinutes,
		// A single cell of wobble should still read as a click.
		DragThreshold: 0.5,
	})

	spin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent))),
	)

	return Model{
		repo:      repo,
		cfg:       cfg,
		styles:    NewStyles(th),
		grid:      grid,
		ctrl:      ctrl,
		now:       now,
		debug:     debug,
		weekStart: weekStart,
		byID:      map[string]*schedule.Appointment{},
		loading:   true,
		spin:      spin,
	}
}

// Init loads the current week.
func (m Model) Init() tea.Cmd {
	return tea.Batch(commands.LoadWeek(m.repo, m.weekStart), m.spin.Tick)
}

func (m *Model) openMinutes() int  { return m.cfg.OpenMinutes() }
func (m *Model) closeMinutes() int { return m.cfg.CloseMinutes() }

// gridRows is the number of visible time rows.
func (m *Model) gridRows() int {
	return (m.closeMinutes() - m.openMinutes()) / m.grid.StepMinutes
}

// setWeek repositions the view and rebuilds the interaction controller,
// whose day indexes are relative to the first visible date.
func (m *Model) setWeek(weekStart time.Time) {
	m.weekStart = weekStart
	m.selectedID = ""
	m.ctrl = interaction.NewController(interaction.Config{
		Grid:          m.grid,
		FirstDate:     weekStart,
		NumDays:       numDays,
		Now:           m.now,
		MinDuration:   m.cfg.Business.MinMinutes,
		DragThreshold: 0.5,
	})
}

// rebuildLayout recomputes the per-day column assignments from the
// loaded appointments. Cancelled and past appointments keep their grid
// space; the renderer distinguishes them by style.
func (m *Model) rebuildLayout() {
	m.byID = make(map[string]*schedule.Appointment, len(m.appts))
	for _, a := range m.appts {
		m.byID[a.ID] = a
	}

	buckets := schedule.BucketByDay(m.appts, m.weekStart, numDays)
	for day := range m.columns {
		m.columns[day] = nil
		var items []layout.Interval
		for _, a := range buckets[day].Appointments {
			items = append(items, layout.Interval{
				ID:           a.ID,
				StartMinutes: a.StartMinutes(),
				EndMinutes:   a.EndMinutes(),
			})
		}
		assigned, err := layout.Assign(items)
		if err != nil {
			m.err = err
			continue
		}
		m.columns[day] = assigned
	}
}

// appointmentAt finds the appointment block covering a grid position.
// The x coordinate disambiguates side-by-side columns within a day.
func (m *Model) appointmentAt(day, minutes int, xInCell, cellWidth int) (*layout.ColumnAssignment, *schedule.Appointment) {
	if day < 0 || day >= numDays || cellWidth <= 0 {
		return nil, nil
	}
	for i := range m.columns[day] {
		ca := &m.columns[day][i]
		if minutes < ca.StartMinutes || minutes >= ca.EndMinutes {
			continue
		}
		laneWidth := cellWidth / ca.TotalColumns
		if laneWidth < 1 {
			laneWidth = 1
		}
		lane := xInCell / laneWidth
		if lane >= ca.TotalColumns {
			lane = ca.TotalColumns - 1
		}
		if lane != ca.ColumnIndex {
			continue
		}
		return ca, m.byID[ca.ID]
	}
	return nil, nil
}

// dayDate resolves a visible day index to its date.
func (m *Model) dayDate(day int) time.Time {
	return m.weekStart.AddDate(0, 0, day)
}
