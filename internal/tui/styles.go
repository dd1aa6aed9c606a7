package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jcanete/agendum/internal/schedule"
	"github.com/jcanete/agendum/internal/tui/theme"
)

// Styles holds the pre-built lipgloss styles for the calendar view.
type Styles struct {
	Title     lipgloss.Style
	DayHeader lipgloss.Style
	Today     lipgloss.Style
	TimeLabel lipgloss.Style
	EmptyCell lipgloss.Style
	Pending   lipgloss.Style
	Confirmed lipgloss.Style
	Completed lipgloss.Style
	Cancelled lipgloss.Style
	Past      lipgloss.Style
	Selected  lipgloss.Style
	Preview   lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles builds the style set from a theme.
func NewStyles(t *theme.Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		DayHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Fg)).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Underline(true),
		TimeLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		EmptyCell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Bg)).
			Background(lipgloss.Color(t.Pending)),
		Confirmed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Bg)).
			Background(lipgloss.Color(t.Confirmed)),
		Completed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Fg)).
			Background(lipgloss.Color(t.Completed)),
		Cancelled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)).
			Strikethrough(true),
		Past: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)).
			Background(lipgloss.Color(t.BgHighlight)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Fg)).
			Background(lipgloss.Color(t.BgSelection)).
			Bold(true),
		Preview: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Bg)).
			Background(lipgloss.Color(t.Warning)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Confirmed)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
	}
}

// statusStyle picks the block style for an appointment status.
func (s Styles) statusStyle(st schedule.Status, past bool) lipgloss.Style {
	if st == schedule.StatusCancelled {
		return s.Cancelled
	}
	if past {
		return s.Past
	}
	switch st {
	case schedule.StatusPending:
		return s.Pending
	case schedule.StatusConfirmed:
		return s.Confirmed
	case schedule.StatusCompleted:
		return s.Completed
	}
	return s.EmptyCell
}
