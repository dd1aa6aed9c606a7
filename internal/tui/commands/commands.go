// Package commands holds the tea.Cmd constructors and messages used by
// the calendar model. Every repository call happens here, off the
// update loop.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcanete/agendum/internal/interaction"
	"github.com/jcanete/agendum/internal/schedule"
)

// WeekLoadedMsg carries a freshly loaded week of appointments.
type WeekLoadedMsg struct {
	WeekStart    time.Time
	Appointments []*schedule.Appointment
}

// RequestAppliedMsg reports a committed gesture.
type RequestAppliedMsg struct {
	Description string
}

// StatusMsg is a transient one-line notice for the status bar.
type StatusMsg struct {
	Text string
}

// ClearStatusMsg wipes the status bar.
type ClearStatusMsg struct{}

// ErrMsg carries an error into the update loop.
type ErrMsg struct {
	Err error
}

func (e ErrMsg) Error() string { return e.Err.Error() }

// LoadWeek fetches the seven days starting at weekStart.
func LoadWeek(repo schedule.Repository, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		appts, err := repo.ListByDateRange(ctx, weekStart, weekStart.AddDate(0, 0, 6))
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading week: %w", err)}
		}
		return WeekLoadedMsg{WeekStart: weekStart, Appointments: appts}
	}
}

// Apply commits a completed gesture against the repository. Day indexes
// in the request are resolved relative to weekStart. The service name
// for quick-created appointments is configurable per business.
func Apply(repo schedule.Repository, weekStart time.Time, req interaction.Request, defaultService string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		switch r := req.(type) {
		case interaction.CreateAppointment:
			day := weekStart.AddDate(0, 0, r.Day)
			start := schedule.MinutesToTime(r.StartMinutes)
			end := schedule.MinutesToTime(r.StartMinutes + r.DurationMinutes)
			appt, err := schedule.New(defaultService, "", day.Format("2006-01-02"), start, end, nil)
			if err != nil {
				return ErrMsg{Err: err}
			}
			if err := repo.CreateAppointment(ctx, appt); err != nil {
				return ErrMsg{Err: err}
			}
			return RequestAppliedMsg{Description: fmt.Sprintf("booked %s %s", day.Format("Mon 02"), start)}

		case interaction.MoveAppointment:
			appt, err := repo.GetAppointment(ctx, r.ID)
			if err != nil {
				return ErrMsg{Err: err}
			}
			day := weekStart.AddDate(0, 0, r.NewDay)
			start := schedule.MinutesToTime(r.NewStartMinutes)
			end := schedule.MinutesToTime(r.NewStartMinutes + appt.Duration())
			if err := repo.MoveAppointment(ctx, r.ID, day, start, end); err != nil {
				return ErrMsg{Err: err}
			}
			return RequestAppliedMsg{Description: fmt.Sprintf("moved to %s %s", day.Format("Mon 02"), start)}

		case interaction.ResizeAppointment:
			appt, err := repo.GetAppointment(ctx, r.ID)
			if err != nil {
				return ErrMsg{Err: err}
			}
			end := schedule.MinutesToTime(appt.StartMinutes() + r.NewDurationMinutes)
			if err := repo.UpdateTimes(ctx, r.ID, appt.Start, end); err != nil {
				return ErrMsg{Err: err}
			}
			return RequestAppliedMsg{Description: fmt.Sprintf("resized to %d min", r.NewDurationMinutes)}
		}

		return ErrMsg{Err: fmt.Errorf("unsupported request %T", req)}
	}
}

// SetStatus transitions an appointment status.
func SetStatus(repo schedule.Repository, id string, status schedule.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := repo.SetStatus(ctx, id, status); err != nil {
			return ErrMsg{Err: err}
		}
		return RequestAppliedMsg{Description: fmt.Sprintf("marked %s", status)}
	}
}

// ClearStatusAfter expires the status bar after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
