package ui

import (
	"fmt"
	"strings"

	"github.com/jcanete/agendum/internal/availability"
	"github.com/jcanete/agendum/internal/schedule"
	"github.com/jcanete/agendum/internal/summary"
)

// formatAppointment renders one agenda line:
//
//	a1b2c3d4  09:00-10:00  Haircut (Ana) [confirmed]
func formatAppointment(a *schedule.Appointment) string {
	line := fmt.Sprintf("%s  %s-%s  %s", shortID(a.ID), a.Start, a.End, a.ServiceName)
	if a.CustomerName != "" {
		line += fmt.Sprintf(" (%s)", a.CustomerName)
	}
	if a.StaffID != nil {
		line += fmt.Sprintf(" @%s", *a.StaffID)
	}
	line += fmt.Sprintf(" [%s]", a.Status)

	switch a.Status {
	case schedule.StatusPending:
		return colorPending.Sprint(line)
	case schedule.StatusConfirmed:
		return colorConfirmed.Sprint(line)
	default:
		return colorDone.Sprint(line)
	}
}

// shortID truncates a UUID for display. Lookups accept the prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatSlots lays out the day's slots in columns that fit the terminal.
func formatSlots(slots []availability.Slot) string {
	const cell = 8 // "09:00  " plus a marker
	perRow := termWidth() / cell
	if perRow < 1 {
		perRow = 1
	}

	var b strings.Builder
	for i, s := range slots {
		label := fmt.Sprintf("%-*s", cell, s.Label)
		if s.Available {
			b.WriteString(colorFree.Sprint(label))
		} else {
			b.WriteString(colorBusy.Sprint(label))
		}
		if (i+1)%perRow == 0 {
			b.WriteString("\n")
		}
	}
	if len(slots)%perRow != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// formatWeekStats renders one summary line:
//
//	12 bookings (8 confirmed, 3 pending, 1 cancelled) · 9h30m booked · 23% of business hours
func formatWeekStats(stats summary.WeekStats) string {
	var parts []string
	for _, st := range []schedule.Status{
		schedule.StatusConfirmed,
		schedule.StatusPending,
		schedule.StatusCompleted,
		schedule.StatusCancelled,
	} {
		if n := stats.ByStatus[st]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, st))
		}
	}

	line := fmt.Sprintf("%d bookings", stats.Total)
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	line += fmt.Sprintf(" · %dh%02dm booked · %d%% of business hours",
		stats.BookedMinutes/60, stats.BookedMinutes%60, stats.UtilizationPct)
	if !stats.BusiestDay.IsZero() {
		line += " · busiest " + stats.BusiestDay.Format("Monday")
	}
	return line
}

// windowFromConfig builds the availability window for the configured
// business hours.
func windowFromConfig(open, close, step int) availability.Window {
	return availability.Window{OpenMinutes: open, CloseMinutes: close, StepMinutes: step}
}
