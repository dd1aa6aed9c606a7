package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcanete/agendum/internal/schedule"
)

func (a *App) confirmCmd() *cobra.Command {
	return a.statusCmd("confirm", "Confirm a pending appointment", schedule.StatusConfirmed)
}

func (a *App) doneCmd() *cobra.Command {
	return a.statusCmd("done", "Mark an appointment completed", schedule.StatusCompleted)
}

func (a *App) cancelCmd() *cobra.Command {
	return a.statusCmd("cancel", "Cancel an appointment, freeing its slot", schedule.StatusCancelled)
}

func (a *App) statusCmd(use, short string, status schedule.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			appt, err := a.resolveAppointment(ctx, args[0])
			if err != nil {
				return err
			}

			if err := a.repo.SetStatus(ctx, appt.ID, status); err != nil {
				return fmt.Errorf("updating status: %w", err)
			}

			fmt.Printf("%s %s: %s %s-%s (%s)\n",
				status,
				shortID(appt.ID),
				appt.Day.Format("2006-01-02"),
				appt.Start,
				appt.End,
				appt.ServiceName,
			)
			return nil
		},
	}
}

// resolveAppointment accepts a full ID or a unique prefix. Prefixes are
// matched against the surrounding three months of appointments.
func (a *App) resolveAppointment(ctx context.Context, id string) (*schedule.Appointment, error) {
	appt, err := a.repo.GetAppointment(ctx, id)
	if err == nil {
		return appt, nil
	}
	if !errors.Is(err, schedule.ErrAppointmentNotFound) {
		return nil, err
	}

	today := schedule.TruncateToDay(time.Now())
	appts, err := a.repo.ListByDateRange(ctx, today.AddDate(0, -1, 0), today.AddDate(0, 2, 0))
	if err != nil {
		return nil, err
	}

	var match *schedule.Appointment
	for _, c := range appts {
		if !strings.HasPrefix(c.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("ambiguous id prefix %q", id)
		}
		match = c
	}
	if match == nil {
		return nil, schedule.ErrAppointmentNotFound
	}
	return match, nil
}
