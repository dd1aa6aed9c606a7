package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcanete/agendum/internal/availability"
	"github.com/jcanete/agendum/internal/schedule"
)

func (a *App) slotsCmd() *cobra.Command {
	var (
		date     string
		duration int
		staff    string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show available booking slots for a day",
		Long: `Show every candidate start time for a day, marking the ones that
are free for the requested service duration.

Example:
  agendum slots --date=2026-09-01 --duration=60`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			day, err := schedule.ParseDate(date)
			if err != nil {
				return err
			}

			var staffID *string
			if staff != "" {
				staffID = &staff
			}

			ctx := context.Background()
			booked, err := a.repo.BookedIntervals(ctx, day, staffID)
			if err != nil {
				return fmt.Errorf("loading bookings: %w", err)
			}

			intervals := make([]availability.Interval, len(booked))
			for i, b := range booked {
				intervals[i] = availability.Interval{StartMinutes: b.StartMinutes, EndMinutes: b.EndMinutes}
			}

			window := windowFromConfig(a.config.OpenMinutes(), a.config.CloseMinutes(), a.config.Business.StepMinutes)
			slots := availability.Slots(window, day, duration, intervals, time.Now())

			fmt.Println(formatHeader(day.Format("Monday, January 2")))
			fmt.Print(formatSlots(slots))
			fmt.Println(formatMuted("green: free, red: taken or past"))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to check (YYYY-MM-DD, default: today)")
	cmd.Flags().IntVar(&duration, "duration", 30, "Service duration in minutes")
	cmd.Flags().StringVar(&staff, "staff", "", "Staff member (default: whole business)")

	return cmd
}
