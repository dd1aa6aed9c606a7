package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcanete/agendum/internal/schedule"
)

func (a *App) bookCmd() *cobra.Command {
	var (
		date     string
		start    string
		end      string
		customer string
		staff    string
	)

	cmd := &cobra.Command{
		Use:   "book [service]",
		Short: "Book a new appointment",
		Long: `Book a new appointment for a service.

Example:
  agendum book "Haircut" --date=2026-09-01 --start=10:00 --end=10:30 --customer="Ana"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			var staffID *string
			if staff != "" {
				staffID = &staff
			}

			appt, err := schedule.New(args[0], customer, date, start, end, staffID)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.repo.CreateAppointment(ctx, appt); err != nil {
				return fmt.Errorf("booking appointment: %w", err)
			}

			fmt.Printf("Booked %s: %s %s-%s (%s)\n",
				shortID(appt.ID),
				appt.Day.Format("2006-01-02"),
				appt.Start,
				appt.End,
				appt.ServiceName,
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Appointment date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name")
	cmd.Flags().StringVar(&staff, "staff", "", "Staff member (default: any)")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
