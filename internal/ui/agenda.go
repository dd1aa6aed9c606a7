package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcanete/agendum/internal/schedule"
	"github.com/jcanete/agendum/internal/summary"
)

func (a *App) agendaCmd() *cobra.Command {
	var (
		date        string
		week        bool
		showSummary bool
		insight     bool
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "List appointments for a day or week",
		Long: `List appointments for a single day, or the whole week with --week.

--summary appends booking stats for the week; --insight additionally asks
the configured model for a short recap.

Example:
  agendum agenda --date=2026-09-01 --week --summary`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			day, err := schedule.ParseDate(date)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if showSummary || insight {
				return a.printWeekSummary(ctx, day, insight)
			}

			first, numDays := day, 1
			if week {
				first = schedule.StartOfWeek(day)
				numDays = 7
			}

			appts, err := a.repo.ListByDateRange(ctx, first, first.AddDate(0, 0, numDays-1))
			if err != nil {
				return fmt.Errorf("loading agenda: %w", err)
			}
			printAgenda(appts, first, numDays)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to list (YYYY-MM-DD, default: today)")
	cmd.Flags().BoolVar(&week, "week", false, "List the whole week containing the date")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Append week booking stats (implies --week)")
	cmd.Flags().BoolVar(&insight, "insight", false, "Add a model-written recap (implies --summary)")

	return cmd
}

func (a *App) printWeekSummary(ctx context.Context, day time.Time, insight bool) error {
	week, err := summary.BuildWeekSummary(ctx, a.repo, summary.Options{
		WeekStart:      day,
		OpenMinutes:    a.config.OpenMinutes(),
		CloseMinutes:   a.config.CloseMinutes(),
		IncludeInsight: insight,
		Provider:       a.config.Assist.Provider,
		Model:          a.config.Assist.Model,
		BaseURL:        a.config.Assist.BaseURL,
	})
	if err != nil {
		return err
	}

	printAgenda(week.Appointments, week.Start, 7)
	fmt.Println()
	fmt.Println(formatHeader("Week summary"))
	fmt.Println("  " + formatWeekStats(week.Stats))
	if week.Insight != "" {
		fmt.Println()
		fmt.Println(week.Insight)
	}
	return nil
}

func printAgenda(appts []*schedule.Appointment, first time.Time, numDays int) {
	if len(appts) == 0 {
		fmt.Println(formatMuted("No appointments."))
		return
	}
	for _, bucket := range schedule.BucketByDay(appts, first, numDays) {
		if len(bucket.Appointments) == 0 {
			continue
		}
		fmt.Println(formatHeader(bucket.Date.Format("Monday, January 2")))
		for _, appt := range bucket.Appointments {
			fmt.Println("  " + formatAppointment(appt))
		}
	}
}
