package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcanete/agendum/internal/assist"
	"github.com/jcanete/agendum/internal/llm"
	"github.com/jcanete/agendum/internal/schedule"
)

func (a *App) assistCmd() *cobra.Command {
	var (
		date     string
		duration int
		staff    string
		book     bool
	)

	cmd := &cobra.Command{
		Use:   "assist [request]",
		Short: "Let the assistant propose a booking slot",
		Long: `Describe a booking in plain language and let the configured LLM
propose a free slot for it. With --book the proposal is committed.

Requires [assist] to be configured (provider, model).

Example:
  agendum assist "haircut for Ana, she prefers late afternoon" --book`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if a.config.Assist.Provider == "" {
				return errors.New("no assist provider configured; set [assist] in the config file")
			}

			client, err := llm.NewClient(a.config.Assist.Provider, a.config.Assist.Model, a.config.Assist.BaseURL)
			if err != nil {
				return err
			}

			var staffID *string
			if staff != "" {
				staffID = &staff
			}

			window := windowFromConfig(a.config.OpenMinutes(), a.config.CloseMinutes(), a.config.Business.StepMinutes)
			assistant := assist.New(client, a.repo, window, time.Now)

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			proposal, err := assistant.Propose(ctx, args[0], date, duration, staffID)
			if err != nil {
				return err
			}

			fmt.Printf("Proposed: %s %s-%s  %s", proposal.Date, proposal.Start, proposal.End(), proposal.ServiceName)
			if proposal.CustomerName != "" {
				fmt.Printf(" (%s)", proposal.CustomerName)
			}
			fmt.Println()
			if proposal.Note != "" {
				fmt.Println(formatMuted(proposal.Note))
			}

			if !book {
				fmt.Println(formatMuted("Re-run with --book to commit."))
				return nil
			}

			appt, err := schedule.New(proposal.ServiceName, proposal.CustomerName, proposal.Date, proposal.Start, proposal.End(), staffID)
			if err != nil {
				return err
			}
			if err := a.repo.CreateAppointment(ctx, appt); err != nil {
				return fmt.Errorf("booking proposal: %w", err)
			}
			fmt.Printf("Booked %s\n", shortID(appt.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to book on (YYYY-MM-DD, default: today)")
	cmd.Flags().IntVar(&duration, "duration", 30, "Service duration in minutes")
	cmd.Flags().StringVar(&staff, "staff", "", "Staff member (default: any)")
	cmd.Flags().BoolVar(&book, "book", false, "Commit the proposed appointment")

	return cmd
}
