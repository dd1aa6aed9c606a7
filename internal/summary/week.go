// Package summary aggregates a week of bookings into occupancy stats
// and an optional model-written recap, shared by the agenda command.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jcanete/agendum/internal/llm"
	"github.com/jcanete/agendum/internal/schedule"
)

// WeekStats aggregates the bookings of one week. Cancelled bookings
// count toward Total and ByStatus but never toward occupancy.
type WeekStats struct {
	Total          int
	ByStatus       map[schedule.Status]int
	BookedMinutes  int
	UtilizationPct int
	BusiestDay     time.Time
}

// WeekSummary holds the week range, its appointments in day order, and
// the derived stats.
type WeekSummary struct {
	Start        time.Time
	End          time.Time
	Appointments []*schedule.Appointment
	Stats        WeekStats
	Insight      string
}

// Options configures the repository-backed summary builder.
type Options struct {
	WeekStart      time.Time
	OpenMinutes    int
	CloseMinutes   int
	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string
}

// SummarizeWeek computes stats for the week containing weekStart.
// Utilization is booked minutes against the business-hours capacity of
// all seven days.
func SummarizeWeek(weekStart time.Time, appts []*schedule.Appointment, openMinutes, closeMinutes int) *WeekSummary {
	start := schedule.StartOfWeek(weekStart)
	end := start.AddDate(0, 0, 6)

	stats := WeekStats{ByStatus: map[schedule.Status]int{}}
	var kept []*schedule.Appointment
	busiest := 0
	for _, b := range schedule.BucketByDay(appts, start, 7) {
		active := 0
		for _, a := range b.Appointments {
			kept = append(kept, a)
			stats.Total++
			stats.ByStatus[a.Status]++
			if !a.IsCancelled() {
				stats.BookedMinutes += a.Duration()
				active++
			}
		}
		if active > busiest {
			busiest = active
			stats.BusiestDay = b.Date
		}
	}

	if capacity := 7 * (closeMinutes - openMinutes); capacity > 0 {
		stats.UtilizationPct = stats.BookedMinutes * 100 / capacity
	}

	return &WeekSummary{Start: start, End: end, Appointments: kept, Stats: stats}
}

// BuildWeekSummary loads the week's bookings and optionally asks the
// configured model for a short staffing recap.
func BuildWeekSummary(ctx context.Context, repo schedule.Repository, opts Options) (*WeekSummary, error) {
	weekStart := opts.WeekStart
	if weekStart.IsZero() {
		weekStart = time.Now()
	}
	start := schedule.StartOfWeek(weekStart)

	appts, err := repo.ListByDateRange(ctx, start, start.AddDate(0, 0, 6))
	if err != nil {
		return nil, fmt.Errorf("fetching bookings: %w", err)
	}

	week := SummarizeWeek(start, appts, opts.OpenMinutes, opts.CloseMinutes)

	if opts.IncludeInsight && week.Stats.Total > 0 {
		if opts.Model == "" {
			return nil, errors.New("model is required for insight")
		}
		client, err := llm.NewClient(opts.Provider, opts.Model, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
		insight, err := client.Chat(ctx, insightMessages(week))
		if err != nil {
			return nil, fmt.Errorf("summarizing week: %w", err)
		}
		week.Insight = strings.TrimSpace(insight)
	}

	return week, nil
}

// insightMessages turns the summary into a compact transcript. The
// model sees counts and the booking list, nothing customer-identifying
// beyond what the agenda already prints.
func insightMessages(week *WeekSummary) []llm.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Week %s to %s: %d bookings, %d booked minutes, %d%% of business hours.\n",
		week.Start.Format("2006-01-02"), week.End.Format("2006-01-02"),
		week.Stats.Total, week.Stats.BookedMinutes, week.Stats.UtilizationPct)
	for status, n := range week.Stats.ByStatus {
		fmt.Fprintf(&b, "%s: %d\n", status, n)
	}
	for _, a := range week.Appointments {
		fmt.Fprintf(&b, "- %s %s-%s %s [%s]\n",
			a.Day.Format("Mon"), a.Start, a.End, a.ServiceName, a.Status)
	}

	return []llm.Message{
		{Role: "system", Content: "You review a service business's weekly booking schedule. " +
			"Reply with two or three plain sentences: how busy the week is, where the gaps are, " +
			"and anything needing attention. No markdown."},
		{Role: "user", Content: b.String()},
	}
}
