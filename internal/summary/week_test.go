package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/jcanete/agendum/internal/schedule"
)

func booking(t *testing.T, date, start, end string, status schedule.Status) *schedule.Appointment {
	t.Helper()
	a, err := schedule.New("Haircut", "Ana", date, start, end, nil)
	if err != nil {
		t.Fatalf("failed to build appointment: %v", err)
	}
	a.Status = status
	return a
}

func TestSummarizeWeek(t *testing.T) {
	wednesday := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.Local)

	appts := []*schedule.Appointment{
		booking(t, "2026-08-31", "09:00", "10:00", schedule.StatusConfirmed),
		booking(t, "2026-08-31", "14:00", "15:00", schedule.StatusConfirmed),
		booking(t, "2026-08-31", "11:00", "11:30", schedule.StatusCancelled),
		booking(t, "2026-09-01", "10:00", "10:30", schedule.StatusPending),
		booking(t, "2026-09-07", "09:00", "10:00", schedule.StatusPending), // next week
	}

	week := SummarizeWeek(wednesday, appts, 540, 1080)

	if !week.Start.Equal(monday) {
		t.Fatalf("start = %v, want %v", week.Start, monday)
	}
	if !week.End.Equal(sunday) {
		t.Fatalf("end = %v, want %v", week.End, sunday)
	}
	if len(week.Appointments) != 4 {
		t.Fatalf("appointments = %d, want 4 (next week dropped)", len(week.Appointments))
	}

	stats := week.Stats
	if stats.Total != 4 {
		t.Fatalf("total = %d, want 4", stats.Total)
	}
	if stats.ByStatus[schedule.StatusConfirmed] != 2 {
		t.Fatalf("confirmed = %d, want 2", stats.ByStatus[schedule.StatusConfirmed])
	}
	if stats.ByStatus[schedule.StatusCancelled] != 1 {
		t.Fatalf("cancelled = %d, want 1", stats.ByStatus[schedule.StatusCancelled])
	}
	if stats.BookedMinutes != 150 {
		t.Fatalf("booked minutes = %d, want 150 (cancelled excluded)", stats.BookedMinutes)
	}
	// 150 of 7*540 business-hours minutes.
	if stats.UtilizationPct != 3 {
		t.Fatalf("utilization = %d%%, want 3%%", stats.UtilizationPct)
	}
	if !stats.BusiestDay.Equal(monday) {
		t.Fatalf("busiest day = %v, want %v", stats.BusiestDay, monday)
	}
}

func TestSummarizeWeekEmpty(t *testing.T) {
	week := SummarizeWeek(time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local), nil, 540, 1080)
	if week.Stats.Total != 0 || week.Stats.UtilizationPct != 0 {
		t.Fatalf("stats = %+v, want zeroes", week.Stats)
	}
	if !week.Stats.BusiestDay.IsZero() {
		t.Fatalf("busiest day = %v, want zero", week.Stats.BusiestDay)
	}
}

func TestInsightMessages(t *testing.T) {
	appts := []*schedule.Appointment{
		booking(t, "2026-08-31", "09:00", "10:00", schedule.StatusConfirmed),
	}
	week := SummarizeWeek(time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local), appts, 540, 1080)

	msgs := insightMessages(week)
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want system + user", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Fatalf("roles = %s/%s, want system/user", msgs[0].Role, msgs[1].Role)
	}
	if !strings.Contains(msgs[1].Content, "1 bookings") || !strings.Contains(msgs[1].Content, "Haircut") {
		t.Errorf("user message missing stats or booking line:\n%s", msgs[1].Content)
	}
}
