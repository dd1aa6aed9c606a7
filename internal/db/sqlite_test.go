package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jcanete/agendum/internal/schedule"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func book(t *testing.T, repo *SQLite, date, start, end string, staffID *string) *schedule.Appointment {
	t.Helper()
	appt, err := schedule.New("Haircut", "Ana", date, start, end, staffID)
	if err != nil {
		t.Fatalf("schedule.New() unexpected error: %v", err)
	}
	if err := repo.CreateAppointment(context.Background(), appt); err != nil {
		t.Fatalf("CreateAppointment() unexpected error: %v", err)
	}
	return appt
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	staff := "nora"
	appt := book(t, repo, "2026-09-01", "10:00", "10:30", &staff)

	got, err := repo.GetAppointment(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("GetAppointment() unexpected error: %v", err)
	}
	if got.ServiceName != "Haircut" || got.CustomerName != "Ana" {
		t.Errorf("got %q for %q, want Haircut for Ana", got.ServiceName, got.CustomerName)
	}
	if got.Start != "10:00" || got.End != "10:30" {
		t.Errorf("times = %s-%s, want 10:00-10:30", got.Start, got.End)
	}
	if got.StaffID == nil || *got.StaffID != "nora" {
		t.Errorf("staff = %v, want nora", got.StaffID)
	}
	if got.Status != schedule.StatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
	if got.Day.Format("2006-01-02") != "2026-09-01" {
		t.Errorf("day = %v, want 2026-09-01", got.Day)
	}
}

func TestGetNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetAppointment(context.Background(), "missing")
	if !errors.Is(err, schedule.ErrAppointmentNotFound) {
		t.Errorf("error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	repo := newTestRepo(t)
	book(t, repo, "2026-09-01", "10:00", "11:00", nil)

	conflict, _ := schedule.New("Massage", "", "2026-09-01", "10:30", "11:30", nil)
	err := repo.CreateAppointment(context.Background(), conflict)
	if !errors.Is(err, schedule.ErrTimeBlockOverlap) {
		t.Errorf("error = %v, want ErrTimeBlockOverlap", err)
	}
}

func TestCreateAllowsAbutting(t *testing.T) {
	repo := newTestRepo(t)
	book(t, repo, "2026-09-01", "10:00", "11:00", nil)
	book(t, repo, "2026-09-01", "11:00", "12:00", nil)
}

func TestCreateAllowsDifferentStaff(t *testing.T) {
	repo := newTestRepo(t)
	nora, ivan := "nora", "ivan"
	book(t, repo, "2026-09-01", "10:00", "11:00", &nora)
	book(t, repo, "2026-09-01", "10:00", "11:00", &ivan)
}

func TestUnassignedConflictsWithEveryone(t *testing.T) {
	repo := newTestRepo(t)
	nora := "nora"
	book(t, repo, "2026-09-01", "10:00", "11:00", nil)

	conflict, _ := schedule.New("Massage", "", "2026-09-01", "10:00", "11:00", &nora)
	err := repo.CreateAppointment(context.Background(), conflict)
	if !errors.Is(err, schedule.ErrTimeBlockOverlap) {
		t.Errorf("error = %v, want ErrTimeBlockOverlap against unassigned booking", err)
	}
}

func TestCancelledDoesNotBlock(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	appt := book(t, repo, "2026-09-01", "10:00", "11:00", nil)
	if err := repo.SetStatus(ctx, appt.ID, schedule.StatusCancelled); err != nil {
		t.Fatalf("SetStatus() unexpected error: %v", err)
	}

	// The freed slot is bookable again.
	book(t, repo, "2026-09-01", "10:00", "11:00", nil)
}

func TestListByDateRange(t *testing.T) {
	repo := newTestRepo(t)

	book(t, repo, "2026-09-01", "14:00", "15:00", nil)
	book(t, repo, "2026-09-01", "09:00", "10:00", nil)
	book(t, repo, "2026-09-03", "09:00", "10:00", nil)
	book(t, repo, "2026-09-20", "09:00", "10:00", nil)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local)
	appts, err := repo.ListByDateRange(context.Background(), from, to)
	if err != nil {
		t.Fatalf("ListByDateRange() unexpected error: %v", err)
	}

	if len(appts) != 3 {
		t.Fatalf("got %d appointments, want 3", len(appts))
	}
	// Ordered by day then start time.
	if appts[0].Start != "09:00" || appts[1].Start != "14:00" {
		t.Errorf("first day not ordered by start: %s, %s", appts[0].Start, appts[1].Start)
	}
}

func TestUpdateTimes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	appt := book(t, repo, "2026-09-01", "10:00", "10:30", nil)
	if err := repo.UpdateTimes(ctx, appt.ID, "10:00", "11:30"); err != nil {
		t.Fatalf("UpdateTimes() unexpected error: %v", err)
	}

	got, _ := repo.GetAppointment(ctx, appt.ID)
	if got.Start != "10:00" || got.End != "11:30" {
		t.Errorf("times = %s-%s, want 10:00-11:30", got.Start, got.End)
	}
}

func TestUpdateTimesRejectsOverlap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	appt := book(t, repo, "2026-09-01", "10:00", "10:30", nil)
	book(t, repo, "2026-09-01", "11:00", "12:00", nil)

	err := repo.UpdateTimes(ctx, appt.ID, "10:00", "11:30")
	if !errors.Is(err, schedule.ErrTimeBlockOverlap) {
		t.Errorf("error = %v, want ErrTimeBlockOverlap", err)
	}
}

func TestUpdateTimesIgnoresSelfOverlap(t *testing.T) {
	repo := newTestRepo(t)
	appt := book(t, repo, "2026-09-01", "10:00", "11:00", nil)

	// Shrinking within its own window must not collide with itself.
	if err := repo.UpdateTimes(context.Background(), appt.ID, "10:00", "10:30"); err != nil {
		t.Fatalf("UpdateTimes() unexpected error: %v", err)
	}
}

func TestMoveAppointment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	appt := book(t, repo, "2026-09-01", "10:00", "11:00", nil)
	newDay := time.Date(2026, 9, 3, 0, 0, 0, 0, time.Local)
	if err := repo.MoveAppointment(ctx, appt.ID, newDay, "14:00", "15:00"); err != nil {
		t.Fatalf("MoveAppointment() unexpected error: %v", err)
	}

	got, _ := repo.GetAppointment(ctx, appt.ID)
	if got.Day.Format("2006-01-02") != "2026-09-03" {
		t.Errorf("day = %v, want 2026-09-03", got.Day)
	}
	if got.Start != "14:00" || got.End != "15:00" {
		t.Errorf("times = %s-%s, want 14:00-15:00", got.Start, got.End)
	}
}

func TestMoveRejectsOverlapOnTargetDay(t *testing.T) {
	repo := newTestRepo(t)
	appt := book(t, repo, "2026-09-01", "10:00", "11:00", nil)
	book(t, repo, "2026-09-03", "14:00", "15:00", nil)

	newDay := time.Date(2026, 9, 3, 0, 0, 0, 0, time.Local)
	err := repo.MoveAppointment(context.Background(), appt.ID, newDay, "14:30", "15:30")
	if !errors.Is(err, schedule.ErrTimeBlockOverlap) {
		t.Errorf("error = %v, want ErrTimeBlockOverlap", err)
	}
}

func TestSetStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	appt := book(t, repo, "2026-09-01", "10:00", "11:00", nil)

	if err := repo.SetStatus(ctx, appt.ID, schedule.StatusConfirmed); err != nil {
		t.Fatalf("SetStatus() unexpected error: %v", err)
	}
	got, _ := repo.GetAppointment(ctx, appt.ID)
	if got.Status != schedule.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}

	if err := repo.SetStatus(ctx, appt.ID, "tentative"); !errors.Is(err, schedule.ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus", err)
	}
	if err := repo.SetStatus(ctx, "missing", schedule.StatusConfirmed); !errors.Is(err, schedule.ErrAppointmentNotFound) {
		t.Errorf("error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestBookedIntervals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	nora, ivan := "nora", "ivan"

	book(t, repo, "2026-09-01", "09:00", "10:00", nil)   // unassigned
	book(t, repo, "2026-09-01", "11:00", "12:00", &nora) // nora
	book(t, repo, "2026-09-01", "13:00", "14:00", &ivan) // ivan
	cancelled := book(t, repo, "2026-09-01", "15:00", "16:00", nil)
	if err := repo.SetStatus(ctx, cancelled.ID, schedule.StatusCancelled); err != nil {
		t.Fatal(err)
	}
	book(t, repo, "2026-09-02", "09:00", "10:00", nil) // other day

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	t.Run("whole business", func(t *testing.T) {
		got, err := repo.BookedIntervals(ctx, day, nil)
		if err != nil {
			t.Fatalf("BookedIntervals() unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d intervals, want 3 (cancelled and other-day excluded)", len(got))
		}
		if got[0].StartMinutes != 540 || got[0].EndMinutes != 600 {
			t.Errorf("first interval = %+v, want 540-600", got[0])
		}
	})

	t.Run("filtered to nora", func(t *testing.T) {
		got, err := repo.BookedIntervals(ctx, day, &nora)
		if err != nil {
			t.Fatalf("BookedIntervals() unexpected error: %v", err)
		}
		// Nora's own booking plus the unassigned one; ivan's excluded.
		if len(got) != 2 {
			t.Fatalf("got %d intervals, want 2", len(got))
		}
	})
}
