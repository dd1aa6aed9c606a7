// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jcanete/agendum/internal/schedule"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateAppointment adds a new appointment.
// Returns schedule.ErrTimeBlockOverlap if it conflicts with an existing
// blocking appointment for the same staff member.
func (s *SQLite) CreateAppointment(ctx context.Context, a *schedule.Appointment) error {
	if err := s.checkOverlap(ctx, a.Day, a.Start, a.End, a.StaffID, ""); err != nil {
		return err
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = schedule.StatusPending
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO appointments (
			id, service_name, customer_name, day, start_time, end_time,
			staff_id, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID,
		a.ServiceName,
		a.CustomerName,
		a.Day.Format("2006-01-02"),
		a.Start,
		a.End,
		a.StaffID,
		a.Status,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}

	return nil
}

// checkOverlap returns schedule.ErrTimeBlockOverlap if [start, end) on day
// collides with a blocking appointment that shares staff. An unassigned
// appointment (NULL staff) conflicts with everyone. excludeID skips the
// appointment being updated.
func (s *SQLite) checkOverlap(ctx context.Context, day time.Time, start, end string, staffID *string, excludeID string) error {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE day = ?
		  AND status IN ('pending', 'confirmed')
		  AND start_time < ?
		  AND end_time > ?
		  AND id != ?
		  AND (staff_id IS NULL OR ? IS NULL OR staff_id = ?)
	`

	var count int
	err := s.db.QueryRowContext(ctx, query,
		day.Format("2006-01-02"), end, start, excludeID, staffID, staffID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}
	if count > 0 {
		return schedule.ErrTimeBlockOverlap
	}
	return nil
}

// GetAppointment retrieves an appointment by ID.
func (s *SQLite) GetAppointment(ctx context.Context, id string) (*schedule.Appointment, error) {
	query := `
		SELECT id, service_name, customer_name, day, start_time, end_time,
		       staff_id, status, created_at
		FROM appointments
		WHERE id = ?
	`

	a, err := scanAppointment(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, schedule.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying appointment: %w", err)
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*schedule.Appointment, error) {
	var (
		a         schedule.Appointment
		day       string
		createdAt string
		staffID   sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.ServiceName,
		&a.CustomerName,
		&day,
		&a.Start,
		&a.End,
		&staffID,
		&a.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	a.Day, err = time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		// the driver renders DATE columns as "2006-01-02T00:00:00Z";
		// recover the date part and keep local midnight
		if len(day) >= 10 {
			a.Day, err = time.ParseInLocation("2006-01-02", day[:10], time.Local)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing day: %w", err)
		}
	}

	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		// created_at may hold SQLite's default CURRENT_TIMESTAMP format
		a.CreatedAt, err = time.Parse("2006-01-02 15:04:05", createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
	}

	if staffID.Valid {
		id := staffID.String
		a.StaffID = &id
	}

	return &a, nil
}

// ListByDateRange returns all appointments scheduled within the date range (inclusive).
func (s *SQLite) ListByDateRange(ctx context.Context, start, end time.Time) ([]*schedule.Appointment, error) {
	query := `
		SELECT id, service_name, customer_name, day, start_time, end_time,
		       staff_id, status, created_at
		FROM appointments
		WHERE day >= ? AND day <= ?
		ORDER BY day, start_time
	`

	rows, err := s.db.QueryContext(ctx, query,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*schedule.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointments: %w", err)
	}

	return result, nil
}

// UpdateTimes updates an appointment's start and end times in place.
// Returns schedule.ErrTimeBlockOverlap if the new window conflicts.
func (s *SQLite) UpdateTimes(ctx context.Context, id string, newStart, newEnd string) error {
	a, err := s.GetAppointment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkOverlap(ctx, a.Day, newStart, newEnd, a.StaffID, id); err != nil {
		return err
	}

	return s.exec(ctx, `UPDATE appointments SET start_time = ?, end_time = ? WHERE id = ?`,
		newStart, newEnd, id)
}

// MoveAppointment relocates an appointment to a new day and time window.
func (s *SQLite) MoveAppointment(ctx context.Context, id string, newDay time.Time, newStart, newEnd string) error {
	a, err := s.GetAppointment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkOverlap(ctx, newDay, newStart, newEnd, a.StaffID, id); err != nil {
		return err
	}

	return s.exec(ctx, `UPDATE appointments SET day = ?, start_time = ?, end_time = ? WHERE id = ?`,
		newDay.Format("2006-01-02"), newStart, newEnd, id)
}

// SetStatus transitions an appointment's status.
func (s *SQLite) SetStatus(ctx context.Context, id string, status schedule.Status) error {
	if !status.Valid() {
		return schedule.ErrInvalidStatus
	}
	return s.exec(ctx, `UPDATE appointments SET status = ? WHERE id = ?`, status, id)
}

// exec runs an update affecting exactly one appointment.
func (s *SQLite) exec(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating appointment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return schedule.ErrAppointmentNotFound
	}
	return nil
}

// BookedIntervals returns the occupied minute windows for a day, filtered
// to pending and confirmed appointments. A nil staffID queries the whole
// business; otherwise only that staff member's bookings plus unassigned
// ones count.
func (s *SQLite) BookedIntervals(ctx context.Context, day time.Time, staffID *string) ([]schedule.BookedInterval, error) {
	query := `
		SELECT start_time, end_time
		FROM appointments
		WHERE day = ?
		  AND status IN ('pending', 'confirmed')
		  AND (? IS NULL OR staff_id IS NULL OR staff_id = ?)
		ORDER BY start_time
	`

	rows, err := s.db.QueryContext(ctx, query, day.Format("2006-01-02"), staffID, staffID)
	if err != nil {
		return nil, fmt.Errorf("querying booked intervals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []schedule.BookedInterval
	for rows.Next() {
		var start, end string
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("scanning interval: %w", err)
		}
		result = append(result, schedule.BookedInterval{
			StartMinutes: schedule.TimeToMinutes(start),
			EndMinutes:   schedule.TimeToMinutes(end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating intervals: %w", err)
	}

	return result, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
