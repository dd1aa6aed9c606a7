package schedule

import (
	"context"
	"time"
)

// BookedInterval is a time window occupied by a pending or confirmed
// appointment, expressed in minutes since midnight.
type BookedInterval struct {
	StartMinutes int
	EndMinutes   int
}

// Repository defines the storage interface for appointments.
type Repository interface {
	// CreateAppointment adds a new appointment.
	// Returns ErrTimeBlockOverlap if it conflicts with an existing
	// blocking appointment for the same staff member.
	CreateAppointment(ctx context.Context, a *Appointment) error

	// GetAppointment retrieves an appointment by ID.
	// Returns ErrAppointmentNotFound if no such appointment exists.
	GetAppointment(ctx context.Context, id string) (*Appointment, error)

	// ListByDateRange returns all appointments whose day falls within
	// the range (inclusive), ordered by day then start time.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*Appointment, error)

	// UpdateTimes updates an appointment's start and end in place.
	// Used for resize commits.
	UpdateTimes(ctx context.Context, id string, newStart, newEnd string) error

	// MoveAppointment relocates an appointment to a new day and start,
	// preserving its duration.
	MoveAppointment(ctx context.Context, id string, newDay time.Time, newStart, newEnd string) error

	// SetStatus transitions an appointment's status.
	SetStatus(ctx context.Context, id string, status Status) error

	// BookedIntervals returns the occupied windows for a day, filtered
	// to blocking statuses. A nil staffID queries the business as a
	// whole; otherwise only that staff member's bookings (plus
	// unassigned ones) count.
	BookedIntervals(ctx context.Context, day time.Time, staffID *string) ([]BookedInterval, error)

	// Close releases any resources held by the repository.
	Close() error
}
