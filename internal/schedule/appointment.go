// Package schedule defines the core domain types for agendum.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyService      = errors.New("service name cannot be empty")
	ErrInvalidStatus     = errors.New("status must be pending, confirmed, completed or cancelled")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrTimeBlockOverlap    = errors.New("time block overlaps with an existing appointment")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Status represents the state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid returns true if the status is a valid value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Blocks returns true if an appointment with this status occupies its
// time window for booking purposes. Cancelled and completed appointments
// never block a slot.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment represents a booked service time block.
type Appointment struct {
	ID           string
	ServiceName  string
	CustomerName string
	Day          time.Time // date only, midnight local
	Start        string    // "HH:MM" format
	End          string    // "HH:MM" format
	StaffID      *string   // nil means unassigned/any
	Status       Status
	CreatedAt    time.Time
}

// New creates a new Appointment with validation.
// date must be in YYYY-MM-DD format. start and end must be in HH:MM
// format, with end after start. staffID may be nil for "any staff".
func New(service, customer, date, start, end string, staffID *string) (*Appointment, error) {
	if service == "" {
		return nil, ErrEmptyService
	}

	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	if err := ValidateTime(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}

	if err := ValidateTime(end); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}

	if end <= start {
		return nil, ErrEndBeforeStart
	}

	return &Appointment{
		ID:           uuid.NewString(),
		ServiceName:  service,
		CustomerName: customer,
		Day:          day,
		Start:        start,
		End:          end,
		StaffID:      staffID,
		Status:       StatusPending,
		CreatedAt:    time.Now(),
	}, nil
}

// ValidateTime checks that s is a well-formed HH:MM clock string.
func ValidateTime(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// StartMinutes returns the start time as minutes since midnight.
func (a *Appointment) StartMinutes() int {
	return TimeToMinutes(a.Start)
}

// EndMinutes returns the end time as minutes since midnight.
func (a *Appointment) EndMinutes() int {
	return TimeToMinutes(a.End)
}

// Duration returns the appointment duration in minutes.
func (a *Appointment) Duration() int {
	return a.EndMinutes() - a.StartMinutes()
}

// IsCancelled returns true if the appointment has cancelled status.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// OverlapsWith returns true if this appointment overlaps another on the
// same day, using half-open [start, end) semantics.
func (a *Appointment) OverlapsWith(other *Appointment) bool {
	if other == nil {
		return false
	}
	if !a.Day.Equal(other.Day) {
		return false
	}
	return TimesOverlap(a.Start, a.End, other.Start, other.End)
}

// SameStaff returns true if both appointments are bound to the same staff
// member. An unassigned appointment conflicts with every staff member.
func (a *Appointment) SameStaff(other *Appointment) bool {
	if a.StaffID == nil || other.StaffID == nil {
		return true
	}
	return *a.StaffID == *other.StaffID
}

// EndTime returns the absolute end instant of the appointment in the
// location of now.
func (a *Appointment) EndTime(loc *time.Location) time.Time {
	m := a.EndMinutes()
	return time.Date(a.Day.Year(), a.Day.Month(), a.Day.Day(), m/60, m%60, 0, 0, loc)
}

// IsPast returns true if the appointment's end time is before now.
func (a *Appointment) IsPast(now time.Time) bool {
	return now.After(a.EndTime(now.Location()))
}

// ParseDate parses a date string in YYYY-MM-DD format as local midnight,
// so day arithmetic lines up with wall-clock "now" comparisons.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
