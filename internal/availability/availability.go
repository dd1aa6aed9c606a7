// Package availability computes bookable start times for a day by
// subtracting existing reservations from a business-hours window.
package availability

import (
	"time"

	"github.com/jcanete/agendum/internal/schedule"
)

// Window describes the business-hours window and slot resolution in
// minutes since midnight.
type Window struct {
	OpenMinutes  int
	CloseMinutes int
	StepMinutes  int
}

// DefaultWindow returns the standard 09:00-18:00 window with 30-minute
// steps; the last candidate start is 17:30.
func DefaultWindow() Window {
	return Window{OpenMinutes: 540, CloseMinutes: 1080, StepMinutes: 30}
}

// Interval is an occupied half-open [StartMinutes, EndMinutes) window.
type Interval struct {
	StartMinutes int
	EndMinutes   int
}

// Slot is one candidate booking start. Unavailable slots are returned
// with Available=false so callers can gray them out rather than hide them.
type Slot struct {
	StartMinutes int
	Label        string
	Available    bool
}

// Slots returns every candidate start in w for the given day in
// chronological order. A slot is unavailable when its start is before now
// or when [start, start+serviceMinutes) overlaps any booked interval,
// using half-open overlap so a slot that exactly abuts a booking stays
// available. Booked intervals must already be filtered to blocking
// statuses.
//
// The function is pure given its inputs; fetching booked intervals is the
// caller's concern.
func Slots(w Window, day time.Time, serviceMinutes int, booked []Interval, now time.Time) []Slot {
	if serviceMinutes <= 0 || w.StepMinutes <= 0 || w.CloseMinutes <= w.OpenMinutes {
		return nil
	}

	day = schedule.TruncateToDay(day)

	var slots []Slot
	for s := w.OpenMinutes; s < w.CloseMinutes; s += w.StepMinutes {
		e := s + serviceMinutes
		slotStart := day.Add(time.Duration(s) * time.Minute)

		available := !slotStart.Before(now) && !overlapsAny(s, e, booked)
		slots = append(slots, Slot{
			StartMinutes: s,
			Label:        schedule.MinutesToTime(s),
			Available:    available,
		})
	}
	return slots
}

func overlapsAny(start, end int, booked []Interval) bool {
	for _, b := range booked {
		// Half-open: [start,end) overlaps [b.Start,b.End) iff
		// start < b.End && b.Start < end.
		if start < b.EndMinutes && b.StartMinutes < end {
			return true
		}
	}
	return false
}
