// Package assist turns a free-text booking request into a concrete
// appointment proposal validated against current availability. It
// coordinates the LLM, the availability engine, and the repository; the
// caller decides whether to book the proposal.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jcanete/agendum/internal/availability"
	"github.com/jcanete/agendum/internal/llm"
	"github.com/jcanete/agendum/internal/schedule"
)

// ErrNoSlotAvailable is returned when the requested day has no open slot
// for the service duration.
var ErrNoSlotAvailable = errors.New("no available slot for the requested day")

// ErrProposalInvalid is returned when the model keeps proposing slots
// that are not actually open.
var ErrProposalInvalid = errors.New("assistant proposed an unavailable slot")

const maxAttempts = 2

// Assistant proposes bookings from natural language input.
type Assistant struct {
	client llm.Client
	repo   schedule.Repository
	window availability.Window
	now    func() time.Time
}

// New creates an Assistant. now may be nil, defaulting to time.Now.
func New(client llm.Client, repo schedule.Repository, window availability.Window, now func() time.Time) *Assistant {
	if now == nil {
		now = time.Now
	}
	return &Assistant{client: client, repo: repo, window: window, now: now}
}

// Proposal is the assistant's suggested booking.
type Proposal struct {
	ServiceName     string `json:"service"`
	CustomerName    string `json:"customer"`
	Date            string `json:"date"`  // YYYY-MM-DD
	Start           string `json:"start"` // "HH:MM"
	DurationMinutes int    `json:"duration_minutes"`
	Note            string `json:"note"`
}

// End returns the proposal's end time in "HH:MM".
func (p Proposal) End() string {
	return schedule.MinutesToTime(schedule.TimeToMinutes(p.Start) + p.DurationMinutes)
}

// Propose asks the model for a booking matching input on the given day,
// constrained to the open slots for that day. The proposed start must be
// one of the open slots; the model gets one retry before
// ErrProposalInvalid.
func (a *Assistant) Propose(ctx context.Context, input, date string, serviceMinutes int, staffID *string) (*Proposal, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, err
	}

	booked, err := a.repo.BookedIntervals(ctx, day, staffID)
	if err != nil {
		return nil, fmt.Errorf("fetching booked intervals: %w", err)
	}

	intervals := make([]availability.Interval, len(booked))
	for i, b := range booked {
		intervals[i] = availability.Interval{StartMinutes: b.StartMinutes, EndMinutes: b.EndMinutes}
	}

	open := openStarts(availability.Slots(a.window, day, serviceMinutes, intervals, a.now()))
	if len(open) == 0 {
		return nil, ErrNoSlotAvailable
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(input, day, serviceMinutes, open)},
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		var p Proposal
		if err := a.client.ChatJSON(ctx, messages, &p); err != nil {
			return nil, fmt.Errorf("asking assistant: %w", err)
		}

		p.Date = day.Format("2006-01-02")
		if p.DurationMinutes <= 0 {
			p.DurationMinutes = serviceMinutes
		}

		if containsStart(open, p.Start) {
			return &p, nil
		}

		messages = append(messages,
			llm.Message{Role: "assistant", Content: fmt.Sprintf("%q", p.Start)},
			llm.Message{Role: "user", Content: fmt.Sprintf(
				"%s is not an open slot. Pick the start strictly from: %s",
				p.Start, strings.Join(open, ", "))},
		)
	}

	return nil, ErrProposalInvalid
}

const systemPrompt = `You are a booking assistant for a service business.
Given a customer request and the list of open slots, pick the single best
slot. Respond with JSON only:
{"service": string, "customer": string, "start": "HH:MM", "duration_minutes": int, "note": string}
The start MUST be one of the open slots. Prefer the customer's stated
time of day; otherwise the earliest open slot.`

func buildUserPrompt(input string, day time.Time, serviceMinutes int, open []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Request: %s\n", input)
	fmt.Fprintf(&sb, "Day: %s (%s)\n", day.Format("2006-01-02"), day.Weekday())
	fmt.Fprintf(&sb, "Service duration: %d minutes\n", serviceMinutes)
	fmt.Fprintf(&sb, "Open slots: %s\n", strings.Join(open, ", "))
	return sb.String()
}

func openStarts(slots []availability.Slot) []string {
	var open []string
	for _, s := range slots {
		if s.Available {
			open = append(open, s.Label)
		}
	}
	return open
}

func containsStart(open []string, start string) bool {
	for _, s := range open {
		if s == start {
			return true
		}
	}
	return false
}
