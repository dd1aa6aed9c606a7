// Package interaction turns raw pointer events into committed domain
// requests through a small state machine. A Controller owns at most one
// session at a time; every transition begins and ends in Idle.
package interaction

import (
	"math"
	"time"

	"github.com/jcanete/agendum/internal/timegrid"
)

// State identifies the controller's current session, if any.
type State int

const (
	StateIdle State = iota
	// StatePendingMove is armed on an appointment but still below the
	// drag threshold; release from here is a click, not a move.
	StatePendingMove
	StateCreating
	StateMoving
	StateResizing
)

const defaultDragThreshold = 5.0

// Config holds the fixed inputs of the state machine.
type Config struct {
	Grid      timegrid.Grid
	FirstDate time.Time // date of day index 0, midnight local
	NumDays   int
	Now       func() time.Time // injectable for testing

	// MinDuration is the smallest expressible block in minutes.
	// Defaults to the grid step.
	MinDuration int

	// DragThreshold is the pixel distance in x or y that separates a
	// click from a drag. Defaults to 5.
	DragThreshold float64
}

func (c Config) minDuration() int {
	if c.MinDuration > 0 {
		return c.MinDuration
	}
	return c.Grid.StepMinutes
}

func (c Config) dragThreshold() float64 {
	if c.DragThreshold > 0 {
		return c.DragThreshold
	}
	return defaultDragThreshold
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// cellTime resolves a grid position to an absolute instant.
func (c Config) cellTime(day, minutes int) time.Time {
	d := c.FirstDate.AddDate(0, 0, day)
	return d.Add(time.Duration(minutes) * time.Minute)
}

// CreatePreview is the live geometry of an in-progress create session.
type CreatePreview struct {
	Day          int
	StartMinutes int
	EndMinutes   int
}

// MovePreview is the live geometry of an in-progress move session.
type MovePreview struct {
	ID           string
	Day          int
	StartMinutes int
	EndMinutes   int
}

// ResizePreview is the live geometry of an in-progress resize session.
type ResizePreview struct {
	ID           string
	Day          int
	StartMinutes int
	EndMinutes   int
}

type createSession struct {
	day   int
	start int
	end   int
}

type moveSession struct {
	ref         AppointmentRef
	originX     float64
	originY     float64
	clickOffset int // pointerMinutes - start at pointer-down
	liveDay     int
	liveStart   int
}

type resizeSession struct {
	ref     AppointmentRef
	liveEnd int
}

// Controller owns the single active interaction session. It is not safe
// for concurrent use; it is meant to be driven synchronously from one
// event loop.
type Controller struct {
	cfg    Config
	state  State
	create createSession
	move   moveSession
	resize resizeSession
}

// NewController creates a controller in the Idle state.
func NewController(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// Handle advances the state machine with one event. It returns the
// emitted request, if the event completed a gesture.
func (c *Controller) Handle(ev Event) (Request, bool) {
	switch ev := ev.(type) {
	case PointerDown:
		c.handleDown(ev)
		return nil, false
	case PointerMove:
		c.handleMove(ev)
		return nil, false
	case PointerUp:
		return c.handleUp()
	case Cancel:
		c.state = StateIdle
		return nil, false
	}
	return nil, false
}

func (c *Controller) handleDown(ev PointerDown) {
	if c.state != StateIdle {
		return
	}

	switch ev.Target {
	case TargetEmptyCell:
		// No session starts on a cell whose time has already passed.
		if c.cfg.cellTime(ev.Day, ev.Minutes).Before(c.cfg.now()) {
			return
		}
		minDur := c.cfg.minDuration()
		start := timegrid.Clamp(c.cfg.Grid.Snap(ev.Minutes), 0, timegrid.MinutesPerDay-minDur)
		c.create = createSession{day: ev.Day, start: start, end: start + minDur}
		c.state = StateCreating

	case TargetAppointmentBody:
		if ev.Appointment == nil || ev.Appointment.Past {
			return
		}
		c.move = moveSession{
			ref:         *ev.Appointment,
			originX:     ev.X,
			originY:     ev.Y,
			clickOffset: ev.Minutes - ev.Appointment.StartMinutes,
			liveDay:     ev.Appointment.Day,
			liveStart:   ev.Appointment.StartMinutes,
		}
		c.state = StatePendingMove

	case TargetResizeHandle:
		if ev.Appointment == nil || ev.Appointment.Past {
			return
		}
		c.resize = resizeSession{ref: *ev.Appointment, liveEnd: ev.Appointment.EndMinutes}
		c.state = StateResizing
	}
}

func (c *Controller) handleMove(ev PointerMove) {
	switch c.state {
	case StateCreating:
		minDur := c.cfg.minDuration()
		end := c.cfg.Grid.Snap(ev.Minutes) + minDur
		if end < c.create.start+minDur {
			end = c.create.start + minDur
		}
		c.create.end = timegrid.Clamp(end, c.create.start+minDur, timegrid.MinutesPerDay)

	case StatePendingMove:
		if math.Abs(ev.X-c.move.originX) > c.cfg.dragThreshold() ||
			math.Abs(ev.Y-c.move.originY) > c.cfg.dragThreshold() {
			c.state = StateMoving
			c.trackMove(ev)
		}

	case StateMoving:
		c.trackMove(ev)

	case StateResizing:
		minDur := c.cfg.minDuration()
		end := c.cfg.Grid.Snap(ev.Minutes)
		if end < c.resize.ref.StartMinutes+minDur {
			end = c.resize.ref.StartMinutes + minDur
		}
		c.resize.liveEnd = timegrid.Clamp(end, c.resize.ref.StartMinutes+minDur, timegrid.MinutesPerDay)
	}
}

// trackMove recomputes the live position so the grabbed point inside the
// card, not its top edge, follows the cursor.
func (c *Controller) trackMove(ev PointerMove) {
	duration := c.move.ref.EndMinutes - c.move.ref.StartMinutes
	start := ev.Minutes - c.move.clickOffset
	if start < 0 {
		start = 0
	}
	start = c.cfg.Grid.Snap(start)
	c.move.liveStart = timegrid.Clamp(start, 0, timegrid.MinutesPerDay-duration)
	maxDay := c.cfg.NumDays - 1
	if maxDay < 0 {
		maxDay = 0
	}
	c.move.liveDay = timegrid.Clamp(ev.Day, 0, maxDay)
}

func (c *Controller) handleUp() (Request, bool) {
	state := c.state
	c.state = StateIdle

	switch state {
	case StateCreating:
		if c.create.end-c.create.start < c.cfg.minDuration() {
			return nil, false
		}
		return CreateAppointment{
			Day:             c.create.day,
			StartMinutes:    c.create.start,
			DurationMinutes: c.create.end - c.create.start,
		}, true

	case StatePendingMove:
		// Never crossed the threshold: a click, not a drag.
		return SelectAppointment{ID: c.move.ref.ID}, true

	case StateMoving:
		return MoveAppointment{
			ID:              c.move.ref.ID,
			NewDay:          c.move.liveDay,
			NewStartMinutes: c.move.liveStart,
		}, true

	case StateResizing:
		return ResizeAppointment{
			ID:                 c.resize.ref.ID,
			NewDurationMinutes: c.resize.liveEnd - c.resize.ref.StartMinutes,
		}, true
	}
	return nil, false
}

// CreatePreview returns the live create session geometry for rendering.
func (c *Controller) CreatePreview() (CreatePreview, bool) {
	if c.state != StateCreating {
		return CreatePreview{}, false
	}
	return CreatePreview{Day: c.create.day, StartMinutes: c.create.start, EndMinutes: c.create.end}, true
}

// MovePreview returns the live move session geometry for rendering. It
// reports false while the gesture is still below the drag threshold.
func (c *Controller) MovePreview() (MovePreview, bool) {
	if c.state != StateMoving {
		return MovePreview{}, false
	}
	duration := c.move.ref.EndMinutes - c.move.ref.StartMinutes
	return MovePreview{
		ID:           c.move.ref.ID,
		Day:          c.move.liveDay,
		StartMinutes: c.move.liveStart,
		EndMinutes:   c.move.liveStart + duration,
	}, true
}

// ResizePreview returns the live resize session geometry for rendering.
func (c *Controller) ResizePreview() (ResizePreview, bool) {
	if c.state != StateResizing {
		return ResizePreview{}, false
	}
	return ResizePreview{
		ID:           c.resize.ref.ID,
		Day:          c.resize.ref.Day,
		StartMinutes: c.resize.ref.StartMinutes,
		EndMinutes:   c.resize.liveEnd,
	}, true
}
