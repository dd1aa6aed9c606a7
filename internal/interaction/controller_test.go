package interaction

import (
	"testing"
	"time"

	"github.com/jcanete/agendum/internal/timegrid"
)

var weekStart = time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local) // Monday

// fixedNow is early Monday morning so the rest of the week is bookable.
func fixedNow() time.Time {
	return time.Date(2026, 8, 31, 8, 0, 0, 0, time.Local)
}

func newTestController() *Controller {
	return NewController(Config{
		Grid:      timegrid.New(),
		FirstDate: weekStart,
		NumDays:   7,
		Now:       fixedNow,
	})
}

func apptRef(id string, day, start, end int) *AppointmentRef {
	return &AppointmentRef{ID: id, Day: day, StartMinutes: start, EndMinutes: end}
}

func TestCreateGesture(t *testing.T) {
	c := newTestController()

	c.Handle(PointerDown{Target: TargetEmptyCell, Day: 2, Minutes: 545, X: 100, Y: 436})
	if c.State() != StateCreating {
		t.Fatalf("state = %v, want StateCreating", c.State())
	}

	// The preview starts at one snapped step immediately.
	preview, ok := c.CreatePreview()
	if !ok {
		t.Fatal("no create preview while creating")
	}
	if preview.Day != 2 || preview.StartMinutes != 540 || preview.EndMinutes != 570 {
		t.Errorf("preview = %+v, want day 2, 540-570", preview)
	}

	// Dragging down extends the block.
	c.Handle(PointerMove{Day: 2, Minutes: 650, X: 100, Y: 520})
	preview, _ = c.CreatePreview()
	if preview.EndMinutes != 690 {
		t.Errorf("preview end = %d, want 690", preview.EndMinutes)
	}

	req, ok := c.Handle(PointerUp{})
	if !ok {
		t.Fatal("release did not emit a request")
	}
	create, ok := req.(CreateAppointment)
	if !ok {
		t.Fatalf("request = %T, want CreateAppointment", req)
	}
	if create.Day != 2 || create.StartMinutes != 540 || create.DurationMinutes != 150 {
		t.Errorf("request = %+v, want day 2, start 540, duration 150", create)
	}
	if c.State() != StateIdle {
		t.Errorf("state after release = %v, want StateIdle", c.State())
	}
}

func TestCreateWithoutDragKeepsMinimum(t *testing.T) {
	c := newTestController()

	c.Handle(PointerDown{Target: TargetEmptyCell, Day: 1, Minutes: 600})
	req, ok := c.Handle(PointerUp{})
	if !ok {
		t.Fatal("release did not emit a request")
	}
	create := req.(CreateAppointment)
	if create.DurationMinutes != 30 {
		t.Errorf("duration = %d, want the 30-minute minimum", create.DurationMinutes)
	}
}

func TestCreateDragAboveStartClampsToMinimum(t *testing.T) {
	c := newTestController()

	c.Handle(PointerDown{Target: TargetEmptyCell, Day: 1, Minutes: 600})
	c.Handle(PointerMove{Day: 1, Minutes: 400})

	preview, _ := c.CreatePreview()
	if preview.StartMinutes != 600 || preview.EndMinutes != 630 {
		t.Errorf("preview = %d-%d, want 600-630", preview.StartMinutes, preview.EndMinutes)
	}
}

func TestCreateOnPastCellIgnored(t *testing.T) {
	c := newTestController()

	// Monday 07:00 has already passed at the fixed clock.
	c.Handle(PointerDown{Target: TargetEmptyCell, Day: 0, Minutes: 420})
	if c.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle for a past cell", c.State())
	}
	if _, ok := c.Handle(PointerUp{}); ok {
		t.Error("release emitted a request without a session")
	}
}

func TestCreateNearMidnightClampsStart(t *testing.T) {
	c := newTestController()

	c.Handle(PointerDown{Target: TargetEmptyCell, Day: 3, Minutes: 1439})
	preview, _ := c.CreatePreview()
	if preview.StartMinutes != 1410 || preview.EndMinutes != 1440 {
		t.Errorf("preview = %d-%d, want 1410-1440", preview.StartMinutes, preview.EndMinutes)
	}
}

func TestClickSelectsWithoutMoving(t *testing.T) {
	c := newTestController()

	c.Handle(PointerDown{Target: TargetAppointmentBody, Day: 2, Minutes: 550, X: 100, Y: 440, Appointment: apptRef("a1", 2, 540, 600)})
	if c.State() != StatePendingMove {
		t.Fatalf("state = %v, want StatePendingMove", c.State())
	}

	// Wobble below the threshold must not become a drag.
	c.Handle(PointerMove{Day: 2, Minutes: 550, X: 103, Y: 442})
	if c.State() != StatePendingMove {
		t.Fatalf("state = %v, want StatePendingMove after sub-threshold wobble", c.State())
	}
	if _, ok := c.MovePreview(); ok {
		t.Error("move preview visible below the drag threshold")
	}

	req, ok := c.Handle(PointerUp{})
	if !ok {
		t.Fatal("release did not emit a request")
	}
	sel, ok := req.(SelectAppointment)
	if !ok {
		t.Fatalf("request = %T, want SelectAppointment", req)
	}
	if sel.ID != "a1" {
		t.Errorf("selected %q, want a1", sel.ID)
	}
}

func TestDragMovesAppointment(t *testing.T) {
	c := newTestController()

	// Grab the block at 09:10, ten minutes below its top edge.
	c.Handle(PointerDown{Target: TargetAppointmentBody, Day: 2, Minutes: 550, X: 100, Y: 440, Appointment: apptRef("a1", 2, 540, 600)})
	c.Handle(PointerMove{Day: 3, Minutes: 730, X: 220, Y: 584})

	if c.State() != StateMoving {
		t.Fatalf("state = %v, want StateMoving", c.State())
	}
	preview, ok := c.MovePreview()
	if !ok {
		t.Fatal("no move preview while moving")
	}
	// Pointer at 12:10 minus the 10-minute grab offset snaps to 12:00,
	// and the 60-minute duration is preserved.
	if preview.Day != 3 || preview.StartMinutes != 720 || preview.EndMinutes != 780 {
		t.Errorf("preview = %+v, want day 3, 720-780", preview)
	}

	req, ok := c.Handle(PointerUp{})
	if !ok {
		t.Fatal("release did not emit a request")
	}
	move := req.(MoveAppointment)
	if move.ID != "a1" || move.NewDay != 3 || move.NewStartMinutes != 720 {
		t.Errorf("request = %+v, want a1 to day 3 at 720", move)
	}
}

func TestMoveClampsDayAndTime(t *testing.T) {
	c := newTestController()

	c.Handle(PointerDown{Target: TargetAppointmentBody, Day: 6, Minutes: 550, X: 100, Y: 440, Appointment: apptRef("a1", 6, 540, 600)})
	c.Handle(PointerMove{Day: 9, Minutes: 1439, X: 500, Y: 1150})

	preview, _ := c.MovePreview()
	if preview.Day != 6 {
		t.Errorf("day = %d, want clamp to 6", preview.Day)
	}
	if preview.EndMinutes > 1440 {
		t.Errorf("end = %d, block dragged past midnight", preview.EndMinutes)
	}
	if preview.EndMinutes-preview.StartMinutes != 60 {
		t.Errorf("duration changed to %d during move", preview.EndMinutes-preview.StartMinutes)
	}
}

func TestMovePastAppointmentIgnored(t *testing.T) {
	c := newTestController()

	ref := apptRef("old", 0, 360, 420)
	ref.Past = true
	c.Handle(PointerDown{Target: TargetAppointmentBody, Day: 0, Minutes: 370, Appointment: ref})
	if c.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle for a past appointment", c.State())
	}
}

func TestResizeGesture(t *testing.T) {
	c := newTestController()

	c.Handle(PointerDown{Target: TargetResizeHandle, Day: 2, Minutes: 595, Appointment: apptRef("a1", 2, 540, 600)})
	if c.State() != StateResizing {
		t.Fatalf("state = %v, want StateResizing", c.State())
	}

	c.Handle(PointerMove{Day: 2, Minutes: 700})
	preview, ok := c.ResizePreview()
	if !ok {
		t.Fatal("no resize preview while resizing")
	}
	if preview.StartMinutes != 540 || preview.EndMinutes != 690 {
		t.Errorf("preview = %d-%d, want 540-690", preview.StartMinutes, preview.EndMinutes)
	}

	req, ok := c.Handle(PointerUp{})
	if !ok {
		t.Fatal("release did not emit a request")
	}
	resize := req.(ResizeAppointment)
	if resize.ID != "a1" || resize.NewDurationMinutes != 150 {
		t.Errorf("request = %+v, want a1 resized to 150", resize)
	}
}

func TestResizeBelowMinimumClamps(t *testing.T) {
	c := newTestController()

	c.Handle(PointerDown{Target: TargetResizeHandle, Day: 2, Minutes: 595, Appointment: apptRef("a1", 2, 540, 600)})

	// Dragging far above the start clamps continuously, not just at release.
	c.Handle(PointerMove{Day: 2, Minutes: 400})
	preview, _ := c.ResizePreview()
	if preview.EndMinutes != 570 {
		t.Errorf("preview end = %d, want the 570 minimum", preview.EndMinutes)
	}

	req, _ := c.Handle(PointerUp{})
	if resize := req.(ResizeAppointment); resize.NewDurationMinutes != 30 {
		t.Errorf("duration = %d, want 30", resize.NewDurationMinutes)
	}
}

func TestCancelAbandonsSession(t *testing.T) {
	gestures := []struct {
		name string
		down PointerDown
	}{
		{name: "create", down: PointerDown{Target: TargetEmptyCell, Day: 2, Minutes: 600}},
		{name: "move", down: PointerDown{Target: TargetAppointmentBody, Day: 2, Minutes: 550, Appointment: apptRef("a1", 2, 540, 600)}},
		{name: "resize", down: PointerDown{Target: TargetResizeHandle, Day: 2, Minutes: 595, Appointment: apptRef("a1", 2, 540, 600)}},
	}

	for _, tt := range gestures {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			c.Handle(tt.down)

			if req, ok := c.Handle(Cancel{}); ok {
				t.Fatalf("cancel emitted %+v", req)
			}
			if c.State() != StateIdle {
				t.Fatalf("state = %v, want StateIdle after cancel", c.State())
			}
			// The following release must be inert.
			if req, ok := c.Handle(PointerUp{}); ok {
				t.Errorf("release after cancel emitted %+v", req)
			}
		})
	}
}

func TestSecondPointerDownIgnoredMidSession(t *testing.T) {
	c := newTestController()

	c.Handle(PointerDown{Target: TargetEmptyCell, Day: 2, Minutes: 600})
	c.Handle(PointerDown{Target: TargetAppointmentBody, Day: 3, Minutes: 550, Appointment: apptRef("a1", 3, 540, 600)})

	if c.State() != StateCreating {
		t.Errorf("state = %v, want StateCreating preserved", c.State())
	}
}

func TestBodyDownWithoutRefIgnored(t *testing.T) {
	c := newTestController()
	c.Handle(PointerDown{Target: TargetAppointmentBody, Day: 2, Minutes: 550})
	if c.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle", c.State())
	}
}
