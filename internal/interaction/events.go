package interaction

// Target identifies what a pointer-down landed on. Targets are mutually
// exclusive, which is what keeps sessions from nesting.
type Target int

const (
	TargetEmptyCell Target = iota
	TargetAppointmentBody
	TargetResizeHandle
)

// AppointmentRef carries the grid position of the appointment under the
// pointer. Past reports whether the appointment's window has already
// ended; past appointments never start a session.
type AppointmentRef struct {
	ID           string
	Day          int
	StartMinutes int
	EndMinutes   int
	Past         bool
}

// Event is a raw pointer event fed into the controller.
type Event interface{ isEvent() }

// PointerDown begins a gesture. Day and Minutes are the grid cell under
// the pointer; X and Y are raw pixel coordinates used for the drag
// threshold. Appointment must be set for body and handle targets.
type PointerDown struct {
	Target      Target
	Day         int
	Minutes     int
	X, Y        float64
	Appointment *AppointmentRef
}

// PointerMove updates the live session while a gesture is in progress.
type PointerMove struct {
	Day     int
	Minutes int
	X, Y    float64
}

// PointerUp ends the gesture and commits or discards the session.
type PointerUp struct{}

// Cancel abandons the active session without emitting a request. Escape
// and pointer-capture loss both map here.
type Cancel struct{}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Cancel) isEvent()      {}
