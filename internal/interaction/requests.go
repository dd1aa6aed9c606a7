package interaction

// Request is a domain operation emitted by a completed gesture. The
// controller emits exactly one request per completed gesture and never
// waits for the outcome; persistence happens outside this package.
type Request interface{ isRequest() }

// CreateAppointment is emitted by a completed create gesture.
type CreateAppointment struct {
	Day             int
	StartMinutes    int
	DurationMinutes int
}

// MoveAppointment is emitted by a completed move gesture. The original
// duration is preserved.
type MoveAppointment struct {
	ID              string
	NewDay          int
	NewStartMinutes int
}

// ResizeAppointment is emitted by a completed resize gesture.
type ResizeAppointment struct {
	ID                 string
	NewDurationMinutes int
}

// SelectAppointment is emitted when a pointer-down on an appointment is
// released without crossing the drag threshold: a click, not a drag.
type SelectAppointment struct {
	ID string
}

func (CreateAppointment) isRequest() {}
func (MoveAppointment) isRequest()   {}
func (ResizeAppointment) isRequest() {}
func (SelectAppointment) isRequest() {}
