// Package timegrid maps between wall-clock minutes and the pixel geometry
// of a vertical day grid, with snapping and clamping. All operations are
// pure; out-of-range inputs are clamped, never rejected.
package timegrid

const (
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// DefaultStepMinutes is the grid resolution.
	DefaultStepMinutes = 30
	// DefaultPixelsPerHour is the vertical height of one hour.
	DefaultPixelsPerHour = 48
	// DefaultLabelWidth is the width of the time-label gutter.
	DefaultLabelWidth = 56
)

// Rect describes the grid's bounding box in pixel space.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Grid holds the geometry constants for one deployment. The zero value is
// not usable; construct with New or NewGrid.
type Grid struct {
	PixelsPerHour float64
	StepMinutes   int
	LabelWidth    float64
}

// New returns a Grid with the default geometry.
func New() Grid {
	return NewGrid(DefaultPixelsPerHour, DefaultStepMinutes, DefaultLabelWidth)
}

// NewGrid returns a Grid with explicit geometry. Non-positive values fall
// back to the defaults.
func NewGrid(pixelsPerHour float64, stepMinutes int, labelWidth float64) Grid {
	if pixelsPerHour <= 0 {
		pixelsPerHour = DefaultPixelsPerHour
	}
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}
	if labelWidth < 0 {
		labelWidth = DefaultLabelWidth
	}
	return Grid{PixelsPerHour: pixelsPerHour, StepMinutes: stepMinutes, LabelWidth: labelWidth}
}

// MinutesToOffset converts minutes since midnight to a vertical pixel
// offset from the top of the day column.
func (g Grid) MinutesToOffset(minutes int) float64 {
	return float64(minutes) / 60 * g.PixelsPerHour
}

// OffsetToMinutes converts a point inside rect to a day column index and
// minutes since midnight. The horizontal span after the label gutter is
// divided uniformly into columns. Both results are clamped into range.
func (g Grid) OffsetToMinutes(x, y float64, rect Rect, columns int) (dayIndex, minutes int) {
	if columns < 1 {
		columns = 1
	}

	gridWidth := rect.Width - g.LabelWidth
	if gridWidth <= 0 {
		gridWidth = 1
	}
	colWidth := gridWidth / float64(columns)

	dayIndex = int((x - rect.X - g.LabelWidth) / colWidth)
	dayIndex = Clamp(dayIndex, 0, columns-1)

	minutes = int((y - rect.Y) / g.PixelsPerHour * 60)
	minutes = Clamp(minutes, 0, MinutesPerDay-1)
	return dayIndex, minutes
}

// Snap rounds minutes to the nearest grid step boundary.
func (g Grid) Snap(minutes int) int {
	step := g.StepMinutes
	if minutes < 0 {
		return 0
	}
	return (minutes + step/2) / step * step
}

// MaxStart returns the latest start that still fits one grid step before
// midnight.
func (g Grid) MaxStart() int {
	return MinutesPerDay - g.StepMinutes
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
