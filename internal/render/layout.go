package render

import "fmt"

// Fixed canvas geometry. The 800x600 dimensions are part of the external
// contract: consumers embed the image by URL and rely on them.
const (
	canvasWidth  = 800
	canvasHeight = 600

	headerHeight = 25  // day-name band at the top
	gutterWidth  = 50  // hour-label gutter on the left
	dayWidth     = 150 // five equal weekday columns
	gridHeight   = canvasHeight - headerHeight

	blockWidth = 144 // filled section block
	labelWidth = 140 // text budget inside a block
)

// dayNames indexes weekday 0..4.
var dayNames = [5]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Layout converts clock minutes and weekday indices into pixel
// coordinates for a given time window. Pure and cheap; one per render.
type Layout struct {
	earliestMinute  int
	latestMinute    int
	PixelsPerMinute float64
}

// NewLayout derives the pixel scale from the view's time window.
func NewLayout(view *View) Layout {
	return Layout{
		earliestMinute:  view.EarliestMinute,
		latestMinute:    view.LatestMinute,
		PixelsPerMinute: float64(gridHeight) / float64(view.LatestMinute-view.EarliestMinute),
	}
}

// ColumnX returns the left boundary of weekday column d (0 = Monday).
func ColumnX(d int) int {
	return gutterWidth + d*dayWidth
}

// GridY maps a clock minute onto the vertical grid band.
func (l Layout) GridY(minute int) float64 {
	return float64(headerHeight) + l.PixelsPerMinute*float64(minute-l.earliestMinute)
}

// HourRange returns the integer hours whose gridlines fall strictly
// inside the window: [ceil(earliest/60), ceil(latest/60)). For the
// degenerate sentinel window the range is empty.
func (l Layout) HourRange() (from, to int) {
	return ceilDiv(l.earliestMinute, 60), ceilDiv(l.latestMinute, 60)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// hourLabel formats a gridline hour in 12-hour clock notation. The two
// comparisons intentionally differ (>12 for the subtraction, >11 for the
// suffix), reproducing the long-standing label behaviour: hour 12 shows
// as "12PM" and midnight as "0AM".
func hourLabel(h int) string {
	display := h
	if h > 12 {
		display = h - 12
	}
	suffix := "AM"
	if h > 11 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d%s", display, suffix)
}
