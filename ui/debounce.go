package ui

// Button identifies one of the two physical buttons.
type Button uint8

const (
	// ButtonMenu opens the menu, or steps through it once open.
	ButtonMenu Button = 0
	// ButtonAction browses info screens, or runs the selected menu item.
	ButtonAction Button = 1
)

func (b Button) String() string {
	switch b {
	case ButtonMenu:
		return "menu"
	case ButtonAction:
		return "action"
	}
	return "button?"
}

// DebounceWindow is the minimum spacing between accepted edges of one button.
const DebounceWindow Millis = 350

// Edge is an accepted button press.
type Edge struct {
	Button Button
	At     Millis
}

// Debouncer accepts at most one edge per button per DebounceWindow. Accepted
// edges are stamped on the shared ActivityClock, which also holds the window
// reference for each button.
type Debouncer struct {
	clock *ActivityClock
}

// NewDebouncer returns a debouncer stamping onto clock.
func NewDebouncer(clock *ActivityClock) *Debouncer {
	return &Debouncer{clock: clock}
}

// Blocked reports whether b is still inside its window at now. Buttons
// outside the known pair are always blocked.
func (d *Debouncer) Blocked(b Button, now Millis) bool {
	if b > ButtonAction {
		return true
	}
	return now-d.clock.lastPress(b) < DebounceWindow
}

// Accept turns a raw reading into an edge. Rejected readings change nothing.
func (d *Debouncer) Accept(b Button, pressed bool, now Millis) (Edge, bool) {
	if !pressed || d.Blocked(b, now) {
		return Edge{}, false
	}
	d.clock.stampPress(b, now)
	return Edge{Button: b, At: now}, true
}
