package ui

// Millis is a point on, or a span of, the free-running millisecond counter.
// The counter wraps at 2^32, so ages are always computed as now-then.
type Millis uint32

// Timeouts measured against the most recent activity.
const (
	HighlightTimeout   Millis = 10_000
	MenuExitTimeout    Millis = 30_000
	ScreensaverTimeout Millis = 120_000
)

// ActivityClock records when the user last interacted with the display.
type ActivityClock struct {
	lastAction Millis
	lastMenu   Millis
	lastWake   Millis
	last       Millis
}

// StampAction records an accepted press of the action button.
func (a *ActivityClock) StampAction(now Millis) {
	a.lastAction = now
	a.last = now
}

// StampMenu records an accepted press of the menu button.
func (a *ActivityClock) StampMenu(now Millis) {
	a.lastMenu = now
	a.last = now
}

// StampWake records a wake-up.
func (a *ActivityClock) StampWake(now Millis) {
	a.lastWake = now
	a.last = now
}

// MostRecent reports the newest of the three stamps. A numeric max would pick
// the wrong stamp right after the counter wraps, so the last write wins.
func (a *ActivityClock) MostRecent() Millis { return a.last }

// Age is the time elapsed since MostRecent.
func (a *ActivityClock) Age(now Millis) Millis { return now - a.last }

func (a *ActivityClock) lastPress(b Button) Millis {
	if b == ButtonAction {
		return a.lastAction
	}
	return a.lastMenu
}

func (a *ActivityClock) stampPress(b Button, now Millis) {
	if b == ButtonAction {
		a.StampAction(now)
		return
	}
	a.StampMenu(now)
}
