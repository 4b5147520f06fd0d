package ui

// Redraw cadences.
const (
	ScreensaverCadence Millis = 1_000
	SplashCadence      Millis = 500
	ClockCadence       Millis = 1_000
	StatusCadence      Millis = 3_000
	AboutCadence       Millis = 30_000
	DefaultCadence     Millis = 10_000
)

// Cadence is the minimum interval between redraws of s.
func Cadence(s Screen) Millis {
	switch s := s.(type) {
	case ScreensaverVariant:
		return ScreensaverCadence
	case Sentinel:
		if s == Splash {
			return SplashCadence
		}
	case Info:
		switch s {
		case InfoTimeAndDate:
			return ClockCadence
		case InfoLED, InfoFX:
			return StatusCadence
		case InfoAbout:
			return AboutCadence
		}
	}
	return DefaultCadence
}

// Scheduler decides whether a redraw is due.
type Scheduler struct {
	lastRender Millis
}

// Due reports whether target must be drawn at now. target is the active
// screen, or the screensaver variant while saving.
func (s *Scheduler) Due(nav *Navigator, target Screen, now Millis) bool {
	if nav.redraw || nav.rendered != target {
		return true
	}
	return now-s.lastRender >= Cadence(target)
}

// Commit records that target was drawn at now.
func (s *Scheduler) Commit(nav *Navigator, target Screen, now Millis) {
	nav.commit(target)
	s.lastRender = now
}

// LastRender is when the last redraw committed.
func (s *Scheduler) LastRender() Millis { return s.lastRender }
