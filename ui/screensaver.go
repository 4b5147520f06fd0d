package ui

import "image"

// Bouncing clock geometry. The frame counter walks the panel in columns of
// clockLanes rows, alternating direction on odd columns.
const (
	ClockFrameMax  uint8 = 202
	clockLanes     uint8 = 29
	clockBaselineY int16 = 19
)

// SaverState is the animation state handed to the renderer.
type SaverState struct {
	// Frame is the CLOCK counter.
	Frame uint8
	// Forward is the CLOCK counter direction.
	Forward bool
	// Origin is where CLOCK draws the time.
	Origin image.Point
	// Star is the NIGHTSKY point to plot.
	Star image.Point
	// Fresh is set on the first draw after entering the screensaver.
	Fresh bool
}

// Screensaver holds the idle animation for the configured variant.
type Screensaver struct {
	variant ScreensaverVariant
	active  bool
	frame   uint8
	forward bool
	rng     uint32
	star    image.Point
}

// NewScreensaver returns an inactive engine for v. seed drives NIGHTSKY.
func NewScreensaver(v ScreensaverVariant, seed uint32) *Screensaver {
	if seed == 0 {
		seed = 0x6d2b79f5
	}
	return &Screensaver{variant: v, forward: true, rng: seed}
}

func (s *Screensaver) Variant() ScreensaverVariant { return s.variant }
func (s *Screensaver) Active() bool                { return s.active }

// SetVariant changes the variant used by the next activation.
func (s *Screensaver) SetVariant(v ScreensaverVariant) {
	if v < saverCount {
		s.variant = v
	}
}

func (s *Screensaver) enter() { s.active = true }
func (s *Screensaver) exit()  { s.active = false }

// ClockOrigin maps a CLOCK frame to the point the time is drawn at.
func ClockOrigin(frame uint8) image.Point {
	y := frame % clockLanes
	x := frame / clockLanes
	if x%2 == 1 {
		y = clockLanes - 1 - y
	}
	return image.Pt(int(x), int(y)+int(clockBaselineY))
}

func (s *Screensaver) resetClock() {
	s.frame = 0
	s.forward = true
}

// stepClock turns around at either bound, then moves the counter one step.
func (s *Screensaver) stepClock() {
	switch s.frame {
	case 0:
		s.forward = true
	case ClockFrameMax:
		s.forward = false
	}
	if s.forward {
		s.frame++
	} else {
		s.frame--
	}
}

func (s *Screensaver) nextStar(w, h int16) image.Point {
	if w <= 0 || h <= 0 {
		return image.Point{}
	}
	r := s.random()
	s.star = image.Pt(int(r%uint32(w)), int((r>>6)%uint32(h)))
	return s.star
}

func (s *Screensaver) state(fresh bool) SaverState {
	return SaverState{
		Frame:   s.frame,
		Forward: s.forward,
		Origin:  ClockOrigin(s.frame),
		Star:    s.star,
		Fresh:   fresh,
	}
}

func (s *Screensaver) random() uint32 {
	x := s.rng
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.rng = x
	return x
}
