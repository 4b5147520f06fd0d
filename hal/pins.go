package hal

import (
	"fmt"
	"sync"
	"time"
)

// Pull selects the bias of a button input.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "pull-up"
	case PullDown:
		return "pull-down"
	}
	return "float"
}

// ButtonPin is a digital input wired to one button.
type ButtonPin interface {
	Name() string
	// Input configures the pin as an input with the given bias.
	Input(pull Pull) error
	Level() (bool, error)
}

// latchPin holds whatever level it was last driven to.
type latchPin struct {
	mu    sync.Mutex
	name  string
	pull  Pull
	level bool
}

func newLatchPin(name string) *latchPin { return &latchPin{name: name} }

func (p *latchPin) Name() string { return p.name }

func (p *latchPin) Input(pull Pull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pull = pull
	return nil
}

// Drive sets the level seen by Level. Key handlers and the evdev reader use
// it to act as the switch.
func (p *latchPin) Drive(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

func (p *latchPin) Level() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

// periodicPin reads high for the first high of every period, counted from
// its creation. It presses a button on a schedule in demo mode.
type periodicPin struct {
	name   string
	t0     time.Time
	now    func() time.Time
	period time.Duration
	high   time.Duration
}

func newPeriodicPin(name string, period, high time.Duration, now func() time.Time) *periodicPin {
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = time.Second
	}
	high = min(max(high, 0), period)
	return &periodicPin{name: name, t0: now(), now: now, period: period, high: high}
}

func (p *periodicPin) Name() string { return p.name }

func (p *periodicPin) Input(pull Pull) error {
	if pull != PullNone {
		return fmt.Errorf("pin %s: %v: %w", p.name, pull, ErrNotImplemented)
	}
	return nil
}

func (p *periodicPin) Level() (bool, error) {
	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		return false, nil
	}
	return elapsed%p.period < p.high, nil
}

// pulsePin reads high for a fixed hold time after each Pulse. It stands in
// for a button when the input source only reports key presses.
type pulsePin struct {
	mu    sync.Mutex
	name  string
	now   func() time.Time
	hold  time.Duration
	until time.Time
}

func newPulsePin(name string, hold time.Duration, now func() time.Time) *pulsePin {
	if now == nil {
		now = time.Now
	}
	return &pulsePin{name: name, now: now, hold: hold}
}

func (p *pulsePin) Name() string { return p.name }

func (p *pulsePin) Input(Pull) error { return nil }

// Pulse holds the pin high from now.
func (p *pulsePin) Pulse() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.until = p.now().Add(p.hold)
}

func (p *pulsePin) Level() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now().Before(p.until), nil
}

// PinButtons reads buttons from pins, pin i being button i.
type PinButtons struct {
	pins      []ButtonPin
	activeLow bool
	log       Logger
}

// NewPinButtons configures pins as inputs. Active-low buttons get a pull-up
// where the pin offers one.
func NewPinButtons(pins []ButtonPin, activeLow bool, log Logger) (*PinButtons, error) {
	for _, p := range pins {
		if p == nil {
			return nil, fmt.Errorf("buttons: nil pin")
		}
		pull := PullNone
		if activeLow {
			pull = PullUp
		}
		err := p.Input(pull)
		if err != nil && pull != PullNone {
			err = p.Input(PullNone)
		}
		if err != nil {
			return nil, fmt.Errorf("buttons: pin %s: %w", p.Name(), err)
		}
	}
	return &PinButtons{pins: pins, activeLow: activeLow, log: log}, nil
}

func (b *PinButtons) Pressed(id int) bool {
	if id < 0 || id >= len(b.pins) {
		return false
	}
	level, err := b.pins[id].Level()
	if err != nil {
		if b.log != nil {
			b.log.WriteLineString(fmt.Sprintf("buttons: %d: %v", id, err))
		}
		return false
	}
	return level != b.activeLow
}
