package hal

import (
	"fmt"
	"time"
)

// Presser is implemented by buttons that can be pressed from software.
type Presser interface {
	Press(id int)
}

// Holder is implemented by buttons driven by key up/down events.
type Holder interface {
	Hold(id int, down bool)
}

// SoftHold is how long a software press keeps a button down. It is shorter
// than the controller's debounce window so one press yields one edge.
const SoftHold = 120 * time.Millisecond

// SoftButtons are pressed by software.
type SoftButtons struct {
	pins [2]*pulsePin
}

// NewSoftButtons returns two pulse buttons timed by now.
func NewSoftButtons(hold time.Duration, now func() time.Time) *SoftButtons {
	b := &SoftButtons{}
	for i := range b.pins {
		b.pins[i] = newPulsePin(fmt.Sprintf("SOFT%d", i), hold, now)
	}
	return b
}

func (b *SoftButtons) Press(id int) {
	if id < 0 || id >= len(b.pins) {
		return
	}
	b.pins[id].Pulse()
}

func (b *SoftButtons) Pressed(id int) bool {
	if id < 0 || id >= len(b.pins) {
		return false
	}
	level, _ := b.pins[id].Level()
	return level
}

// HeldButtons follow key down and up events.
type HeldButtons struct {
	pins [2]*latchPin
}

func NewHeldButtons() *HeldButtons {
	b := &HeldButtons{}
	for i := range b.pins {
		b.pins[i] = newLatchPin(fmt.Sprintf("KEY%d", i))
	}
	return b
}

func (b *HeldButtons) Hold(id int, down bool) {
	if id < 0 || id >= len(b.pins) {
		return
	}
	b.pins[id].Drive(down)
}

func (b *HeldButtons) Pressed(id int) bool {
	if id < 0 || id >= len(b.pins) {
		return false
	}
	level, _ := b.pins[id].Level()
	return level
}

// AnyButtons reads a button as pressed when any source has it down.
type AnyButtons []Buttons

func (a AnyButtons) Pressed(id int) bool {
	for _, b := range a {
		if b != nil && b.Pressed(id) {
			return true
		}
	}
	return false
}

// Press forwards to every source that supports it.
func (a AnyButtons) Press(id int) {
	for _, b := range a {
		if p, ok := b.(Presser); ok {
			p.Press(id)
		}
	}
}

// Hold forwards to every source that supports it.
func (a AnyButtons) Hold(id int, down bool) {
	for _, b := range a {
		if h, ok := b.(Holder); ok {
			h.Hold(id, down)
		}
	}
}
