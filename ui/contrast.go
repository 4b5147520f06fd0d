package ui

import "log/slog"

// Panel is the part of the display hardware the controller switches directly.
type Panel interface {
	SetPowerSave(on bool) error
	SetContrast(level uint8) error
}

// Default contrast levels.
const (
	DefaultLowContrast  uint8 = 0
	DefaultHighContrast uint8 = 127
)

// Power tracks the physical panel. Every call is a no-op until the panel has
// been marked ready.
type Power struct {
	panel Panel
	log   *slog.Logger
	ready bool
	on    bool
}

// MarkReady allows calls to reach the panel.
func (p *Power) MarkReady() { p.ready = true }

func (p *Power) Ready() bool { return p.ready }
func (p *Power) On() bool    { return p.on }

// Enable leaves power save.
func (p *Power) Enable() {
	if !p.ready {
		return
	}
	if err := p.panel.SetPowerSave(false); err != nil {
		p.log.Warn("panel power on failed", "err", err)
		return
	}
	p.on = true
}

// Disable enters power save.
func (p *Power) Disable() {
	if !p.ready {
		return
	}
	if err := p.panel.SetPowerSave(true); err != nil {
		p.log.Warn("panel power off failed", "err", err)
		return
	}
	p.on = false
}

func (p *Power) setContrast(level uint8) {
	if !p.ready {
		return
	}
	if err := p.panel.SetContrast(level); err != nil {
		p.log.Warn("panel contrast failed", "level", level, "err", err)
	}
}

// Contrast switches between the idle and highlighted levels.
type Contrast struct {
	power       *Power
	log         *slog.Logger
	low         uint8
	high        uint8
	highlighted bool
}

func (c *Contrast) Highlighted() bool { return c.highlighted }

// Levels returns the idle and highlighted levels.
func (c *Contrast) Levels() (low, high uint8) { return c.low, c.high }

// SetLevels stores new levels, lowering low to high if it exceeds it, and
// pushes the level currently in use.
func (c *Contrast) SetLevels(low, high uint8) {
	if low > high {
		low = high
	}
	c.low, c.high = low, high
	if c.highlighted {
		c.power.setContrast(c.high)
	} else {
		c.power.setContrast(c.low)
	}
}

// Highlight raises the panel to the high level.
func (c *Contrast) Highlight() {
	if c.highlighted {
		return
	}
	c.highlighted = true
	c.power.setContrast(c.high)
	c.log.Debug("contrast highlighted", "level", c.high)
}

// Idle drops the panel to the low level.
func (c *Contrast) Idle() {
	c.highlighted = false
	c.power.setContrast(c.low)
	c.log.Debug("contrast idle", "level", c.low)
}

// Decay drops to idle once age reaches HighlightTimeout. It reports whether
// the level changed.
func (c *Contrast) Decay(age Millis) bool {
	if !c.highlighted || age < HighlightTimeout {
		return false
	}
	c.Idle()
	return true
}
