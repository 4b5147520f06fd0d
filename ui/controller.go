package ui

import (
	"io"
	"log/slog"
)

// Frame carries controller state the renderer may show.
type Frame struct {
	Now          Millis
	Wifi         WifiMode
	LowContrast  uint8
	HighContrast uint8
	Screensaver  ScreensaverVariant
	Enabled      bool
}

// Renderer draws screens into a buffer that Commit transfers to the panel.
type Renderer interface {
	Size() (w, h int16)
	Clear()
	Commit() error
	Screen(s Info, f Frame)
	MenuItem(m MenuItem, f Frame)
	Splash(step uint8, f Frame)
	Screensaver(v ScreensaverVariant, st SaverState, f Frame)
}

// Buttons reads the raw level of a button. Unknown ids read false.
type Buttons interface {
	Pressed(id int) bool
}

// Options configures a Controller.
type Options struct {
	Panel    Panel
	Renderer Renderer
	Buttons  Buttons
	Host     Host
	Status   Status
	Logger   *slog.Logger
	// Seed drives the NIGHTSKY star positions.
	Seed uint32
}

// Controller is the display state machine. All methods must be called from
// the same goroutine.
type Controller struct {
	log      *slog.Logger
	render   Renderer
	buttons  Buttons
	host     Host
	status   Status
	activity ActivityClock
	debounce *Debouncer
	power    *Power
	contrast *Contrast
	nav      *Navigator
	saver    *Screensaver
	sched    Scheduler

	enabled bool
	wifi    WifiMode
	splash  uint8
}

// New returns a disabled controller with default settings.
func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With("component", "display")
	c := &Controller{
		log:     log,
		render:  opts.Renderer,
		buttons: opts.Buttons,
		host:    opts.Host,
		status:  opts.Status,
		nav:     NewNavigator(),
		saver:   NewScreensaver(SaverClock, opts.Seed),
	}
	c.debounce = NewDebouncer(&c.activity)
	c.power = &Power{panel: opts.Panel, log: log}
	c.contrast = &Contrast{power: c.power, log: log, low: DefaultLowContrast, high: DefaultHighContrast}
	return c
}

// Setup marks the panel ready and shows the splash, or powers the panel off
// when the display is disabled.
func (c *Controller) Setup(now Millis) {
	c.power.MarkReady()
	if !c.enabled {
		c.power.Disable()
		c.log.Info("display disabled")
		return
	}
	c.WakeUp(now)
	c.power.Enable()
	c.nav.Show(Splash)
	c.draw(now)
	c.log.Info("display ready")
}

// WakeUp highlights the panel and leaves the screensaver. It reports whether
// a screensaver was exited, in which case the triggering press does nothing
// else.
func (c *Controller) WakeUp(now Millis) bool {
	c.contrast.Highlight()
	c.activity.StampWake(now)
	if !c.saver.Active() {
		return false
	}
	if c.nav.Rendered() == SaverEmpty {
		c.power.Enable()
	}
	c.saver.exit()
	c.nav.ForceRedraw()
	c.log.Info("screensaver exit")
	return true
}

// HandleButton processes a press notification for button id. It returns
// false when the press is not for this controller.
func (c *Controller) HandleButton(id int, now Millis) bool {
	if !c.enabled || id < 0 || id > int(ButtonAction) {
		return false
	}
	if c.nav.Active() == Splash {
		return true
	}
	b := Button(id)
	if c.debounce.Blocked(b, now) {
		return true
	}
	if _, ok := c.debounce.Accept(b, c.buttons.Pressed(id), now); !ok {
		return true
	}
	if c.WakeUp(now) {
		return true
	}
	switch b {
	case ButtonAction:
		if c.nav.InMenu() {
			c.Execute()
		} else {
			c.nav.Advance()
		}
	case ButtonMenu:
		if c.nav.InMenu() {
			c.nav.Advance()
		} else {
			c.nav.EnterMenu()
			c.log.Info("menu open")
		}
	}
	return true
}

// Tick advances every timer and redraws when due.
func (c *Controller) Tick(now Millis) {
	if !c.enabled || c.status.Updating() {
		return
	}
	if c.saver.Active() {
		if c.power.Ready() && c.sched.Due(c.nav, c.saver.Variant(), now) {
			c.drawScreensaver(now)
		}
		return
	}
	c.pollStatus()

	age := c.activity.Age(now)
	if c.contrast.Decay(age) {
		c.log.Info("highlight timeout")
	}
	if c.nav.InMenu() && age >= MenuExitTimeout {
		c.closeMenu("timeout")
	}
	if age >= ScreensaverTimeout {
		c.enterScreensaver("timeout")
		return
	}
	if c.power.Ready() && c.sched.Due(c.nav, c.nav.Active(), now) {
		c.draw(now)
	}
}

func (c *Controller) pollStatus() {
	mode := c.status.WifiMode()
	switch c.nav.Active() {
	case Splash:
		if mode != WifiNone {
			c.nav.Show(InfoWiFi)
		}
	case InfoWiFi:
		if mode != c.wifi {
			c.nav.ForceRedraw()
		}
	case InfoLED, InfoFX:
		if c.status.StateChanged() {
			c.nav.ForceRedraw()
		}
	}
	c.wifi = mode
}

func (c *Controller) closeMenu(reason string) {
	c.nav.ExitMenu()
	c.log.Info("menu close", "reason", reason)
}

func (c *Controller) enterScreensaver(reason string) {
	c.saver.enter()
	c.log.Info("screensaver enter", "variant", c.saver.Variant().String(), "reason", reason)
}

func (c *Controller) frame(now Millis) Frame {
	low, high := c.contrast.Levels()
	return Frame{
		Now:          now,
		Wifi:         c.wifi,
		LowContrast:  low,
		HighContrast: high,
		Screensaver:  c.saver.Variant(),
		Enabled:      c.enabled,
	}
}

func (c *Controller) draw(now Millis) {
	f := c.frame(now)
	target := c.nav.Active()
	c.render.Clear()
	switch s := target.(type) {
	case Sentinel:
		c.render.Splash(c.splash, f)
		c.splash = (c.splash + 1) % 4
	case MenuItem:
		c.render.MenuItem(s, f)
	case Info:
		c.render.Screen(s, f)
	}
	c.commit(target, now)
}

func (c *Controller) drawScreensaver(now Millis) {
	v := c.saver.Variant()
	fresh := c.nav.Rendered() != v
	switch v {
	case SaverEmpty:
		if fresh {
			c.power.Disable()
			c.sched.Commit(c.nav, v, now)
		}
		return
	case SaverNightSky:
		if fresh {
			c.render.Clear()
		}
		c.saver.nextStar(c.render.Size())
		c.render.Screensaver(v, c.saver.state(fresh), c.frame(now))
		c.commit(v, now)
	case SaverClock:
		if fresh {
			c.saver.resetClock()
		}
		c.render.Clear()
		c.render.Screensaver(v, c.saver.state(fresh), c.frame(now))
		c.commit(v, now)
		c.saver.stepClock()
	}
}

func (c *Controller) commit(target Screen, now Millis) {
	if err := c.render.Commit(); err != nil {
		c.log.Warn("display commit failed", "screen", target.String(), "err", err)
	}
	c.sched.Commit(c.nav, target, now)
}

// ApplyConfig loads settings. When the panel is ready it also wakes the
// display and powers it on or off if the enabled state changed.
func (c *Controller) ApplyConfig(cfg DisplayConfig, now Millis) {
	enabled := c.enabled
	if cfg.Enabled != nil {
		enabled = *cfg.Enabled
	}
	low, high := c.contrast.Levels()
	if cfg.LowContrast != nil {
		low = clampByte(*cfg.LowContrast)
	}
	if cfg.HighContrast != nil {
		high = clampByte(*cfg.HighContrast)
	}
	if cfg.Screensaver != nil {
		if v, ok := ParseScreensaver(*cfg.Screensaver); ok {
			c.saver.SetVariant(v)
		} else {
			c.log.Warn("ignoring screensaver setting", "value", *cfg.Screensaver)
		}
	}
	changed := enabled != c.enabled
	c.enabled = enabled
	c.contrast.SetLevels(low, high)
	low, high = c.contrast.Levels()
	c.log.Info("config applied", "enabled", enabled, "loctr", low, "hictr", high,
		"screensaver", c.saver.Variant().String())

	if !c.power.Ready() {
		return
	}
	c.WakeUp(now)
	if !changed {
		return
	}
	if enabled {
		c.power.Enable()
		c.nav.ForceRedraw()
	} else {
		c.power.Disable()
	}
}

// Config returns the current settings with every field set.
func (c *Controller) Config() DisplayConfig {
	low, high := c.contrast.Levels()
	return DisplayConfig{
		Enabled:      Bool(c.enabled),
		LowContrast:  Int(int(low)),
		HighContrast: Int(int(high)),
		Screensaver:  Int(int(c.saver.Variant())),
	}
}

// State is a read-only snapshot of the controller.
type State struct {
	Enabled      bool   `json:"enabled"`
	Ready        bool   `json:"ready"`
	PanelOn      bool   `json:"panelOn"`
	Highlighted  bool   `json:"highlighted"`
	ScreenSaving bool   `json:"screenSaving"`
	Menu         bool   `json:"menu"`
	Active       string `json:"active"`
	Rendered     string `json:"rendered"`
	Screensaver  string `json:"screensaver"`
	LowContrast  uint8  `json:"loctr"`
	HighContrast uint8  `json:"hictr"`
	Wifi         string `json:"wifi"`
	IdleMillis   uint32 `json:"idleMs"`
}

// Snapshot reports the current state at now.
func (c *Controller) Snapshot(now Millis) State {
	low, high := c.contrast.Levels()
	return State{
		Enabled:      c.enabled,
		Ready:        c.power.Ready(),
		PanelOn:      c.power.On(),
		Highlighted:  c.contrast.Highlighted(),
		ScreenSaving: c.saver.Active(),
		Menu:         c.nav.InMenu(),
		Active:       c.nav.Active().String(),
		Rendered:     c.nav.Rendered().String(),
		Screensaver:  c.saver.Variant().String(),
		LowContrast:  low,
		HighContrast: high,
		Wifi:         c.wifi.String(),
		IdleMillis:   uint32(c.activity.Age(now)),
	}
}
