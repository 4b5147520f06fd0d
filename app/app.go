// Package app wires the display controller to a HAL, the simulated LED host
// and persisted settings, and runs one loop iteration per Step.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"oledctl/hal"
	"oledctl/internal/buildinfo"
	"oledctl/internal/ledhost"
	"oledctl/internal/logging"
	"oledctl/internal/mailbox"
	"oledctl/internal/settings"
	"oledctl/ui"
	"oledctl/ui/render"
)

// Publisher receives a snapshot after every step.
type Publisher interface {
	Publish(st ui.State, cfg ui.DisplayConfig)
}

type Config struct {
	// Display overrides the stored settings at boot.
	Display ui.DisplayConfig
	Host    ledhost.Config
	// Mailbox receives requests from other goroutines; nil allocates one.
	Mailbox   *mailbox.Mailbox
	Publisher Publisher
	// Logger defaults to a text logger on the HAL at LogLevel.
	Logger   *slog.Logger
	LogLevel slog.Level
	// Seed drives the night sky; zero derives one from the clock.
	Seed uint32
}

// App owns the controller and everything it talks to. Step must be called
// from a single goroutine.
type App struct {
	h       hal.HAL
	cfg     Config
	log     *slog.Logger
	dev     *ledhost.Device
	box     *mailbox.Mailbox
	render  *render.Renderer
	ctl     *ui.Controller
	presser hal.Presser
	boots   int
}

// New boots the controller and returns the app ready to step.
func New(h hal.HAL, cfg Config) *App {
	log := cfg.Logger
	if log == nil {
		log = logging.New(h.Logger(), logging.Options{Level: cfg.LogLevel, NoTime: true})
	}
	box := cfg.Mailbox
	if box == nil {
		box = &mailbox.Mailbox{}
	}
	a := &App{
		h:   h,
		cfg: cfg,
		log: log,
		dev: ledhost.New(cfg.Host),
		box: box,
	}
	a.presser, _ = h.Buttons().(hal.Presser)
	a.render = render.New(h.Panel(), a.dev)
	log.Info("starting", "build", buildinfo.Long())
	a.boot()
	return a
}

// Func adapts New to the runners in package hal.
func Func(cfg Config, keep func(*App)) func(hal.HAL) func() error {
	return func(h hal.HAL) func() error {
		a := New(h, cfg)
		if keep != nil {
			keep(a)
		}
		return a.Step
	}
}

func (a *App) HAL() hal.HAL               { return a.h }
func (a *App) Device() *ledhost.Device    { return a.dev }
func (a *App) Mailbox() *mailbox.Mailbox  { return a.box }
func (a *App) Controller() *ui.Controller { return a.ctl }
func (a *App) Logger() *slog.Logger       { return a.log }

// Boots counts controller starts, including restarts.
func (a *App) Boots() int { return a.boots }

func (a *App) now() ui.Millis { return ui.Millis(a.h.Clock().Millis()) }

func (a *App) boot() {
	now := a.now()
	seed := a.cfg.Seed
	if seed == 0 {
		seed = uint32(now) | 1
	}
	a.ctl = ui.New(ui.Options{
		Panel:    a.h.Panel(),
		Renderer: a.render,
		Buttons:  a.h.Buttons(),
		Host:     a.dev,
		Status:   a.dev,
		Logger:   a.log,
		Seed:     seed + uint32(a.boots),
	})

	// Fields missing from the record keep the boot defaults.
	base := ui.DisplayConfig{Enabled: ui.Bool(true)}
	stored, err := settings.Load(a.h.Flash())
	switch {
	case errors.Is(err, settings.ErrNoRecord):
	case err != nil:
		a.log.Warn("settings unreadable, using defaults", "err", err)
	default:
		base = base.Merge(stored)
	}
	a.ctl.ApplyConfig(base.Merge(a.cfg.Display), now)
	a.ctl.Setup(now)
	a.boots++
}

// Step runs one loop iteration. A panic is shown on the panel and returned
// as an error.
func (a *App) Step() (err error) {
	defer func() {
		if v := recover(); v != nil {
			showPanic(a.h, v)
			err = fmt.Errorf("app: panic: %v", v)
		}
	}()

	now := a.now()
	a.box.Drain(func(m mailbox.Message) { a.handle(m, now) })

	a.ctl.HandleButton(int(ui.ButtonMenu), now)
	a.ctl.HandleButton(int(ui.ButtonAction), now)
	a.ctl.Tick(now)

	if r := a.dev.PendingRestart(); r != ledhost.RestartNone {
		a.restart(r)
	}
	if a.cfg.Publisher != nil {
		a.cfg.Publisher.Publish(a.ctl.Snapshot(a.now()), a.ctl.Config())
	}
	return nil
}

func (a *App) handle(m mailbox.Message, now ui.Millis) {
	switch m.Kind {
	case mailbox.KindConfig:
		a.ctl.ApplyConfig(m.Config, now)
	case mailbox.KindPress:
		if a.presser == nil {
			a.log.Warn("software press unsupported", "button", m.Button)
			return
		}
		a.presser.Press(m.Button)
	case mailbox.KindSave:
		if err := settings.Save(a.h.Flash(), a.ctl.Config()); err != nil {
			a.log.Warn("settings not saved", "err", err)
			return
		}
		a.log.Info("settings saved")
	default:
		a.log.Warn("unknown request", "kind", m.Kind.String())
	}
}

func (a *App) restart(r ledhost.Restart) {
	a.log.Info("restarting", "reason", r.String())
	if r == ledhost.RestartFactoryReset {
		if err := settings.Erase(a.h.Flash()); err != nil {
			a.log.Warn("settings not erased", "err", err)
		}
	}
	a.dev.Restart()
	a.boot()
}
