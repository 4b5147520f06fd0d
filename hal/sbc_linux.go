//go:build linux && !tinygo

package hal

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

type sbcHAL struct {
	logger  *hostLogger
	panel   *periphPanel
	clock   *hostClock
	flash   Flash
	buttons AnyButtons
	held    *HeldButtons
	bus     i2c.BusCloser
}

func (h *sbcHAL) Logger() Logger   { return h.logger }
func (h *sbcHAL) Panel() Panel     { return h.panel }
func (h *sbcHAL) Buttons() Buttons { return h.buttons }
func (h *sbcHAL) Clock() Clock     { return h.clock }
func (h *sbcHAL) Flash() Flash     { return h.flash }

// RunSBC drives a real SSD1306 until ctx is done.
func RunSBC(ctx context.Context, newApp func(HAL) func() error, cfg SBCConfig) error {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultSBCConfig().Interval
	}
	h, err := newSBC(cfg)
	if err != nil {
		return err
	}
	defer h.bus.Close()

	if cfg.InputDevice != "" || cfg.InputName != "" {
		go func() {
			err := watchEvdev(ctx, cfg.InputDevice, cfg.InputName, defaultEvdevKeys, h.held, h.logger)
			if err != nil && ctx.Err() == nil {
				h.logger.WriteLineString(fmt.Sprintf("hal: evdev: %v", err))
			}
		}()
	}

	step := newApp(h)
	t := time.NewTicker(cfg.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = h.panel.SetPowerSave(true)
			return ctx.Err()
		case <-t.C:
		}
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
	}
}

func newSBC(cfg SBCConfig) (*sbcHAL, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c %q: %w", cfg.Bus, err)
	}
	panel, err := newPeriphPanel(bus)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}

	logger := &hostLogger{w: stdoutOr(cfg.Host.Log)}
	flash, err := OpenFileFlash(cfg.Host.FlashPath)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}

	clock := newHostClock(cfg.Host.ClockOffset, false)
	h := &sbcHAL{
		logger: logger,
		panel:  panel,
		clock:  clock,
		flash:  flash,
		held:   NewHeldButtons(),
		bus:    bus,
	}
	h.buttons = AnyButtons{NewSoftButtons(SoftHold, clock.Now), h.held}

	if cfg.MenuPin != "" && cfg.ActionPin != "" {
		var pins []ButtonPin
		for _, name := range []string{cfg.MenuPin, cfg.ActionPin} {
			p := gpioreg.ByName(name)
			if p == nil {
				_ = bus.Close()
				return nil, fmt.Errorf("gpio %q: %w", name, ErrNotImplemented)
			}
			pins = append(pins, &periphPin{p: p})
		}
		btns, err := NewPinButtons(pins, true, logger)
		if err != nil {
			_ = bus.Close()
			return nil, err
		}
		h.buttons = append(h.buttons, btns)
	}
	return h, nil
}

// periphPanel renders into a page-ordered 1bpp image and sends it whole.
type periphPanel struct {
	mu       sync.Mutex
	dev      *ssd1306.Dev
	img      *image1bit.VerticalLSB
	contrast uint8
	halted   bool
}

// newPeriphPanel talks to the panel at the driver's fixed address 0x3C.
func newPeriphPanel(bus i2c.Bus) (*periphPanel, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: PanelWidth, H: PanelHeight})
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	return &periphPanel{
		dev:      dev,
		img:      image1bit.NewVerticalLSB(dev.Bounds()),
		contrast: 0x7F,
	}, nil
}

func (p *periphPanel) Size() (x, y int16) {
	b := p.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (p *periphPanel) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}).In(p.img.Bounds()) {
		return
	}
	p.img.SetBit(int(x), int(y), image1bit.Bit(lit(c)))
}

func (p *periphPanel) ClearBuffer() {
	for i := range p.img.Pix {
		p.img.Pix[i] = 0
	}
}

func (p *periphPanel) Display() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.halted {
		return nil
	}
	if err := p.dev.Draw(p.dev.Bounds(), p.img, image.Point{}); err != nil {
		return fmt.Errorf("ssd1306 draw: %w", err)
	}
	return nil
}

func (p *periphPanel) Preview(dst *image.Gray) {
	p.mu.Lock()
	defer p.mu.Unlock()
	on := contrastLevel(p.contrast)
	if p.halted {
		on = 0
	}
	r := dst.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := uint8(0)
			if p.img.BitAt(x-r.Min.X, y-r.Min.Y) {
				v = on
			}
			dst.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

// SetPowerSave halts the panel. Any later command wakes it, so leaving power
// save re-sends the contrast.
func (p *periphPanel) SetPowerSave(on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if on {
		p.halted = true
		return p.dev.Halt()
	}
	p.halted = false
	return p.dev.SetContrast(p.contrast)
}

func (p *periphPanel) SetContrast(level uint8) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.contrast = level
	if p.halted {
		return nil
	}
	return p.dev.SetContrast(level)
}

// periphPin adapts a periph GPIO line.
type periphPin struct {
	p gpio.PinIO
}

func (p *periphPin) Name() string { return p.p.Name() }

func (p *periphPin) Input(pull Pull) error {
	bias := gpio.Float
	switch pull {
	case PullUp:
		bias = gpio.PullUp
	case PullDown:
		bias = gpio.PullDown
	}
	return p.p.In(bias, gpio.NoEdge)
}

func (p *periphPin) Level() (bool, error) { return p.p.Read() == gpio.High, nil }
