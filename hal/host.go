//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// HostConfig selects the simulated hardware.
type HostConfig struct {
	// FlashPath backs flash; see OpenFileFlash.
	FlashPath string
	// ClockOffset is where the millisecond counter starts.
	ClockOffset uint32
	// Stepped makes the clock advance only when the runner steps it.
	Stepped bool
	// AutoPress adds signal sources that press the buttons periodically.
	AutoPress bool
	// Log receives log lines; nil means stdout.
	Log io.Writer
}

type hostHAL struct {
	logger  *hostLogger
	panel   *hostPanel
	clock   *hostClock
	flash   Flash
	soft    *SoftButtons
	held    *HeldButtons
	buttons AnyButtons
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	logger := &hostLogger{w: stdoutOr(cfg.Log)}
	clock := newHostClock(cfg.ClockOffset, cfg.Stepped)

	var flash Flash = NewMemFlash(hostFlashDefaultSizeBytes, hostFlashEraseBlockBytes)
	if f, err := OpenFileFlash(cfg.FlashPath); err != nil {
		logger.WriteLineString(fmt.Sprintf("hal: %v, using RAM flash", err))
	} else {
		flash = f
	}

	h := &hostHAL{
		logger: logger,
		panel:  newHostPanel(PanelWidth, PanelHeight),
		clock:  clock,
		flash:  flash,
		soft:   NewSoftButtons(SoftHold, clock.Now),
		held:   NewHeldButtons(),
	}
	h.buttons = AnyButtons{h.soft, h.held}
	if cfg.AutoPress {
		// Browse every 7s and open the menu every 45s.
		auto, err := NewPinButtons([]ButtonPin{
			newPeriodicPin("AUTO0", 45*time.Second, 150*time.Millisecond, clock.Now),
			newPeriodicPin("AUTO1", 7*time.Second, 150*time.Millisecond, clock.Now),
		}, false, logger)
		if err == nil {
			h.buttons = append(h.buttons, auto)
		}
	}
	return h
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Panel() Panel     { return h.panel }
func (h *hostHAL) Buttons() Buttons { return h.buttons }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) Flash() Flash     { return h.flash }

func stdoutOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
