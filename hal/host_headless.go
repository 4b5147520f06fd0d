//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig
	// Hz is the loop rate.
	Hz int
	// Ticks stops the runner after that many steps; 0 runs forever.
	Ticks uint64
	// Fast steps simulated time as fast as possible instead of waiting on a
	// ticker. It implies a stepped clock.
	Fast bool
}

// RunHeadless runs the controller without a preview.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	if cfg.Fast {
		cfg.Host.Stepped = true
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	var tickC <-chan time.Time
	if !cfg.Fast {
		t := time.NewTicker(d)
		defer t.Stop()
		tickC = t.C
	}

	var tick uint64
	for {
		if cfg.Fast {
			if err := ctx.Err(); err != nil {
				return err
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tickC:
			}
		}
		h.clock.step(d)
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return nil
		}
	}
}
