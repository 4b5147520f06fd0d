//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal preview.
type TerminalConfig struct {
	Host HostConfig
	// Frame is the loop and redraw interval.
	Frame time.Duration
}

// RunTerminal shows the panel in the terminal with half-block characters,
// two pixel rows per cell. a/left press the menu button, b/right/enter the
// action button, q or esc quits.
func RunTerminal(ctx context.Context, newApp func(HAL) func() error, cfg TerminalConfig) error {
	if cfg.Frame <= 0 {
		cfg.Frame = 30 * time.Millisecond
	}
	if cfg.Host.Log == nil {
		cfg.Host.Log = io.Discard
	}
	cfg.Host.Stepped = false

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer s.Fini()
	s.Clear()
	s.HideCursor()

	h := newHost(cfg.Host)
	step := newApp(h)

	w, ht := h.panel.Size()
	gray := image.NewGray(image.Rect(0, 0, int(w), int(ht)))

	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	t := time.NewTicker(cfg.Frame)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if k, ok := ev.(*tcell.EventKey); ok {
				if quit := terminalKey(h.soft, k); quit {
					return nil
				}
			}
			continue
		case <-t.C:
		}
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		h.panel.Preview(gray)
		drawHalfBlocks(s, gray)
		s.Show()
	}
}

func terminalKey(b Presser, k *tcell.EventKey) (quit bool) {
	switch k.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		b.Press(0)
	case tcell.KeyRight, tcell.KeyEnter:
		b.Press(1)
	case tcell.KeyRune:
		switch k.Rune() {
		case 'q':
			return true
		case 'a', '0':
			b.Press(0)
		case 'b', '1':
			b.Press(1)
		}
	}
	return false
}

func drawHalfBlocks(s tcell.Screen, img *image.Gray) {
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x++ {
			top := img.GrayAt(x, y).Y
			bottom := uint8(0)
			if y+1 < r.Max.Y {
				bottom = img.GrayAt(x, y+1).Y
			}
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top), int32(top), int32(top))).
				Background(tcell.NewRGBColor(int32(bottom), int32(bottom), int32(bottom)))
			s.SetContent(x-r.Min.X, (y-r.Min.Y)/2, '▀', nil, st)
		}
	}
}
