//go:build !tinygo

package hal

import (
	"image"
	"image/color"
	"sync"
)

// hostPanel emulates the SSD1306 in memory. Display copies the back buffer
// to the front buffer that previews read.
type hostPanel struct {
	mu        sync.Mutex
	back      monoBuffer
	front     monoBuffer
	powerSave bool
	contrast  uint8
	frames    uint64
}

func newHostPanel(w, h int) *hostPanel {
	return &hostPanel{
		back:     newMonoBuffer(w, h),
		front:    newMonoBuffer(w, h),
		contrast: 0x7F,
	}
}

func (p *hostPanel) Size() (x, y int16) { return int16(p.back.w), int16(p.back.h) }

// SetPixel is only called from the render loop, so the back buffer is
// not locked.
func (p *hostPanel) SetPixel(x, y int16, c color.RGBA) {
	p.back.set(int(x), int(y), lit(c))
}

func (p *hostPanel) ClearBuffer() { p.back.clear() }

func (p *hostPanel) Display() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(p.front.pix, p.back.pix)
	p.frames++
	return nil
}

func (p *hostPanel) SetPowerSave(on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.powerSave = on
	return nil
}

func (p *hostPanel) SetContrast(level uint8) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.contrast = level
	return nil
}

func (p *hostPanel) Preview(dst *image.Gray) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.powerSave {
		for i := range dst.Pix {
			dst.Pix[i] = 0
		}
		return
	}
	p.front.gray(dst, contrastLevel(p.contrast))
}

// Frames counts Display calls.
func (p *hostPanel) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}
