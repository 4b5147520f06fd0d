//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"fmt"
	"machine"
)

// rp2FlashWindow caps the region used for settings; it starts at the
// beginning of machine.Flash, which is the space after the firmware image.
const rp2FlashWindow = 64 * 1024

type rp2Flash struct {
	size  uint32
	block uint32
}

func newRP2Flash() Flash {
	f := rp2Flash{size: clampU32(machine.Flash.Size()), block: clampU32(machine.Flash.EraseBlockSize())}
	if f.size > rp2FlashWindow {
		f.size = rp2FlashWindow
	}
	return f
}

func clampU32(v int64) uint32 {
	if v <= 0 {
		return 0
	}
	if v > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}

func (f rp2Flash) SizeBytes() uint32       { return f.size }
func (f rp2Flash) EraseBlockBytes() uint32 { return f.block }

func (f rp2Flash) inRange(off uint32, n int) bool {
	return uint64(off)+uint64(n) <= uint64(f.size)
}

func (f rp2Flash) ReadAt(p []byte, off uint32) (int, error) {
	if !f.inRange(off, len(p)) {
		return 0, ErrFlashRange
	}
	n, err := machine.Flash.ReadAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash read at %d: %w", off, err)
	}
	return n, nil
}

func (f rp2Flash) WriteAt(p []byte, off uint32) (int, error) {
	if !f.inRange(off, len(p)) {
		return 0, ErrFlashRange
	}
	n, err := machine.Flash.WriteAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash write at %d: %w", off, err)
	}
	return n, nil
}

func (f rp2Flash) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if f.block == 0 {
		return ErrNotImplemented
	}
	if !f.inRange(off, int(size)) {
		return ErrFlashRange
	}
	if off%f.block != 0 || size%f.block != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, ErrNotImplemented)
	}
	return machine.Flash.EraseBlocks(int64(off/f.block), int64(size/f.block))
}
