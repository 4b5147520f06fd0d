package hal

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrFlashRange is returned for accesses outside a flash device.
	ErrFlashRange = errors.New("flash access out of range")
	// ErrFlashWriteRequiresErase is returned when a write would set a bit.
	ErrFlashWriteRequiresErase = errors.New("flash write requires erase")
)

// MemFlash is a RAM-backed NOR flash: erase sets bytes to 0xFF and writes
// can only clear bits.
type MemFlash struct {
	mu         sync.Mutex
	data       []byte
	eraseBlock uint32
}

// NewMemFlash returns an erased MemFlash of size bytes.
func NewMemFlash(size, eraseBlock uint32) *MemFlash {
	f := &MemFlash{data: make([]byte, size), eraseBlock: eraseBlock}
	for i := range f.data {
		f.data[i] = 0xFF
	}
	return f
}

func (f *MemFlash) SizeBytes() uint32       { return uint32(len(f.data)) }
func (f *MemFlash) EraseBlockBytes() uint32 { return f.eraseBlock }

// Bytes returns a copy of the whole image.
func (f *MemFlash) Bytes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.data...)
}

func (f *MemFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off >= uint32(len(f.data)) {
		return 0, fmt.Errorf("flash read at %d: %w", off, ErrFlashRange)
	}
	return copy(p, f.data[off:]), nil
}

func (f *MemFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off >= uint32(len(f.data)) {
		return 0, fmt.Errorf("flash write at %d: %w", off, ErrFlashRange)
	}
	dst := f.data[off:]
	if len(p) > len(dst) {
		p = p[:len(dst)]
	}
	for i := range p {
		if dst[i]&p[i] != p[i] {
			return 0, fmt.Errorf("flash write at %d: %w", off+uint32(i), ErrFlashWriteRequiresErase)
		}
	}
	return copy(dst, p), nil
}

func (f *MemFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if size == 0 {
		return nil
	}
	if f.eraseBlock == 0 || off%f.eraseBlock != 0 || size%f.eraseBlock != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: unaligned", off, size)
	}
	if uint64(off)+uint64(size) > uint64(len(f.data)) {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, ErrFlashRange)
	}
	for i := off; i < off+size; i++ {
		f.data[i] = 0xFF
	}
	return nil
}
