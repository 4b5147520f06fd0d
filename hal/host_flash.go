//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	hostFlashDefaultPath      = "oled.flash"
	hostFlashDefaultSizeBytes = 64 * 1024
	hostFlashEraseBlockBytes  = 4096
	hostFlashMaxSizeBytes     = 16 << 20
)

// FlashPathEnv names the file backing host flash.
const FlashPathEnv = "OLED_FLASH_PATH"

// FileFlash is a NOR flash image kept in memory and written through to a
// file on every write and erase.
type FileFlash struct {
	mu   sync.Mutex
	path string
	f    *os.File
	mem  *MemFlash
}

func flashPath(path string) string {
	if path == "" {
		path = os.Getenv(FlashPathEnv)
	}
	if path == "" {
		path = hostFlashDefaultPath
	}
	return path
}

// OpenFileFlash opens or creates a file-backed flash at path. An empty path
// uses $OLED_FLASH_PATH, then oled.flash. A new or empty file becomes an
// erased 64 KiB image.
func OpenFileFlash(path string) (*FileFlash, error) {
	path = flashPath(path)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("flash %q: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("flash %q: %w", path, err)
	}

	ff := &FileFlash{path: path, f: f}
	switch size := st.Size(); {
	case size == 0:
		ff.mem = NewMemFlash(hostFlashDefaultSizeBytes, hostFlashEraseBlockBytes)
		err = ff.persist(0, hostFlashDefaultSizeBytes)
	case size > hostFlashMaxSizeBytes || size%hostFlashEraseBlockBytes != 0:
		err = fmt.Errorf("size %d: %w", size, ErrFlashRange)
	default:
		ff.mem = NewMemFlash(uint32(size), hostFlashEraseBlockBytes)
		_, err = io.ReadFull(io.NewSectionReader(f, 0, size), ff.mem.data)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("flash %q: %w", path, err)
	}
	return ff, nil
}

// Path is the backing file.
func (f *FileFlash) Path() string { return f.path }

func (f *FileFlash) Close() error { return f.f.Close() }

func (f *FileFlash) SizeBytes() uint32       { return f.mem.SizeBytes() }
func (f *FileFlash) EraseBlockBytes() uint32 { return f.mem.EraseBlockBytes() }

func (f *FileFlash) ReadAt(p []byte, off uint32) (int, error) {
	return f.mem.ReadAt(p, off)
}

func (f *FileFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.mem.WriteAt(p, off)
	if err != nil {
		return 0, err
	}
	if err := f.persist(off, uint32(n)); err != nil {
		return 0, err
	}
	return n, nil
}

func (f *FileFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.mem.Erase(off, size); err != nil {
		return err
	}
	return f.persist(off, size)
}

// persist copies [off, off+n) of the image to the file.
func (f *FileFlash) persist(off, n uint32) error {
	if n == 0 {
		return nil
	}
	buf := make([]byte, n)
	if _, err := f.mem.ReadAt(buf, off); err != nil {
		return err
	}
	if _, err := f.f.WriteAt(buf, int64(off)); err != nil {
		return fmt.Errorf("flash %q at %d: %w", f.path, off, err)
	}
	return nil
}
