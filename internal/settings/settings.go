// Package settings persists the "Display" config group as a JSON record at
// the start of a hal.Flash.
//
// Record layout, little endian:
//
//	0  magic "OLDS"
//	4  version (1)
//	5  reserved
//	6  payload length (uint16)
//	8  CRC-32 (IEEE) of the payload
//	12 payload: {"Display": {...}}
package settings

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"

	"oledctl/hal"
	"oledctl/ui"
)

var (
	// ErrNoRecord is returned when the flash holds no record.
	ErrNoRecord = errors.New("settings: no record")
	// ErrCorrupt is returned when a record fails its checks.
	ErrCorrupt = errors.New("settings: corrupt record")
)

const (
	magic      = "OLDS"
	version    = 1
	headerSize = 12
	maxPayload = 1024
)

type document struct {
	Display ui.DisplayConfig `json:"Display"`
}

// Load reads the stored config group.
func Load(f hal.Flash) (ui.DisplayConfig, error) {
	var hdr [headerSize]byte
	if _, err := f.ReadAt(hdr[:], 0); err != nil {
		return ui.DisplayConfig{}, fmt.Errorf("settings: read header: %w", err)
	}
	if blank(hdr[:4]) {
		return ui.DisplayConfig{}, ErrNoRecord
	}
	if string(hdr[:4]) != magic || hdr[4] != version {
		return ui.DisplayConfig{}, fmt.Errorf("%w: bad magic %q v%d", ErrCorrupt, hdr[:4], hdr[4])
	}
	n := binary.LittleEndian.Uint16(hdr[6:8])
	if n == 0 || n > maxPayload {
		return ui.DisplayConfig{}, fmt.Errorf("%w: length %d", ErrCorrupt, n)
	}
	payload := make([]byte, n)
	if _, err := f.ReadAt(payload, headerSize); err != nil {
		return ui.DisplayConfig{}, fmt.Errorf("settings: read payload: %w", err)
	}
	if crc32.ChecksumIEEE(payload) != binary.LittleEndian.Uint32(hdr[8:12]) {
		return ui.DisplayConfig{}, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	var doc document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return ui.DisplayConfig{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return doc.Display, nil
}

// Save replaces the stored record with cfg.
func Save(f hal.Flash, cfg ui.DisplayConfig) error {
	payload, err := json.Marshal(document{Display: cfg})
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if len(payload) > maxPayload {
		return fmt.Errorf("settings: record of %d bytes too large", len(payload))
	}
	buf := make([]byte, headerSize+len(payload))
	copy(buf, magic)
	buf[4] = version
	binary.LittleEndian.PutUint16(buf[6:8], uint16(len(payload)))
	binary.LittleEndian.PutUint32(buf[8:12], crc32.ChecksumIEEE(payload))
	copy(buf[headerSize:], payload)

	if err := erase(f, uint32(len(buf))); err != nil {
		return err
	}
	if _, err := f.WriteAt(buf, 0); err != nil {
		return fmt.Errorf("settings: write: %w", err)
	}
	return nil
}

// Erase removes the stored record.
func Erase(f hal.Flash) error {
	return erase(f, headerSize+maxPayload)
}

func erase(f hal.Flash, n uint32) error {
	bs := f.EraseBlockBytes()
	if bs == 0 {
		return fmt.Errorf("settings: erase: %w", hal.ErrNotImplemented)
	}
	size := (n + bs - 1) / bs * bs
	if size > f.SizeBytes() {
		return fmt.Errorf("settings: erase %d bytes: %w", size, hal.ErrFlashRange)
	}
	if err := f.Erase(0, size); err != nil {
		return fmt.Errorf("settings: erase: %w", err)
	}
	return nil
}

func blank(b []byte) bool {
	for _, v := range b {
		if v != 0xFF {
			return false
		}
	}
	return true
}
