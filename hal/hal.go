package hal

import (
	"errors"
	"image"
	"image/color"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Panel is a monochrome display with an off-panel buffer. SetPixel and
// ClearBuffer touch the buffer only; Display transfers it.
//
// Panel satisfies drivers.Displayer.
type Panel interface {
	Size() (x, y int16)
	SetPixel(x, y int16, c color.RGBA)
	Display() error
	ClearBuffer()
	SetPowerSave(on bool) error
	SetContrast(level uint8) error
}

// Previewer is implemented by panels whose committed image can be read back.
type Previewer interface {
	// Preview draws what a viewer would currently see into dst, which must
	// match the panel size.
	Preview(dst *image.Gray)
}

// Buttons reports raw button levels. Id 0 is the menu button, 1 the action
// button.
type Buttons interface {
	Pressed(id int) bool
}

// Clock is a free-running millisecond counter that wraps at 2^32.
type Clock interface {
	Millis() uint32
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// HAL provides the only contact point between the controller and the outside world.
type HAL interface {
	Logger() Logger
	Panel() Panel
	Buttons() Buttons
	Clock() Clock
	Flash() Flash
}

// Standard panel geometry of the 0.66" shield.
const (
	PanelWidth  = 64
	PanelHeight = 48
)
