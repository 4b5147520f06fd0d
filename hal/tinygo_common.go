//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type tinyClock struct {
	start time.Time
}

func (c *tinyClock) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// tinyPanel wraps the SSD1306 driver with power and contrast commands.
type tinyPanel struct {
	dev *ssd1306.Device
}

func (p *tinyPanel) Size() (x, y int16)                { return p.dev.Size() }
func (p *tinyPanel) SetPixel(x, y int16, c color.RGBA) { p.dev.SetPixel(x, y, c) }
func (p *tinyPanel) Display() error                    { return p.dev.Display() }
func (p *tinyPanel) ClearBuffer()                      { p.dev.ClearBuffer() }

func (p *tinyPanel) SetPowerSave(on bool) error {
	if on {
		p.dev.Command(ssd1306.DISPLAYOFF)
	} else {
		p.dev.Command(ssd1306.DISPLAYON)
	}
	return nil
}

func (p *tinyPanel) SetContrast(level uint8) error {
	p.dev.Command(ssd1306.SETCONTRAST)
	p.dev.Command(level)
	return nil
}

// machinePin adapts a machine.Pin.
type machinePin struct {
	name string
	pin  machine.Pin
}

func (p *machinePin) Name() string { return p.name }

func (p *machinePin) Input(pull Pull) error {
	mode := machine.PinInput
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	}
	p.pin.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (p *machinePin) Level() (bool, error) { return p.pin.Get(), nil }
