//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
)

// Pico wiring: the shield on I2C0 (GP4 SDA, GP5 SCL), the menu button on
// GP14 and the action button on GP15, both to ground.
const (
	boardMenuPin   = machine.GP14
	boardActionPin = machine.GP15
	boardPanelAddr = 0x3C
)

type tinyGoHAL struct {
	logger  *uartLogger
	panel   *tinyPanel
	buttons Buttons
	clock   *tinyClock
	flash   Flash
}

// New returns a Raspberry Pi Pico HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	}); err != nil {
		logger.WriteLineString("hal: i2c: " + err.Error())
	}
	time.Sleep(10 * time.Millisecond)

	dev := ssd1306.NewI2C(i2c)
	dev.Configure(ssd1306.Config{
		Address:   boardPanelAddr,
		Width:     PanelWidth,
		Height:    PanelHeight,
		VccState:  ssd1306.SWITCHCAPVCC,
		ResetCol:  ssd1306.ResetValue{32, 95},
		ResetPage: ssd1306.ResetValue{0, 5},
	})

	var buttons Buttons = AnyButtons{}
	pins := []ButtonPin{
		&machinePin{name: "GP14", pin: boardMenuPin},
		&machinePin{name: "GP15", pin: boardActionPin},
	}
	if b, err := NewPinButtons(pins, true, logger); err != nil {
		logger.WriteLineString("hal: buttons: " + err.Error())
	} else {
		buttons = b
	}

	return &tinyGoHAL{
		logger:  logger,
		panel:   &tinyPanel{dev: dev},
		buttons: buttons,
		clock:   &tinyClock{start: time.Now()},
		flash:   newRP2Flash(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Panel() Panel     { return h.panel }
func (h *tinyGoHAL) Buttons() Buttons { return h.buttons }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) Flash() Flash     { return h.flash }

// RunBoard steps the app at interval. A failed step is logged and the board
// halts with whatever the panel shows.
func RunBoard(h HAL, step func() error, interval time.Duration) {
	for {
		if step != nil {
			if err := step(); err != nil {
				h.Logger().WriteLineString("app: " + err.Error())
				select {}
			}
		}
		time.Sleep(interval)
	}
}
