//go:build tinygo

package main

import (
	"time"

	"oledctl/app"
	"oledctl/hal"
)

func main() {
	h := hal.New()
	a := app.New(h, app.Config{})
	// No link probe on the board; report a client connection.
	a.Device().SetLink(true, -60, 0)
	hal.RunBoard(h, a.Step, 20*time.Millisecond)
}
