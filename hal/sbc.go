//go:build !tinygo

package hal

import "time"

// SBCConfig describes a Linux board with the panel on I2C and the buttons on
// GPIO lines or an input device.
type SBCConfig struct {
	Host HostConfig
	// Bus is the I2C bus name; empty picks the first bus.
	Bus string
	// MenuPin and ActionPin are GPIO names, active low. Empty skips GPIO.
	MenuPin   string
	ActionPin string
	// InputDevice is an evdev path; InputName selects a device by name
	// instead.
	InputDevice string
	InputName   string
	// Interval is the loop period.
	Interval time.Duration
}

// DefaultSBCConfig matches a Raspberry Pi with the shield on I2C1.
func DefaultSBCConfig() SBCConfig {
	return SBCConfig{
		MenuPin:   "GPIO17",
		ActionPin: "GPIO27",
		Interval:  20 * time.Millisecond,
	}
}
