//go:build linux && !tinygo

package hal

import (
	"context"
	"fmt"

	"github.com/holoplot/go-evdev"
)

// defaultEvdevKeys maps key codes to button ids.
var defaultEvdevKeys = map[evdev.EvCode]int{
	evdev.KEY_A:     0,
	evdev.KEY_LEFT:  0,
	evdev.KEY_POWER: 0,
	evdev.KEY_B:     1,
	evdev.KEY_RIGHT: 1,
	evdev.KEY_ENTER: 1,
}

// findEvdev returns the path of the first input device called name.
func findEvdev(name string) (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", err
	}
	for _, p := range paths {
		if p.Name == name {
			return p.Path, nil
		}
	}
	return "", fmt.Errorf("no input device named %q", name)
}

// watchEvdev grabs an input device and holds buttons while their keys are
// down. It returns when ctx is done or the device fails.
func watchEvdev(ctx context.Context, path, name string, keys map[evdev.EvCode]int, h Holder, log Logger) error {
	if path == "" {
		p, err := findEvdev(name)
		if err != nil {
			return err
		}
		path = p
	}
	dev, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := dev.Grab(); err != nil {
		log.WriteLineString(fmt.Sprintf("hal: evdev: grab %s: %v", path, err))
	}
	devName, _ := dev.Name()
	log.WriteLineString(fmt.Sprintf("hal: evdev: using %s (%s)", path, devName))

	go func() {
		<-ctx.Done()
		_ = dev.Ungrab()
		_ = dev.Close()
	}()

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read %s: %w", path, err)
		}
		applyKeyEvent(ev, keys, h)
	}
}

// applyKeyEvent reports whether ev moved a button. Auto-repeat (value 2) is
// ignored.
func applyKeyEvent(ev *evdev.InputEvent, keys map[evdev.EvCode]int, h Holder) bool {
	if ev == nil || ev.Type != evdev.EV_KEY || ev.Value > 1 {
		return false
	}
	id, ok := keys[ev.Code]
	if !ok {
		return false
	}
	h.Hold(id, ev.Value == 1)
	return true
}
