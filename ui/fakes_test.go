package ui

import (
	"fmt"
	"testing"
)

type fakePanel struct {
	powerSave []bool
	contrast  []uint8
}

func (p *fakePanel) SetPowerSave(on bool) error {
	p.powerSave = append(p.powerSave, on)
	return nil
}

func (p *fakePanel) SetContrast(level uint8) error {
	p.contrast = append(p.contrast, level)
	return nil
}

func (p *fakePanel) lastContrast() uint8 {
	if len(p.contrast) == 0 {
		return 0
	}
	return p.contrast[len(p.contrast)-1]
}

type fakeRenderer struct {
	calls   []string
	clears  int
	commits int
	saver   []SaverState
}

func (r *fakeRenderer) Size() (w, h int16) { return 64, 48 }
func (r *fakeRenderer) Clear()             { r.clears++ }
func (r *fakeRenderer) Commit() error {
	r.commits++
	return nil
}

func (r *fakeRenderer) Screen(s Info, f Frame) { r.calls = append(r.calls, s.String()) }
func (r *fakeRenderer) MenuItem(m MenuItem, f Frame) {
	r.calls = append(r.calls, m.String())
}
func (r *fakeRenderer) Splash(step uint8, f Frame) {
	r.calls = append(r.calls, fmt.Sprintf("SPLASH%d", step))
}
func (r *fakeRenderer) Screensaver(v ScreensaverVariant, st SaverState, f Frame) {
	r.calls = append(r.calls, v.String())
	r.saver = append(r.saver, st)
}

func (r *fakeRenderer) last() string {
	if len(r.calls) == 0 {
		return ""
	}
	return r.calls[len(r.calls)-1]
}

type fakeButtons struct {
	down [2]bool
}

func (b *fakeButtons) Pressed(id int) bool {
	if id < 0 || id >= len(b.down) {
		return false
	}
	return b.down[id]
}

type fakeHost struct {
	bri      uint8
	power    bool
	effect   int
	updating bool
	changed  bool
	wifi     WifiMode

	stateNotes  int
	colorNotes  int
	colors      int
	reboots     int
	resets      int
	effectSteps int
}

func (h *fakeHost) TogglePower()          { h.power = !h.power }
func (h *fakeHost) NotifyStateChanged()   { h.stateNotes++ }
func (h *fakeHost) AdvanceEffect()        { h.effectSteps++ }
func (h *fakeHost) NotifyColorChanged()   { h.colorNotes++ }
func (h *fakeHost) Brightness() uint8     { return h.bri }
func (h *fakeHost) SetBrightness(v uint8) { h.bri = v }
func (h *fakeHost) AssignRandomColor()    { h.colors++ }
func (h *fakeHost) RequestReboot()        { h.reboots++ }
func (h *fakeHost) RequestFactoryReset()  { h.resets++ }
func (h *fakeHost) Updating() bool        { return h.updating }
func (h *fakeHost) WifiMode() WifiMode    { return h.wifi }
func (h *fakeHost) StateChanged() bool {
	c := h.changed
	h.changed = false
	return c
}

type rig struct {
	c       *Controller
	panel   *fakePanel
	render  *fakeRenderer
	buttons *fakeButtons
	host    *fakeHost
	now     Millis
}

// newRig returns an enabled, set-up controller already past the splash.
func newRig(t *testing.T) *rig {
	t.Helper()
	return newRigAt(t, 0)
}

func newRigAt(t *testing.T, start Millis) *rig {
	t.Helper()
	r := &rig{
		now:     start,
		panel:   &fakePanel{},
		render:  &fakeRenderer{},
		buttons: &fakeButtons{},
		host:    &fakeHost{bri: 128, wifi: WifiClient},
	}
	r.c = New(Options{
		Panel:    r.panel,
		Renderer: r.render,
		Buttons:  r.buttons,
		Host:     r.host,
		Status:   r.host,
		Seed:     1,
	})
	r.c.ApplyConfig(DisplayConfig{Enabled: Bool(true)}, r.now)
	r.c.Setup(r.now)
	r.c.Tick(r.now)
	if got := r.c.nav.Active(); got != InfoWiFi {
		t.Fatalf("Active() = %v, want WIFI", got)
	}
	return r
}

// press triggers button id once at least one debounce window after now.
func (r *rig) press(id int) bool {
	r.now += DebounceWindow
	r.buttons.down[id] = true
	ok := r.c.HandleButton(id, r.now)
	r.buttons.down[id] = false
	return ok
}

// idle ticks every step ms for d ms.
func (r *rig) idle(d, step Millis, each func(now Millis)) {
	for end := r.now + d; r.now != end; {
		r.now += step
		r.c.Tick(r.now)
		if each != nil {
			each(r.now)
		}
	}
}
