package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupShowsSplashUntilConnected(t *testing.T) {
	host := &fakeHost{bri: 128}
	rend := &fakeRenderer{}
	c := New(Options{Panel: &fakePanel{}, Renderer: rend, Buttons: &fakeButtons{}, Host: host, Status: host})
	c.ApplyConfig(DisplayConfig{Enabled: Bool(true)}, 0)
	c.Setup(0)

	assert.Equal(t, Screen(Splash), c.nav.Active())
	assert.Equal(t, "SPLASH0", rend.last())

	c.Tick(100)
	assert.Len(t, rend.calls, 1, "splash cadence not reached")
	c.Tick(500)
	assert.Equal(t, "SPLASH1", rend.last())
	assert.True(t, c.HandleButton(0, 600), "presses are swallowed during the splash")
	assert.False(t, c.nav.InMenu())

	host.wifi = WifiAP
	c.Tick(700)
	assert.Equal(t, Screen(InfoWiFi), c.nav.Active())
	assert.Equal(t, "WIFI", rend.last())
}

func TestSetupDisabledPowersOff(t *testing.T) {
	panel := &fakePanel{}
	host := &fakeHost{}
	rend := &fakeRenderer{}
	c := New(Options{Panel: panel, Renderer: rend, Buttons: &fakeButtons{}, Host: host, Status: host})
	c.Setup(0)

	assert.Equal(t, []bool{true}, panel.powerSave)
	c.Tick(20_000)
	assert.Empty(t, rend.calls)
	assert.False(t, c.HandleButton(1, 20_000), "disabled display does not consume presses")
}

func TestHandleButtonRoles(t *testing.T) {
	r := newRig(t)

	require.True(t, r.press(int(ButtonAction)))
	assert.Equal(t, Screen(InfoLED), r.c.nav.Active())

	require.True(t, r.press(int(ButtonMenu)))
	assert.Equal(t, Screen(MenuPower), r.c.nav.Active())

	require.True(t, r.press(int(ButtonMenu)))
	assert.Equal(t, Screen(MenuColor), r.c.nav.Active())

	require.True(t, r.press(int(ButtonAction)))
	assert.Equal(t, 1, r.host.colors)
	assert.Equal(t, Screen(InfoWiFi), r.c.nav.Active())
}

func TestHandleButtonRejectsUnknownIDs(t *testing.T) {
	r := newRig(t)
	r.now += DebounceWindow
	assert.False(t, r.c.HandleButton(2, r.now))
	assert.False(t, r.c.HandleButton(-1, r.now))
	assert.Equal(t, Screen(InfoWiFi), r.c.nav.Active())
}

func TestHandleButtonDebounces(t *testing.T) {
	r := newRig(t)
	r.now += DebounceWindow
	r.buttons.down[ButtonAction] = true

	assert.True(t, r.c.HandleButton(int(ButtonAction), r.now))
	assert.True(t, r.c.HandleButton(int(ButtonAction), r.now+200))
	assert.Equal(t, Screen(InfoLED), r.c.nav.Active(), "second press inside the window is dropped")

	assert.True(t, r.c.HandleButton(int(ButtonAction), r.now+DebounceWindow))
	assert.Equal(t, Screen(InfoFX), r.c.nav.Active())
}

func TestHandleButtonNeedsPressedLevel(t *testing.T) {
	r := newRig(t)
	r.now += DebounceWindow
	assert.True(t, r.c.HandleButton(int(ButtonAction), r.now))
	assert.Equal(t, Screen(InfoWiFi), r.c.nav.Active())
}

func TestIdleTimeoutsFireInOrder(t *testing.T) {
	r := newRig(t)
	require.True(t, r.press(int(ButtonMenu)))
	require.True(t, r.c.nav.InMenu())
	start := r.now

	var highlightOff, menuClosed, saving Millis
	r.idle(125_000, 50, func(now Millis) {
		if highlightOff == 0 && !r.c.contrast.Highlighted() {
			highlightOff = now - start
		}
		if menuClosed == 0 && !r.c.nav.InMenu() {
			menuClosed = now - start
		}
		if saving == 0 && r.c.saver.Active() {
			saving = now - start
		}
	})

	assert.Equal(t, HighlightTimeout, highlightOff)
	assert.Equal(t, MenuExitTimeout, menuClosed)
	assert.Equal(t, ScreensaverTimeout, saving)
	assert.Equal(t, Screen(InfoWiFi), r.c.nav.Active())
}

func TestHighlightDecayAcrossCounterWrap(t *testing.T) {
	r := newRigAt(t, 0xFFFF_F000)
	require.True(t, r.c.contrast.Highlighted())

	r.idle(9_000, 100, nil)
	assert.True(t, r.c.contrast.Highlighted())
	r.idle(1_000, 100, nil)
	assert.False(t, r.c.contrast.Highlighted())
	assert.False(t, r.c.saver.Active())
}

func TestWakePressDoesNothingElse(t *testing.T) {
	r := newRig(t)
	r.idle(ScreensaverTimeout, 1000, nil)
	require.True(t, r.c.saver.Active())

	require.True(t, r.press(int(ButtonAction)))
	assert.False(t, r.c.saver.Active())
	assert.True(t, r.c.contrast.Highlighted())
	assert.Equal(t, Screen(InfoWiFi), r.c.nav.Active(), "wake press must not advance")
	assert.True(t, r.c.nav.RedrawPending())

	require.True(t, r.press(int(ButtonMenu)))
	assert.True(t, r.c.nav.InMenu())
}

func TestWakeFromMenuScreensaver(t *testing.T) {
	r := newRig(t)
	r.run(MenuScreensaver)
	require.True(t, r.press(int(ButtonMenu)))
	assert.False(t, r.c.nav.InMenu(), "wake press must not open the menu")
}

func TestConfigClampsContrast(t *testing.T) {
	r := newRig(t)
	r.c.ApplyConfig(DisplayConfig{
		Enabled:      Bool(true),
		LowContrast:  Int(200),
		HighContrast: Int(100),
		Screensaver:  Int(1),
	}, r.now)

	low, high := r.c.contrast.Levels()
	assert.Equal(t, uint8(100), low)
	assert.Equal(t, uint8(100), high)
	assert.Equal(t, SaverClock, r.c.saver.Variant())
	assert.Equal(t, uint8(100), r.panel.lastContrast())
}

func TestConfigKeepsMissingFields(t *testing.T) {
	r := newRig(t)
	r.c.ApplyConfig(DisplayConfig{LowContrast: Int(10), HighContrast: Int(900), Screensaver: Int(2)}, r.now)
	r.c.ApplyConfig(DisplayConfig{Screensaver: Int(7)}, r.now)

	cfg := r.c.Config()
	assert.True(t, *cfg.Enabled)
	assert.Equal(t, 10, *cfg.LowContrast)
	assert.Equal(t, 255, *cfg.HighContrast)
	assert.Equal(t, 2, *cfg.Screensaver, "out-of-range variant is ignored")
}

func TestConfigDisableAndEnable(t *testing.T) {
	r := newRig(t)
	r.c.ApplyConfig(DisplayConfig{Enabled: Bool(false)}, r.now)
	assert.False(t, r.c.power.On())
	assert.False(t, r.press(int(ButtonAction)))

	r.c.ApplyConfig(DisplayConfig{Enabled: Bool(true)}, r.now)
	assert.True(t, r.c.power.On())
	assert.True(t, r.c.nav.RedrawPending())
}

func TestConfigTogglesPowerOnlyOnTransition(t *testing.T) {
	r := newRig(t)
	writes := len(r.panel.powerSave)

	r.c.ApplyConfig(DisplayConfig{Enabled: Bool(true), LowContrast: Int(5)}, r.now)
	assert.Len(t, r.panel.powerSave, writes, "already enabled")

	r.c.ApplyConfig(DisplayConfig{Enabled: Bool(false)}, r.now)
	r.c.ApplyConfig(DisplayConfig{Enabled: Bool(false)}, r.now)
	assert.Equal(t, []bool{true}, r.panel.powerSave[writes:])

	r.c.ApplyConfig(DisplayConfig{Enabled: Bool(true)}, r.now)
	assert.Equal(t, []bool{true, false}, r.panel.powerSave[writes:])
}

func TestConfigWakesFromScreensaver(t *testing.T) {
	r := newRig(t)
	r.run(MenuScreensaver)
	r.c.ApplyConfig(DisplayConfig{}, r.now)
	assert.False(t, r.c.saver.Active())
	assert.True(t, r.c.contrast.Highlighted())
}

func TestEmptyScreensaverPowersPanel(t *testing.T) {
	r := newRig(t)
	r.c.ApplyConfig(DisplayConfig{Screensaver: Int(int(SaverEmpty))}, r.now)
	r.run(MenuScreensaver)
	calls := len(r.render.calls)

	r.idle(3000, 500, nil)
	assert.False(t, r.c.power.On())
	assert.Equal(t, []bool{true}, r.panel.powerSave[len(r.panel.powerSave)-1:])
	assert.Len(t, r.render.calls, calls, "EMPTY never draws")

	require.True(t, r.press(int(ButtonAction)))
	assert.True(t, r.c.power.On())
}

func TestNightSkyClearsOnce(t *testing.T) {
	r := newRig(t)
	r.c.ApplyConfig(DisplayConfig{Screensaver: Int(int(SaverNightSky))}, r.now)
	r.run(MenuScreensaver)
	clears := r.render.clears

	r.idle(5000, 1000, nil)
	assert.Equal(t, clears+1, r.render.clears)
	require.Len(t, r.render.saver, 5)
	assert.True(t, r.render.saver[0].Fresh)
	for i, st := range r.render.saver {
		assert.True(t, st.Star.X >= 0 && st.Star.X < 64 && st.Star.Y >= 0 && st.Star.Y < 48, "star %d at %v", i, st.Star)
		if i > 0 {
			assert.False(t, st.Fresh)
		}
	}
}

func TestClockScreensaverFrames(t *testing.T) {
	r := newRig(t)
	r.run(MenuScreensaver)

	r.idle(3000, 1000, nil)
	require.Len(t, r.render.saver, 3)
	assert.Equal(t, uint8(0), r.render.saver[0].Frame)
	assert.Equal(t, uint8(1), r.render.saver[1].Frame)
	assert.Equal(t, uint8(2), r.render.saver[2].Frame)
	assert.Equal(t, "CLOCK", r.render.last())
}

func TestTickSkippedWhileUpdating(t *testing.T) {
	r := newRig(t)
	r.host.updating = true
	calls := len(r.render.calls)
	r.idle(ScreensaverTimeout+Millis(5000), 1000, nil)

	assert.False(t, r.c.saver.Active())
	assert.True(t, r.c.contrast.Highlighted())
	assert.Len(t, r.render.calls, calls)
}

func TestRedrawCadenceAndStatus(t *testing.T) {
	r := newRig(t)
	require.True(t, r.press(int(ButtonAction)))
	r.c.Tick(r.now)
	require.Equal(t, "LED", r.render.last())
	calls := len(r.render.calls)

	r.c.Tick(r.now + 1000)
	assert.Len(t, r.render.calls, calls)

	r.host.changed = true
	r.c.Tick(r.now + 1100)
	assert.Len(t, r.render.calls, calls+1, "host state change forces a redraw")

	r.c.Tick(r.now + 1100 + StatusCadence)
	assert.Len(t, r.render.calls, calls+2)
}

func TestWifiChangeRedraws(t *testing.T) {
	r := newRig(t)
	calls := len(r.render.calls)
	r.c.Tick(r.now + 100)
	assert.Len(t, r.render.calls, calls)

	r.host.wifi = WifiAP
	r.c.Tick(r.now + 200)
	assert.Len(t, r.render.calls, calls+1)
	assert.Equal(t, "AP", r.c.Snapshot(r.now+200).Wifi)
}

func TestSnapshot(t *testing.T) {
	r := newRig(t)
	require.True(t, r.press(int(ButtonMenu)))
	st := r.c.Snapshot(r.now + 10)

	assert.True(t, st.Enabled)
	assert.True(t, st.Ready)
	assert.True(t, st.Menu)
	assert.Equal(t, "POWER", st.Active)
	assert.Equal(t, "CLOCK", st.Screensaver)
	assert.Equal(t, uint32(10), st.IdleMillis)
}
