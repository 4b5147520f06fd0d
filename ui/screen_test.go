package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceCyclesInfoScreens(t *testing.T) {
	n := NewNavigator()
	var seen []Screen
	for i := 0; i < int(infoCount); i++ {
		seen = append(seen, n.Active())
		n.Advance()
	}
	assert.Equal(t, Screen(InfoWiFi), n.Active())
	assert.Equal(t, []Screen{InfoWiFi, InfoLED, InfoFX, InfoTech, InfoTimeAndDate, InfoDisplay, InfoAbout}, seen)
	assert.False(t, n.InMenu())
}

func TestAdvanceCyclesMenuItems(t *testing.T) {
	n := NewNavigator()
	n.EnterMenu()
	require.True(t, n.InMenu())
	for i := 0; i < int(menuCount); i++ {
		require.True(t, n.InMenu(), "step %d left the menu", i)
		n.Advance()
	}
	assert.Equal(t, Screen(MenuPower), n.Active())
}

func TestNavigatorMenuTransitions(t *testing.T) {
	n := NewNavigator()
	n.Advance()
	n.commit(n.Active())
	require.False(t, n.RedrawPending())

	n.EnterMenu()
	assert.Equal(t, Screen(MenuPower), n.Active())
	assert.True(t, n.RedrawPending())

	n.commit(n.Active())
	n.ExitMenu()
	assert.Equal(t, Screen(InfoWiFi), n.Active())
	assert.False(t, n.InMenu())
	assert.True(t, n.RedrawPending())
}

func TestAdvanceLeavesSentinel(t *testing.T) {
	n := NewNavigator()
	n.Show(Splash)
	n.Advance()
	assert.Equal(t, Screen(Splash), n.Active())
}

func TestScreensOfDifferentKindsNeverEqual(t *testing.T) {
	// Every category starts at zero.
	zero := []Screen{InfoWiFi, MenuPower, SaverNightSky, Splash}
	for i, a := range zero {
		for j, b := range zero {
			if i != j {
				assert.NotEqual(t, a, b)
				assert.False(t, a == b, "%v == %v", a, b)
			}
		}
	}
}

func TestScreenNamesComplete(t *testing.T) {
	for s := Info(0); s < infoCount; s++ {
		assert.NotContains(t, s.String(), "?")
	}
	for m := MenuItem(0); m < menuCount; m++ {
		assert.NotContains(t, m.String(), "?")
	}
	for v := ScreensaverVariant(0); v < saverCount; v++ {
		assert.NotContains(t, v.String(), "?")
	}
	assert.True(t, strings.HasSuffix(Info(200).String(), "?"))
}

func TestMenuActionTableComplete(t *testing.T) {
	for m := MenuItem(0); m < menuCount; m++ {
		assert.NotNil(t, menuActions[m], "no action for %v", m)
	}
}

func TestParseScreensaver(t *testing.T) {
	tests := []struct {
		in   int
		want ScreensaverVariant
		ok   bool
	}{
		{in: 0, want: SaverNightSky, ok: true},
		{in: 1, want: SaverClock, ok: true},
		{in: 2, want: SaverEmpty, ok: true},
		{in: 3},
		{in: -1},
		{in: 255},
	}
	for _, tt := range tests {
		got, ok := ParseScreensaver(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseScreensaver(%d)", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseScreensaver(%d)", tt.in)
		}
	}
}
