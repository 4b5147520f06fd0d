package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCadence(t *testing.T) {
	tests := []struct {
		s    Screen
		want Millis
	}{
		{s: SaverNightSky, want: 1000},
		{s: SaverClock, want: 1000},
		{s: SaverEmpty, want: 1000},
		{s: Splash, want: 500},
		{s: InfoTimeAndDate, want: 1000},
		{s: InfoLED, want: 3000},
		{s: InfoFX, want: 3000},
		{s: InfoAbout, want: 30000},
		{s: InfoWiFi, want: 10000},
		{s: InfoTech, want: 10000},
		{s: InfoDisplay, want: 10000},
		{s: MenuPower, want: 10000},
		{s: MenuExit, want: 10000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Cadence(tt.s), "Cadence(%v)", tt.s)
	}
}

func TestSchedulerDue(t *testing.T) {
	var s Scheduler
	n := NewNavigator()

	assert.True(t, s.Due(n, InfoWiFi, 0), "nothing rendered yet")
	s.Commit(n, InfoWiFi, 100)
	assert.Equal(t, Screen(InfoWiFi), n.Rendered())
	assert.False(t, s.Due(n, InfoWiFi, 200))
	assert.True(t, s.Due(n, InfoWiFi, 100+DefaultCadence))

	n.ForceRedraw()
	assert.True(t, s.Due(n, InfoWiFi, 200))
	s.Commit(n, InfoWiFi, 200)
	assert.False(t, n.RedrawPending())

	assert.True(t, s.Due(n, SaverClock, 300), "saver differs from rendered screen")
	s.Commit(n, SaverClock, 300)
	assert.False(t, s.Due(n, SaverClock, 300+ScreensaverCadence-1))
	assert.True(t, s.Due(n, SaverClock, 300+ScreensaverCadence))
}

func TestSchedulerDueAcrossCounterWrap(t *testing.T) {
	var s Scheduler
	n := NewNavigator()
	last := Millis(0xFFFF_FF00)
	s.Commit(n, InfoLED, last)

	assert.False(t, s.Due(n, InfoLED, 0x0000_0100))
	assert.True(t, s.Due(n, InfoLED, last+StatusCadence))
}
