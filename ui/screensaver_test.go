package ui

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockCounterBouncesWithinBounds(t *testing.T) {
	s := NewScreensaver(SaverClock, 1)
	s.resetClock()

	var peak uint8
	sawMax := false
	for i := 0; i < 2*int(ClockFrameMax); i++ {
		require.LessOrEqual(t, s.frame, ClockFrameMax, "step %d", i)
		if s.frame == ClockFrameMax {
			sawMax = true
		}
		if s.frame > peak {
			peak = s.frame
		}
		s.stepClock()
	}
	assert.True(t, sawMax)
	assert.Equal(t, ClockFrameMax, peak)
	assert.Equal(t, uint8(0), s.frame, "back at zero after a full bounce")

	s.stepClock()
	assert.Equal(t, uint8(1), s.frame)
	assert.True(t, s.forward)
}

func TestClockOrigin(t *testing.T) {
	tests := []struct {
		frame uint8
		want  image.Point
	}{
		{frame: 0, want: image.Pt(0, 19)},
		{frame: 28, want: image.Pt(0, 47)},
		{frame: 29, want: image.Pt(1, 47)},
		{frame: 57, want: image.Pt(1, 19)},
		{frame: 58, want: image.Pt(2, 19)},
		{frame: ClockFrameMax, want: image.Pt(6, 47)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClockOrigin(tt.frame), "ClockOrigin(%d)", tt.frame)
	}
}

func TestNightSkyStarsStayInBounds(t *testing.T) {
	s := NewScreensaver(SaverNightSky, 0)
	seen := map[image.Point]bool{}
	for i := 0; i < 500; i++ {
		p := s.nextStar(64, 48)
		require.True(t, p.In(image.Rect(0, 0, 64, 48)), "star %v", p)
		seen[p] = true
	}
	assert.Greater(t, len(seen), 100)
	assert.Equal(t, image.Point{}, s.nextStar(0, 48))
}

func TestSetVariantIgnoresUnknown(t *testing.T) {
	s := NewScreensaver(SaverClock, 1)
	s.SetVariant(ScreensaverVariant(9))
	assert.Equal(t, SaverClock, s.Variant())
	s.SetVariant(SaverEmpty)
	assert.Equal(t, SaverEmpty, s.Variant())
}
