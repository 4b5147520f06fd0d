//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func TestHostClockStepCarries(t *testing.T) {
	c := newHostClock(0, true)
	for i := 0; i < 3; i++ {
		c.step(1500 * time.Microsecond)
	}
	if got := c.Millis(); got != 4 {
		t.Fatalf("Millis() = %d, want 4", got)
	}
	c.step(500 * time.Microsecond)
	if got := c.Millis(); got != 5 {
		t.Fatalf("Millis() = %d, want 5", got)
	}
}

func TestHostClockWraps(t *testing.T) {
	c := newHostClock(^uint32(0)-9, true)
	c.step(20 * time.Millisecond)
	if got := c.Millis(); got != 10 {
		t.Fatalf("Millis() = %d, want 10", got)
	}
}
