package hal

import (
	"errors"
	"testing"
	"time"
)

func TestPeriodicPinLevel(t *testing.T) {
	now := time.Unix(0, 0)
	pin := newPeriodicPin("SIG", 10*time.Second, 2*time.Second, func() time.Time { return now })

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{at: 0, want: true},
		{at: 3 * time.Second, want: false},
		{at: 11 * time.Second, want: true},
		{at: 12 * time.Second, want: false},
	}
	start := now
	for _, tt := range tests {
		now = start.Add(tt.at)
		got, err := pin.Level()
		if err != nil {
			t.Fatalf("Level at %v: %v", tt.at, err)
		}
		if got != tt.want {
			t.Fatalf("Level at %v = %v, want %v", tt.at, got, tt.want)
		}
	}

	if err := pin.Input(PullUp); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("Input(PullUp) = %v, want ErrNotImplemented", err)
	}
}

func TestPeriodicPinClampsHigh(t *testing.T) {
	pin := newPeriodicPin("SIG", time.Second, 5*time.Second, nil)
	if pin.high != time.Second {
		t.Fatalf("high = %v, want 1s", pin.high)
	}
}

func TestPulsePinHolds(t *testing.T) {
	now := time.Unix(100, 0)
	pin := newPulsePin("A", 100*time.Millisecond, func() time.Time { return now })

	if level, _ := pin.Level(); level {
		t.Fatal("expected low before Pulse")
	}
	pin.Pulse()
	now = now.Add(99 * time.Millisecond)
	if level, _ := pin.Level(); !level {
		t.Fatal("expected high inside hold")
	}
	now = now.Add(time.Millisecond)
	if level, _ := pin.Level(); level {
		t.Fatal("expected low after hold")
	}
}

func TestPinButtonsActiveLow(t *testing.T) {
	a := newLatchPin("BTN0")
	b := newLatchPin("BTN1")
	a.Drive(true)
	b.Drive(true)

	btns, err := NewPinButtons([]ButtonPin{a, b}, true, nil)
	if err != nil {
		t.Fatalf("NewPinButtons: %v", err)
	}
	if btns.Pressed(0) || btns.Pressed(1) {
		t.Fatal("expected released with pins high")
	}
	b.Drive(false)
	if !btns.Pressed(1) {
		t.Fatal("Pressed(1) = false, want true")
	}
	if btns.Pressed(2) || btns.Pressed(-1) {
		t.Fatal("unknown ids must read released")
	}
	if a.pull != PullUp {
		t.Fatalf("pull = %v, want pull-up", a.pull)
	}
}

func TestPinButtonsFallsBackToFloat(t *testing.T) {
	now := time.Unix(0, 0)
	pin := newPeriodicPin("AUTO", time.Second, 100*time.Millisecond, func() time.Time { return now })
	btns, err := NewPinButtons([]ButtonPin{pin}, true, nil)
	if err != nil {
		t.Fatalf("NewPinButtons: %v", err)
	}
	if btns.Pressed(0) {
		t.Fatal("active-low pin reading high must be released")
	}
}

func TestPinButtonsRejectsNil(t *testing.T) {
	if _, err := NewPinButtons([]ButtonPin{nil}, false, nil); err == nil {
		t.Fatal("expected error for nil pin")
	}
}
