package ledhost

import (
	"testing"
	"time"

	"oledctl/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newDevice(t *testing.T, cfg Config) (*Device, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	cfg.Now = clk.now
	return New(cfg), clk
}

func TestAdvanceEffectWraps(t *testing.T) {
	d, _ := newDevice(t, Config{Effects: []string{"A", "B", "C"}})
	var seen []string
	for i := 0; i < 4; i++ {
		seen = append(seen, d.Light().Effect)
		d.AdvanceEffect()
	}
	assert.Equal(t, []string{"A", "B", "C", "A"}, seen)
}

func TestStateChangedIsReportedOnce(t *testing.T) {
	d, _ := newDevice(t, Config{})
	assert.True(t, d.StateChanged(), "fresh device reports its initial state")
	assert.False(t, d.StateChanged())

	d.NotifyColorChanged()
	assert.True(t, d.StateChanged())
	d.NotifyStateChanged()
	assert.True(t, d.StateChanged())
	assert.False(t, d.StateChanged())
}

func TestBrightnessAndPower(t *testing.T) {
	d, _ := newDevice(t, Config{Brightness: 40})
	assert.Equal(t, uint8(40), d.Brightness())
	d.SetBrightness(255)
	assert.Equal(t, uint8(255), d.Light().Brightness)

	require.True(t, d.Light().On)
	d.TogglePower()
	assert.False(t, d.Light().On)
}

func TestRandomColorIsDeterministicPerSeed(t *testing.T) {
	a, _ := newDevice(t, Config{Seed: 7})
	b, _ := newDevice(t, Config{Seed: 7})
	a.AssignRandomColor()
	b.AssignRandomColor()
	assert.Equal(t, a.Light().Color, b.Light().Color)
	assert.Equal(t, uint8(0xFF), a.Light().Color.A)
}

func TestWifiMode(t *testing.T) {
	d, _ := newDevice(t, Config{SSID: "home", IP: "10.0.0.2"})
	assert.Equal(t, ui.WifiNone, d.WifiMode())

	d.SetLink(true, -60, 12*time.Millisecond)
	assert.Equal(t, ui.WifiClient, d.WifiMode())
	n := d.Network()
	assert.Equal(t, 12, n.LatencyMs)
	assert.Equal(t, "10.0.0.2", n.IP)

	d.SetAP(true)
	assert.Equal(t, ui.WifiAP, d.WifiMode())
	assert.Equal(t, "4.3.2.1", d.Network().IP)
}

func TestRebootKeepsModeAndResetsState(t *testing.T) {
	d, clk := newDevice(t, Config{})
	d.SetBrightness(3)
	d.SetLink(true, -60, time.Millisecond)
	clk.t = clk.t.Add(time.Hour)
	assert.Equal(t, time.Hour, d.Tech().Uptime)

	d.RequestReboot()
	assert.Equal(t, RestartReboot, d.PendingRestart())
	assert.Equal(t, RestartReboot, d.Restart())
	assert.Equal(t, RestartNone, d.PendingRestart())
	assert.Equal(t, uint8(128), d.Brightness())
	assert.Equal(t, time.Duration(0), d.Tech().Uptime)
	assert.Equal(t, ui.WifiClient, d.WifiMode())
}

func TestFactoryResetComesUpInAPMode(t *testing.T) {
	d, _ := newDevice(t, Config{})
	d.SetLink(true, -50, time.Millisecond)
	d.RequestFactoryReset()
	assert.Equal(t, RestartFactoryReset, d.Restart())
	assert.Equal(t, ui.WifiAP, d.WifiMode())
	assert.Equal(t, RestartNone, d.Restart())
}

func TestUpdatingWindow(t *testing.T) {
	d, clk := newDevice(t, Config{StripFrame: 20 * time.Millisecond, StripBusy: 5 * time.Millisecond})
	assert.True(t, d.Updating())
	clk.t = clk.t.Add(6 * time.Millisecond)
	assert.False(t, d.Updating())
	clk.t = clk.t.Add(15 * time.Millisecond)
	assert.True(t, d.Updating())

	idle, _ := newDevice(t, Config{})
	assert.False(t, idle.Updating())
}

func TestWheelStaysSaturated(t *testing.T) {
	for i := 0; i < 256; i++ {
		c := wheel(uint8(i))
		sum := int(c.R) + int(c.G) + int(c.B)
		assert.InDelta(t, 255, sum, 3, "wheel(%d) = %v", i, c)
	}
}
