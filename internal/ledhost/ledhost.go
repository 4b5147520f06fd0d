// Package ledhost simulates the LED controller the display reports on and
// drives from its menu.
package ledhost

import (
	"image/color"
	"runtime"
	"sync"
	"time"

	"oledctl/internal/buildinfo"
	"oledctl/ui"
	"oledctl/ui/render"
)

// Default effect and palette names.
var (
	DefaultEffects  = []string{"Solid", "Blink", "Breathe", "Wipe", "Rainbow", "Chase", "Twinkle", "Fire 2012"}
	DefaultPalettes = []string{"Default", "Party", "Ocean", "Lava", "Forest"}
)

// Config describes the simulated controller.
type Config struct {
	Name       string
	LEDs       int
	Effects    []string
	SSID       string
	IP         string
	APSSID     string
	APPassword string
	// Brightness at power-up and after a factory reset.
	Brightness uint8
	Seed       uint32
	// StripFrame and StripBusy model strip output: Updating is true for the
	// first StripBusy of every StripFrame. A zero StripBusy never blocks.
	StripFrame time.Duration
	StripBusy  time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Restart is a pending restart request.
type Restart uint8

const (
	RestartNone Restart = iota
	RestartReboot
	RestartFactoryReset
)

func (r Restart) String() string {
	switch r {
	case RestartReboot:
		return "reboot"
	case RestartFactoryReset:
		return "factory-reset"
	}
	return "none"
}

// Device is the simulated controller. It is safe for concurrent use.
type Device struct {
	mu  sync.Mutex
	cfg Config

	start      time.Time
	on         bool
	brightness uint8
	color      color.RGBA
	effect     int
	palette    int
	speed      uint8
	intensity  uint8
	changed    bool
	restart    Restart

	ap      bool
	link    bool
	rssi    int
	latency time.Duration
	rng     uint32
}

var (
	_ ui.Host       = (*Device)(nil)
	_ ui.Status     = (*Device)(nil)
	_ render.Source = (*Device)(nil)
)

// New returns a powered-on device in client mode with no link yet.
func New(cfg Config) *Device {
	if cfg.Name == "" {
		cfg.Name = "WLED"
	}
	if len(cfg.Effects) == 0 {
		cfg.Effects = DefaultEffects
	}
	if cfg.APSSID == "" {
		cfg.APSSID = "WLED-AP"
	}
	if cfg.APPassword == "" {
		cfg.APPassword = "wled1234"
	}
	if cfg.Brightness == 0 {
		cfg.Brightness = 128
	}
	if cfg.StripFrame <= 0 {
		cfg.StripFrame = 25 * time.Millisecond
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Seed == 0 {
		cfg.Seed = 0x9e3779b9
	}
	d := &Device{cfg: cfg, rng: cfg.Seed}
	d.reset(false)
	return d
}

func (d *Device) reset(factory bool) {
	d.start = d.cfg.Now()
	d.on = true
	d.brightness = d.cfg.Brightness
	d.color = color.RGBA{R: 0xFF, G: 0xA0, A: 0xFF}
	d.effect = 0
	d.palette = 0
	d.speed = 128
	d.intensity = 128
	d.changed = true
	d.restart = RestartNone
	if factory {
		d.ap = true
	}
}

func (d *Device) TogglePower() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.on = !d.on
}

func (d *Device) NotifyStateChanged() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changed = true
}

// AdvanceEffect selects the next effect, wrapping past the last.
func (d *Device) AdvanceEffect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.effect = (d.effect + 1) % len(d.cfg.Effects)
	d.palette = (d.palette + 1) % len(DefaultPalettes)
}

func (d *Device) NotifyColorChanged() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changed = true
}

func (d *Device) Brightness() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

func (d *Device) SetBrightness(v uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.brightness = v
}

// AssignRandomColor picks a fully saturated random hue.
func (d *Device) AssignRandomColor() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.color = wheel(uint8(d.next()))
}

func (d *Device) RequestReboot() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.restart = RestartReboot
}

func (d *Device) RequestFactoryReset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.restart = RestartFactoryReset
}

// PendingRestart reports the outstanding restart request.
func (d *Device) PendingRestart() Restart {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.restart
}

// Restart performs the pending request. A reboot keeps the network mode and
// link; a factory reset restores defaults and comes back up in AP mode.
func (d *Device) Restart() Restart {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := d.restart
	switch r {
	case RestartReboot:
		d.reset(false)
	case RestartFactoryReset:
		d.reset(true)
	}
	return r
}

func (d *Device) Updating() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.StripBusy <= 0 {
		return false
	}
	return d.cfg.Now().Sub(d.start)%d.cfg.StripFrame < d.cfg.StripBusy
}

func (d *Device) StateChanged() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := d.changed
	d.changed = false
	return c
}

func (d *Device) WifiMode() ui.WifiMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case d.ap:
		return ui.WifiAP
	case d.link:
		return ui.WifiClient
	}
	return ui.WifiNone
}

// SetAP switches the access point on or off.
func (d *Device) SetAP(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ap = on
}

// SetLink records the outcome of a connectivity probe.
func (d *Device) SetLink(up bool, rssi int, latency time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.link = up
	d.rssi = rssi
	d.latency = latency
}

func (d *Device) Network() render.Network {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := render.Network{
		SSID:       d.cfg.SSID,
		IP:         d.cfg.IP,
		APSSID:     d.cfg.APSSID,
		APPassword: d.cfg.APPassword,
		RSSI:       d.rssi,
		LatencyMs:  int(d.latency / time.Millisecond),
	}
	if d.ap {
		n.IP = "4.3.2.1"
	}
	return n
}

func (d *Device) Light() render.Light {
	d.mu.Lock()
	defer d.mu.Unlock()
	return render.Light{
		On:         d.on,
		Brightness: d.brightness,
		Color:      d.color,
		Effect:     d.cfg.Effects[d.effect],
		Palette:    DefaultPalettes[d.palette],
		Speed:      d.speed,
		Intensity:  d.intensity,
	}
}

func (d *Device) Tech() render.Tech {
	d.mu.Lock()
	defer d.mu.Unlock()
	return render.Tech{
		Name:    d.cfg.Name,
		Version: buildinfo.Short(),
		Uptime:  d.cfg.Now().Sub(d.start),
		FreeKB:  freeKB(),
		LEDs:    d.cfg.LEDs,
	}
}

func (d *Device) LocalTime() time.Time { return d.cfg.Now() }

// next is xorshift32.
func (d *Device) next() uint32 {
	x := d.rng
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	d.rng = x
	return x
}

// wheel maps 0..255 onto a red-green-blue color wheel.
func wheel(pos uint8) color.RGBA {
	switch {
	case pos < 85:
		return color.RGBA{R: 255 - pos*3, G: pos * 3, A: 0xFF}
	case pos < 170:
		pos -= 85
		return color.RGBA{G: 255 - pos*3, B: pos * 3, A: 0xFF}
	}
	pos -= 170
	return color.RGBA{R: pos * 3, B: 255 - pos*3, A: 0xFF}
}

func freeKB() int {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	free := int64(ms.Sys) - int64(ms.HeapInuse)
	if free < 0 {
		return 0
	}
	return int(free / 1024)
}
