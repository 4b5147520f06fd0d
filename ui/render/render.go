// Package render draws the controller's screens with tinyfont onto any
// drivers.Displayer.
package render

import (
	"fmt"
	"image/color"
	"time"

	"oledctl/ui"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// Target is a monochrome display with an off-panel buffer.
type Target interface {
	drivers.Displayer
	ClearBuffer()
}

// Network describes connectivity for the WIFI screen.
type Network struct {
	SSID       string
	IP         string
	APSSID     string
	APPassword string
	RSSI       int
	LatencyMs  int
}

// Light describes the LED output for the LED and FX screens.
type Light struct {
	On         bool
	Brightness uint8
	Color      color.RGBA
	Effect     string
	Palette    string
	Speed      uint8
	Intensity  uint8
}

// Tech describes the controller itself.
type Tech struct {
	Name    string
	Version string
	Uptime  time.Duration
	FreeKB  int
	LEDs    int
}

// Source supplies host data the controller does not own.
type Source interface {
	Network() Network
	Light() Light
	Tech() Tech
	LocalTime() time.Time
}

var (
	on  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	off = color.RGBA{A: 0xFF}
)

const (
	iconBarHeight int16 = 9
	lineHeight    int16 = 10
)

// Renderer implements ui.Renderer.
type Renderer struct {
	d     Target
	src   Source
	text  tinyfont.Fonter
	large tinyfont.Fonter
	w, h  int16
}

var _ ui.Renderer = (*Renderer)(nil)

// New returns a renderer drawing onto d with host data from src.
func New(d Target, src Source) *Renderer {
	w, h := d.Size()
	return &Renderer{
		d:     d,
		src:   src,
		text:  &proggy.TinySZ8pt7b,
		large: &freemono.Bold9pt7b,
		w:     w,
		h:     h,
	}
}

func (r *Renderer) Size() (w, h int16) { return r.w, r.h }
func (r *Renderer) Clear()             { r.d.ClearBuffer() }
func (r *Renderer) Commit() error      { return r.d.Display() }

// Screen draws an info screen below the icon bar.
func (r *Renderer) Screen(s ui.Info, f ui.Frame) {
	r.iconBar(s)
	lines := r.infoLines(s, f)
	for i, l := range lines {
		r.line(i, l)
	}
}

// MenuItem draws the menu caption and the item's current value.
func (r *Renderer) MenuItem(m ui.MenuItem, f ui.Frame) {
	title := "MENU"
	w := textWidth(r.text, title)
	tinyfont.WriteLine(r.d, r.text, (r.w-w)/2, iconBarHeight-2, title, on)
	r.hline(iconBarHeight)
	for i, l := range r.menuLines(m, f) {
		r.line(i, l)
	}
}

// Splash draws the boot logo with step loading dots.
func (r *Renderer) Splash(step uint8, f ui.Frame) {
	logo := "WLED"
	w := textWidth(r.large, logo)
	tinyfont.WriteLine(r.d, r.large, (r.w-w)/2, r.h/2, logo, on)
	for i := int16(0); i < int16(step%4); i++ {
		x := r.w/2 - 6 + i*4
		r.d.SetPixel(x, r.h-6, on)
		r.d.SetPixel(x+1, r.h-6, on)
		r.d.SetPixel(x, r.h-5, on)
		r.d.SetPixel(x+1, r.h-5, on)
	}
}

// Screensaver draws one animation frame.
func (r *Renderer) Screensaver(v ui.ScreensaverVariant, st ui.SaverState, f ui.Frame) {
	switch v {
	case ui.SaverClock:
		t := r.src.LocalTime()
		tinyfont.WriteLine(r.d, r.large, int16(st.Origin.X), int16(st.Origin.Y), t.Format("15:04"), on)
	case ui.SaverNightSky:
		x, y := int16(st.Star.X), int16(st.Star.Y)
		for dy := int16(-1); dy <= 1; dy++ {
			for dx := int16(-1); dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					r.d.SetPixel(x+dx, y+dy, off)
				}
			}
		}
		r.d.SetPixel(x, y, on)
	}
}

func (r *Renderer) infoLines(s ui.Info, f ui.Frame) []string {
	switch s {
	case ui.InfoWiFi:
		n := r.src.Network()
		switch f.Wifi {
		case ui.WifiAP:
			return []string{"AP:", n.APSSID, n.APPassword}
		case ui.WifiClient:
			return []string{n.SSID, n.IP, fmt.Sprintf("%ddBm %dms", n.RSSI, n.LatencyMs)}
		}
		return []string{"No WiFi", "connecting"}
	case ui.InfoLED:
		l := r.src.Light()
		state := "off"
		if l.On {
			state = "on"
		}
		return []string{
			"Power " + state,
			fmt.Sprintf("Bri %d", l.Brightness),
			fmt.Sprintf("#%02X%02X%02X", l.Color.R, l.Color.G, l.Color.B),
		}
	case ui.InfoFX:
		l := r.src.Light()
		return []string{l.Effect, l.Palette, fmt.Sprintf("S%d I%d", l.Speed, l.Intensity)}
	case ui.InfoTech:
		t := r.src.Tech()
		return []string{
			"Up " + formatUptime(t.Uptime),
			fmt.Sprintf("Free %dkB", t.FreeKB),
			fmt.Sprintf("LEDs %d", t.LEDs),
		}
	case ui.InfoTimeAndDate:
		now := r.src.LocalTime()
		return []string{now.Format("15:04:05"), now.Format("02.01.2006"), now.Format("Monday")}
	case ui.InfoDisplay:
		return []string{
			fmt.Sprintf("Lo %d", f.LowContrast),
			fmt.Sprintf("Hi %d", f.HighContrast),
			"Saver " + f.Screensaver.String(),
		}
	case ui.InfoAbout:
		t := r.src.Tech()
		return []string{t.Name, t.Version, "OLED 64x48"}
	}
	return nil
}

func (r *Renderer) menuLines(m ui.MenuItem, f ui.Frame) []string {
	switch m {
	case ui.MenuPower:
		if r.src.Light().On {
			return []string{"Power", "turn off"}
		}
		return []string{"Power", "turn on"}
	case ui.MenuColor:
		return []string{"Color", "random"}
	case ui.MenuAP:
		return []string{"Start AP", "erases cfg"}
	case ui.MenuReboot:
		return []string{"Reboot"}
	case ui.MenuFactoryReset:
		return []string{"Factory", "reset"}
	case ui.MenuNextEffect:
		return []string{"Next FX", r.src.Light().Effect}
	case ui.MenuBrightnessUp:
		return []string{"Bri +", fmt.Sprintf("%d", r.src.Light().Brightness)}
	case ui.MenuBrightnessDown:
		return []string{"Bri -", fmt.Sprintf("%d", r.src.Light().Brightness)}
	case ui.MenuScreensaver:
		return []string{"Sleep", f.Screensaver.String()}
	case ui.MenuExit:
		return []string{"Exit"}
	}
	return nil
}

func (r *Renderer) line(i int, s string) {
	y := iconBarHeight + lineHeight*int16(i+1)
	if y > r.h {
		return
	}
	tinyfont.WriteLine(r.d, r.text, 1, y-1, s, on)
}

func (r *Renderer) iconBar(active ui.Info) {
	const slot = 9
	for i := ui.InfoWiFi; i <= ui.InfoAbout; i++ {
		x0 := int16(i) * slot
		filled := i == active
		for y := int16(1); y < iconBarHeight-2; y++ {
			for x := x0 + 1; x < x0+slot-1; x++ {
				edge := y == 1 || y == iconBarHeight-3 || x == x0+1 || x == x0+slot-2
				if filled || edge {
					r.d.SetPixel(x, y, on)
				}
			}
		}
	}
	r.hline(iconBarHeight - 1)
}

func (r *Renderer) hline(y int16) {
	for x := int16(0); x < r.w; x++ {
		r.d.SetPixel(x, y, on)
	}
}

func textWidth(f tinyfont.Fonter, s string) int16 {
	_, outbox := tinyfont.LineWidth(f, s)
	return int16(outbox)
}

func formatUptime(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h >= 24 {
		return fmt.Sprintf("%dd %02dh", h/24, h%24)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}
