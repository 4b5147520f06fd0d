//go:build !tinygo && cgo

package hal

import (
	"image"

	"oledctl/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop preview.
type WindowConfig struct {
	Host  HostConfig
	Scale int
}

// RunWindow starts a desktop window that shows the panel and maps keys to the
// two buttons. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 8
	}
	cfg.Host.Stepped = false
	h := newHost(cfg.Host)
	step := newApp(h)

	w, ht := h.panel.Size()
	g := &hostGame{
		h:    h,
		step: step,
		gray: image.NewGray(image.Rect(0, 0, int(w), int(ht))),
	}
	ebiten.SetWindowTitle("OLED (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(int(w)*cfg.Scale, int(ht)*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	step  func() error
	gray  *image.Gray
	rgba  []byte
	panel *ebiten.Image
}

func (g *hostGame) Update() error {
	pollKeys(g.h.held)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	b := g.gray.Bounds()
	if g.panel == nil {
		g.panel = ebiten.NewImage(b.Dx(), b.Dy())
		g.rgba = make([]byte, 4*b.Dx()*b.Dy())
	}
	g.h.panel.Preview(g.gray)
	for i, v := range g.gray.Pix {
		j := i * 4
		g.rgba[j+0] = v
		g.rgba[j+1] = v
		g.rgba[j+2] = v
		g.rgba[j+3] = 0xFF
	}
	g.panel.WritePixels(g.rgba)
	screen.DrawImage(g.panel, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.h.panel.Size()
	return int(w), int(h)
}
