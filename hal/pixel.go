package hal

import (
	"image"
	"image/color"
)

// lit reports whether c turns a monochrome pixel on.
func lit(c color.RGBA) bool {
	// Rec. 601 luma, integer form.
	y := (299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000
	return y >= 0x80
}

// monoBuffer is a 1bpp buffer laid out in SSD1306 pages: one byte covers
// eight rows of one column, LSB on top.
type monoBuffer struct {
	w, h int
	pix  []byte
}

func newMonoBuffer(w, h int) monoBuffer {
	pages := (h + 7) / 8
	return monoBuffer{w: w, h: h, pix: make([]byte, w*pages)}
}

func (b *monoBuffer) set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	i := (y/8)*b.w + x
	mask := byte(1) << uint(y%8)
	if on {
		b.pix[i] |= mask
	} else {
		b.pix[i] &^= mask
	}
}

func (b *monoBuffer) get(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.pix[(y/8)*b.w+x]&(1<<uint(y%8)) != 0
}

func (b *monoBuffer) clear() {
	for i := range b.pix {
		b.pix[i] = 0
	}
}

// gray renders b into dst, lit pixels at level on and unlit at zero.
func (b *monoBuffer) gray(dst *image.Gray, on uint8) {
	r := dst.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := uint8(0)
			if b.get(x-r.Min.X, y-r.Min.Y) {
				v = on
			}
			dst.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

// contrastLevel maps panel contrast to the brightness a viewer perceives.
// The SSD1306 stays clearly visible at contrast 0.
func contrastLevel(c uint8) uint8 {
	return uint8(64 + uint32(c)*191/255)
}
