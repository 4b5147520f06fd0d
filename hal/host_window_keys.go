//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

var windowKeys = [2][]ebiten.Key{
	{ebiten.KeyA, ebiten.KeyArrowLeft, ebiten.KeyDigit0},
	{ebiten.KeyB, ebiten.KeyArrowRight, ebiten.KeyEnter, ebiten.KeyDigit1},
}

// pollKeys holds a button down while any of its keys is.
func pollKeys(b Holder) {
	for id, keys := range windowKeys {
		down := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				down = true
				break
			}
		}
		b.Hold(id, down)
	}
}
