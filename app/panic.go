package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"oledctl/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const panicLineHeight int16 = 8

// showPanic logs v with a stack and paints it onto the panel.
func showPanic(h hal.HAL, v any) {
	stack := debug.Stack()
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("oledctl panic: %v", v))
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	p := h.Panel()
	if p == nil {
		return
	}
	font := &proggy.TinySZ8pt7b
	_, outbox := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outbox)
	w, ht := p.Size()
	if fontWidth <= 0 || w <= 0 {
		return
	}
	cols := w / fontWidth
	if cols <= 0 {
		cols = 1
	}

	p.ClearBuffer()
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	y := panicLineHeight - 1
	for _, line := range []string{"PANIC", fmt.Sprint(v)} {
		for len(line) > 0 && y < ht {
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(p, font, 0, y, chunk, fg)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = p.SetPowerSave(false)
	_ = p.SetContrast(0xFF)
	_ = p.Display()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
