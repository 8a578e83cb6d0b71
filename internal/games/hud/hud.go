// Package hud draws the text chrome the games share: score lines and the
// dimmed full-surface overlay used for start and game-over screens.
package hud

import (
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

var (
	overlayColor = core.MustHex("#000000")
	titleColor   = core.MustHex("#ffffff")
	hintColor    = core.MustHex("#cfd8dc")
)

// Overlay dims the whole surface and centers a title with an optional hint
// line below it.
func Overlay(s core.Surface, title, hint string) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s.SetAlpha(0.6)
	s.FillRect(core.NewRect(0, 0, w, h), overlayColor)
	s.SetAlpha(1)

	size := max(h/15, 12)
	s.FillText(title, w/2, h/2-size/2, core.TextStyle{Size: size, Align: core.AlignCenter, Bold: true, Color: titleColor})
	if hint != "" {
		s.FillText(hint, w/2, h/2+size, core.TextStyle{Size: size * 0.6, Align: core.AlignCenter, Color: hintColor})
	}
}

// Label draws a left-aligned line of text at a fraction of the surface height.
func Label(s core.Surface, text string, x, y float64, c core.Color) {
	_, h := s.Size()
	s.FillText(text, x, y, core.TextStyle{Size: max(h/30, 10), Align: core.AlignLeft, Color: c})
}
