package core

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is the color type every drawing call takes.
// Any image/color value works; colorful.Color is the usual one.
type Color = color.Color

// Common colors shared by the games and the hosts.
var (
	ColorBlack = MustHex("#000000")
	ColorWhite = MustHex("#ffffff")
)

// MustHex parses a #rrggbb string. Panics on malformed input, so only use it
// with literals.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("core: bad hex color " + s)
	}
	return c
}

// HSL builds a color from hue in degrees (wrapped into [0,360)), saturation
// and lightness in [0,1].
func HSL(h, s, l float64) colorful.Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, s, l)
}

// ToColorful converts any color to colorful.Color, dropping alpha.
func ToColorful(c Color) colorful.Color {
	if cf, ok := c.(colorful.Color); ok {
		return cf
	}
	cf, _ := colorful.MakeColor(c)
	return cf
}

// Alpha returns the alpha component of c in [0,1].
// colorful.Color is always opaque.
func Alpha(c Color) float64 {
	if _, ok := c.(colorful.Color); ok {
		return 1
	}
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}

// WithAlpha returns c as a non-premultiplied color with alpha a in [0,1].
func WithAlpha(c Color, a float64) color.NRGBA {
	r, g, b := ToColorful(c).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(ClampF(a, 0, 1) * 255)}
}
