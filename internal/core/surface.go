package core

import "math"

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how FillText renders a string.
type TextStyle struct {
	Size  float64 // Nominal glyph height in pixels
	Align Align
	Bold  bool
	Color Color
}

// GradientKind selects between linear and radial interpolation.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// GradientStop is a color at an offset in [0,1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// Gradient describes a two-point color ramp.
// Linear gradients run From -> To. Radial gradients are centered on From with
// radius Radius.
type Gradient struct {
	Kind   GradientKind
	From   Vec
	To     Vec
	Radius float64
	Stops  []GradientStop
}

// At returns the interpolated color at offset t.
func (g Gradient) At(t float64) Color {
	if len(g.Stops) == 0 {
		return ColorBlack
	}
	t = ClampF(t, 0, 1)
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		prev, next := g.Stops[i-1], g.Stops[i]
		if t <= next.Offset {
			span := next.Offset - prev.Offset
			if span <= 0 {
				return next.Color
			}
			f := (t - prev.Offset) / span
			return ToColorful(prev.Color).BlendRgb(ToColorful(next.Color), f)
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// Offset returns where point p falls on the gradient, in [0,1].
func (g Gradient) Offset(p Vec) float64 {
	switch g.Kind {
	case GradientRadial:
		if g.Radius <= 0 {
			return 1
		}
		dx, dy := p.X-g.From.X, p.Y-g.From.Y
		return ClampF(math.Hypot(dx, dy)/g.Radius, 0, 1)
	default:
		ax, ay := g.To.X-g.From.X, g.To.Y-g.From.Y
		l2 := ax*ax + ay*ay
		if l2 == 0 {
			return 0
		}
		return ClampF(((p.X-g.From.X)*ax+(p.Y-g.From.Y)*ay)/l2, 0, 1)
	}
}

// Surface is the 2D drawing target supplied by the host.
// Coordinates are pixels with the origin at the top-left corner.
// All fill and stroke calls respect the alpha set by SetAlpha.
type Surface interface {
	// Size returns the current surface dimensions. Both are zero before the
	// host's first layout.
	Size() (w, h float64)

	Clear(c Color)
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, width float64, c Color)
	FillRoundRect(r Rect, radius float64, c Color)
	FillCircle(center Vec, radius float64, c Color)
	StrokeCircle(center Vec, radius, width float64, c Color)
	// StrokeArc strokes the arc from start to end radians, clockwise.
	StrokeArc(center Vec, radius, start, end, width float64, c Color)
	StrokeLine(from, to Vec, width float64, c Color)
	FillPolygon(points []Vec, c Color)
	FillGradient(r Rect, g Gradient)
	// FillText draws text vertically centered on y and anchored on x per Align.
	FillText(text string, x, y float64, style TextStyle)

	// SetAlpha sets the global opacity for subsequent calls.
	SetAlpha(a float64)
}
