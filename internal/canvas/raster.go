// Package canvas provides software implementations of core.Surface: a pixel
// Raster that terminal hosts convert into cells, and a Recorder that logs
// drawing calls for tests.
package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// TextRun is a string drawn with FillText. Rasters keep text separately so
// each host can render glyphs its own way.
type TextRun struct {
	Text  string
	X, Y  float64
	Style core.TextStyle
	Alpha float64
}

// Raster is an RGBA pixel buffer plus a text layer.
type Raster struct {
	img   *image.RGBA
	texts []TextRun
	alpha float64
}

// NewRaster creates a raster of the given pixel size.
func NewRaster(w, h int) *Raster {
	r := &Raster{alpha: 1}
	r.Resize(w, h)
	return r
}

// Resize reallocates the buffer. Contents are discarded.
func (r *Raster) Resize(w, h int) {
	r.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	r.texts = nil
}

// Image returns the backing buffer.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// At returns the pixel at (x, y).
func (r *Raster) At(x, y int) color.RGBA {
	return r.img.RGBAAt(x, y)
}

// Texts returns the text runs drawn since the last Clear.
func (r *Raster) Texts() []TextRun {
	return r.texts
}

// Size implements core.Surface.
func (r *Raster) Size() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// SetAlpha implements core.Surface.
func (r *Raster) SetAlpha(a float64) {
	r.alpha = core.ClampF(a, 0, 1)
}

// Clear implements core.Surface. It also drops the text layer.
func (r *Raster) Clear(c core.Color) {
	cr, cg, cb := core.ToColorful(c).Clamped().RGB255()
	pix := r.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = cr, cg, cb, 255
	}
	r.texts = r.texts[:0]
}

// FillRect implements core.Surface.
func (r *Raster) FillRect(rect core.Rect, c core.Color) {
	r.fill(rect.X, rect.Y, rect.Right(), rect.Bottom(), c, func(px, py float64) bool {
		return true
	})
}

// StrokeRect implements core.Surface.
func (r *Raster) StrokeRect(rect core.Rect, width float64, c core.Color) {
	hw := width / 2
	r.fill(rect.X-hw, rect.Y-hw, rect.Right()+hw, rect.Bottom()+hw, c, func(px, py float64) bool {
		inner := rect.Inset(hw)
		return !(px >= inner.X && px < inner.Right() && py >= inner.Y && py < inner.Bottom())
	})
}

// FillRoundRect implements core.Surface.
func (r *Raster) FillRoundRect(rect core.Rect, radius float64, c core.Color) {
	radius = math.Min(radius, math.Min(rect.W, rect.H)/2)
	r.fill(rect.X, rect.Y, rect.Right(), rect.Bottom(), c, func(px, py float64) bool {
		cx := core.ClampF(px, rect.X+radius, rect.Right()-radius)
		cy := core.ClampF(py, rect.Y+radius, rect.Bottom()-radius)
		return math.Hypot(px-cx, py-cy) <= radius
	})
}

// FillCircle implements core.Surface. Circles smaller than a pixel still
// cover the pixel holding their center.
func (r *Raster) FillCircle(center core.Vec, radius float64, c core.Color) {
	rr := math.Max(radius, 0.5)
	r.fill(center.X-rr, center.Y-rr, center.X+rr, center.Y+rr, c, func(px, py float64) bool {
		return math.Hypot(px-center.X, py-center.Y) <= rr
	})
}

// StrokeCircle implements core.Surface.
func (r *Raster) StrokeCircle(center core.Vec, radius, width float64, c core.Color) {
	r.StrokeArc(center, radius, 0, 2*math.Pi, width, c)
}

// StrokeArc implements core.Surface.
func (r *Raster) StrokeArc(center core.Vec, radius, start, end, width float64, c core.Color) {
	hw := math.Max(width/2, 0.5)
	full := end-start >= 2*math.Pi
	ext := radius + hw
	r.fill(center.X-ext, center.Y-ext, center.X+ext, center.Y+ext, c, func(px, py float64) bool {
		dx, dy := px-center.X, py-center.Y
		if math.Abs(math.Hypot(dx, dy)-radius) > hw {
			return false
		}
		return full || angleWithin(math.Atan2(dy, dx), start, end)
	})
}

// StrokeLine implements core.Surface.
func (r *Raster) StrokeLine(from, to core.Vec, width float64, c core.Color) {
	hw := math.Max(width/2, 0.5)
	minX, maxX := math.Min(from.X, to.X)-hw, math.Max(from.X, to.X)+hw
	minY, maxY := math.Min(from.Y, to.Y)-hw, math.Max(from.Y, to.Y)+hw
	r.fill(minX, minY, maxX, maxY, c, func(px, py float64) bool {
		return segmentDistance(core.Vec{X: px, Y: py}, from, to) <= hw
	})
}

// FillPolygon implements core.Surface using the even-odd rule.
func (r *Raster) FillPolygon(points []core.Vec, c core.Color) {
	if len(points) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	r.fill(minX, minY, maxX, maxY, c, func(px, py float64) bool {
		return insidePolygon(points, px, py)
	})
}

// FillGradient implements core.Surface.
func (r *Raster) FillGradient(rect core.Rect, g core.Gradient) {
	x0, y0, x1, y1 := r.clip(rect.X, rect.Y, rect.Right(), rect.Bottom())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := core.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			r.blend(x, y, g.At(g.Offset(p)))
		}
	}
}

// FillText implements core.Surface.
func (r *Raster) FillText(text string, x, y float64, style core.TextStyle) {
	if text == "" {
		return
	}
	r.texts = append(r.texts, TextRun{Text: text, X: x, Y: y, Style: style, Alpha: r.alpha})
}

// fill blends c into every pixel of the box whose center satisfies inside.
func (r *Raster) fill(minX, minY, maxX, maxY float64, c core.Color, inside func(px, py float64) bool) {
	x0, y0, x1, y1 := r.clip(minX, minY, maxX, maxY)
	for y := y0; y < y1; y++ {
		py := float64(y) + 0.5
		for x := x0; x < x1; x++ {
			px := float64(x) + 0.5
			if inside(px, py) {
				r.blend(x, y, c)
			}
		}
	}
}

func (r *Raster) clip(minX, minY, maxX, maxY float64) (x0, y0, x1, y1 int) {
	b := r.img.Bounds()
	x0 = max(int(math.Floor(minX)), b.Min.X)
	y0 = max(int(math.Floor(minY)), b.Min.Y)
	x1 = min(int(math.Ceil(maxX)), b.Max.X)
	y1 = min(int(math.Ceil(maxY)), b.Max.Y)
	return x0, y0, x1, y1
}

func (r *Raster) blend(x, y int, c core.Color) {
	a := r.alpha * core.Alpha(c)
	if a <= 0 {
		return
	}
	src := core.ToColorful(c)
	if a < 1 {
		d := r.img.RGBAAt(x, y)
		dst := colorful.Color{R: float64(d.R) / 255, G: float64(d.G) / 255, B: float64(d.B) / 255}
		src = dst.BlendRgb(src, a)
	}
	cr, cg, cb := src.Clamped().RGB255()
	r.img.SetRGBA(x, y, color.RGBA{R: cr, G: cg, B: cb, A: 255})
}

func angleWithin(a, start, end float64) bool {
	const tau = 2 * math.Pi
	norm := func(v float64) float64 {
		v = math.Mod(v, tau)
		if v < 0 {
			v += tau
		}
		return v
	}
	a, s := norm(a), norm(start)
	span := end - start
	if span < 0 {
		span = norm(span)
	}
	d := norm(a - s)
	return d <= span
}

func segmentDistance(p, a, b core.Vec) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := core.ClampF(((p.X-a.X)*dx+(p.Y-a.Y)*dy)/l2, 0, 1)
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

func insidePolygon(pts []core.Vec, x, y float64) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) && x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			in = !in
		}
		j = i
	}
	return in
}
