package window

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// gradientCells is the per-axis subdivision used to shade gradients with
// vertex colors.
const gradientCells = 16

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image

	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource

	// faces is only touched from the game loop.
	faces = make(map[float64]*text.GoTextFace)
)

// whiteSubImage is the 1x1 source every triangle samples; vertex colors
// tint it.
func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSub = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

func faceSource() *text.GoTextFaceSource {
	fontOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err == nil {
			fontSource = src
		}
	})
	return fontSource
}

// Surface implements core.Surface on an offscreen Ebiten image. Games draw
// into it from frame callbacks; the host copies it to the screen in Draw.
type Surface struct {
	img   *ebiten.Image
	alpha float64
	owned bool
}

// NewSurface allocates a surface of the given size.
func NewSurface(w, h int) *Surface {
	s := &Surface{alpha: 1, owned: true}
	s.Resize(w, h)
	return s
}

// NewSurfaceOn draws onto img without taking ownership of it.
func NewSurfaceOn(img *ebiten.Image) *Surface {
	return &Surface{img: img, alpha: 1}
}

// Resize reallocates the backing image. Contents are discarded.
func (s *Surface) Resize(w, h int) {
	if s.img != nil && s.owned {
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(max(w, 1), max(h, 1))
	s.owned = true
}

// Image returns the backing image.
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

// Size implements core.Surface.
func (s *Surface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// SetAlpha implements core.Surface.
func (s *Surface) SetAlpha(a float64) {
	s.alpha = core.ClampF(a, 0, 1)
}

// Clear implements core.Surface.
func (s *Surface) Clear(c core.Color) {
	s.img.Fill(c)
}

// FillRect implements core.Surface.
func (s *Surface) FillRect(r core.Rect, c core.Color) {
	vector.DrawFilledRect(s.img, f32(r.X), f32(r.Y), f32(r.W), f32(r.H), s.color(c), false)
}

// StrokeRect implements core.Surface.
func (s *Surface) StrokeRect(r core.Rect, width float64, c core.Color) {
	vector.StrokeRect(s.img, f32(r.X), f32(r.Y), f32(r.W), f32(r.H), f32(width), s.color(c), true)
}

// FillRoundRect implements core.Surface.
func (s *Surface) FillRoundRect(r core.Rect, radius float64, c core.Color) {
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	if radius <= 0 {
		s.FillRect(r, c)
		return
	}
	x0, y0, x1, y1 := f32(r.X), f32(r.Y), f32(r.Right()), f32(r.Bottom())
	rr := f32(radius)

	var p vector.Path
	p.MoveTo(x0+rr, y0)
	p.LineTo(x1-rr, y0)
	p.ArcTo(x1, y0, x1, y0+rr, rr)
	p.LineTo(x1, y1-rr)
	p.ArcTo(x1, y1, x1-rr, y1, rr)
	p.LineTo(x0+rr, y1)
	p.ArcTo(x0, y1, x0, y1-rr, rr)
	p.LineTo(x0, y0+rr)
	p.ArcTo(x0, y0, x0+rr, y0, rr)
	p.Close()
	s.fillPath(&p, c)
}

// FillCircle implements core.Surface.
func (s *Surface) FillCircle(center core.Vec, radius float64, c core.Color) {
	vector.DrawFilledCircle(s.img, f32(center.X), f32(center.Y), f32(math.Max(radius, 0.5)), s.color(c), true)
}

// StrokeCircle implements core.Surface.
func (s *Surface) StrokeCircle(center core.Vec, radius, width float64, c core.Color) {
	vector.StrokeCircle(s.img, f32(center.X), f32(center.Y), f32(radius), f32(width), s.color(c), true)
}

// StrokeArc implements core.Surface.
func (s *Surface) StrokeArc(center core.Vec, radius, start, end, width float64, c core.Color) {
	var p vector.Path
	p.MoveTo(f32(center.X+radius*math.Cos(start)), f32(center.Y+radius*math.Sin(start)))
	p.Arc(f32(center.X), f32(center.Y), f32(radius), f32(start), f32(end), vector.Clockwise)
	s.strokePath(&p, width, c)
}

// StrokeLine implements core.Surface.
func (s *Surface) StrokeLine(from, to core.Vec, width float64, c core.Color) {
	vector.StrokeLine(s.img, f32(from.X), f32(from.Y), f32(to.X), f32(to.Y), f32(width), s.color(c), true)
}

// FillPolygon implements core.Surface.
func (s *Surface) FillPolygon(points []core.Vec, c core.Color) {
	if len(points) < 3 {
		return
	}
	var p vector.Path
	p.MoveTo(f32(points[0].X), f32(points[0].Y))
	for _, pt := range points[1:] {
		p.LineTo(f32(pt.X), f32(pt.Y))
	}
	p.Close()
	s.fillPath(&p, c)
}

// FillGradient implements core.Surface. The rectangle is split into a grid
// whose corners carry the gradient color; the GPU interpolates between them.
func (s *Surface) FillGradient(r core.Rect, g core.Gradient) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	vs, is := gradientMesh(r, g, gradientCells)
	for i := range vs {
		vs[i].ColorR *= float32(s.alpha)
		vs[i].ColorG *= float32(s.alpha)
		vs[i].ColorB *= float32(s.alpha)
		vs[i].ColorA *= float32(s.alpha)
	}
	s.img.DrawTriangles(vs, is, whiteSubImage(), &ebiten.DrawTrianglesOptions{})
}

// gradientMesh builds an n x n grid of quads over r with per-vertex colors.
func gradientMesh(r core.Rect, g core.Gradient, n int) ([]ebiten.Vertex, []uint16) {
	vs := make([]ebiten.Vertex, 0, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			p := core.Vec{X: r.X + r.W*float64(i)/float64(n), Y: r.Y + r.H*float64(j)/float64(n)}
			cr, cg, cb, ca := premultiplied(g.At(g.Offset(p)), 1)
			vs = append(vs, ebiten.Vertex{
				DstX: f32(p.X), DstY: f32(p.Y),
				SrcX: 1, SrcY: 1,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
	}
	is := make([]uint16, 0, n*n*6)
	row := uint16(n + 1)
	for j := range uint16(n) {
		for i := range uint16(n) {
			a := j*row + i
			b, c, d := a+1, a+row, a+row+1
			is = append(is, a, b, c, b, d, c)
		}
	}
	return vs, is
}

// FillText implements core.Surface. Size is the glyph height in pixels;
// bold text is drawn twice with a one pixel offset.
func (s *Surface) FillText(str string, x, y float64, style core.TextStyle) {
	src := faceSource()
	if str == "" || src == nil {
		return
	}
	size := style.Size
	if size <= 0 {
		size = 16
	}
	face, ok := faces[size]
	if !ok {
		face = &text.GoTextFace{Source: src, Size: size}
		faces[size] = face
	}

	c := style.Color
	if c == nil {
		c = core.ColorWhite
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = textAlign(style.Align)
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(s.color(c))
	text.Draw(s.img, str, face, op)
	if style.Bold {
		op.GeoM.Translate(1, 0)
		text.Draw(s.img, str, face, op)
	}
}

func textAlign(a core.Align) text.Align {
	switch a {
	case core.AlignCenter:
		return text.AlignCenter
	case core.AlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

func (s *Surface) fillPath(p *vector.Path, c core.Color) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	s.drawPath(vs, is, c)
}

func (s *Surface) strokePath(p *vector.Path, width float64, c core.Color) {
	op := &vector.StrokeOptions{Width: f32(math.Max(width, 1)), LineJoin: vector.LineJoinRound, LineCap: vector.LineCapRound}
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, op)
	s.drawPath(vs, is, c)
}

func (s *Surface) drawPath(vs []ebiten.Vertex, is []uint16, c core.Color) {
	cr, cg, cb, ca := premultiplied(c, s.alpha)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = cr, cg, cb, ca
	}
	s.img.DrawTriangles(vs, is, whiteSubImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// color applies the surface alpha to c.
func (s *Surface) color(c core.Color) color.Color {
	if s.alpha >= 1 && core.Alpha(c) >= 1 {
		return c
	}
	return core.WithAlpha(c, core.Alpha(c)*s.alpha)
}

// premultiplied returns c as premultiplied vertex color components.
func premultiplied(c core.Color, alpha float64) (r, g, b, a float32) {
	cf := core.ToColorful(c).Clamped()
	av := core.Alpha(c) * alpha
	return float32(cf.R * av), float32(cf.G * av), float32(cf.B * av), float32(av)
}

func f32(v float64) float32 {
	return float32(v)
}
