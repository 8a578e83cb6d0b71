package flappy

import (
	"math/rand"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

type star struct {
	pos   core.Vec
	size  float64
	alpha float64
}

// layer is one parallax band. Two copies are drawn side by side and wrap
// around once they scroll a full width.
type layer struct {
	offsets [2]float64
	speed   float64
}

func (l *layer) scroll(width float64) {
	for i := range l.offsets {
		l.offsets[i] -= l.speed
		if l.offsets[i] <= -width {
			l.offsets[i] += 2 * width
		}
	}
}

// scenery is the decorative backdrop. It has its own random source so that
// re-laying it out on resize never shifts the pipe sequence.
type scenery struct {
	rng       *rand.Rand
	w, h      float64
	stars     []star
	ridge     []core.Vec // Mountain outline, relative to the band's left edge
	starLayer layer
	ridgeBand layer
}

var (
	mountainTop    = core.MustHex("#3F51B5")
	mountainBottom = core.MustHex("#303F9F")
	starColor      = core.MustHex("#ffffff")
)

func newScenery(seed int64) *scenery {
	return &scenery{
		rng:       rand.New(rand.NewSource(seed)),
		starLayer: layer{speed: 0.1},
		ridgeBand: layer{speed: 1},
	}
}

func (s *scenery) layout(w, h float64) {
	s.w, s.h = w, h
	s.starLayer.offsets = [2]float64{0, w}
	s.ridgeBand.offsets = [2]float64{0, w}

	s.stars = s.stars[:0]
	for range 100 {
		s.stars = append(s.stars, star{
			pos:   core.Vec{X: s.rng.Float64() * w, Y: s.rng.Float64() * h / 2},
			size:  s.rng.Float64()*2 + 1,
			alpha: s.rng.Float64()*0.8 + 0.2,
		})
	}

	s.ridge = s.ridge[:0]
	band := min(200, h/3)
	s.ridge = append(s.ridge, core.Vec{X: 0, Y: band})
	for x := 0.0; x < w; {
		peak := (s.rng.Float64()*0.75 + 0.25) * band
		width := s.rng.Float64()*100 + 50
		s.ridge = append(s.ridge,
			core.Vec{X: x + width/2, Y: band - peak},
			core.Vec{X: min(x+width, w), Y: band},
		)
		x += width
	}
}

func (s *scenery) advance() {
	s.starLayer.scroll(s.w)
	s.ridgeBand.scroll(s.w)
}

func (s *scenery) draw(surf core.Surface) {
	for _, off := range s.starLayer.offsets {
		for _, st := range s.stars {
			surf.SetAlpha(st.alpha)
			surf.FillCircle(core.Vec{X: st.pos.X + off, Y: st.pos.Y}, st.size, starColor)
		}
	}
	surf.SetAlpha(1)

	if len(s.ridge) < 3 {
		return
	}
	band := s.ridge[0].Y
	top := s.h - band
	for _, off := range s.ridgeBand.offsets {
		pts := make([]core.Vec, len(s.ridge))
		for i, p := range s.ridge {
			pts[i] = core.Vec{X: p.X + off, Y: top + p.Y}
		}
		surf.FillPolygon(pts, core.ToColorful(mountainTop).BlendRgb(core.ToColorful(mountainBottom), 0.5))
	}
}
