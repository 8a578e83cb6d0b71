// Package particle implements the short-lived visual feedback every game
// spawns: bursts of fading dots that move on their own and are discarded
// when their life runs out.
package particle

import (
	"math/rand"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

// Sample draws a value from the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Particle is a single dot.
type Particle struct {
	Pos     core.Vec
	Vel     core.Vec
	Size    float64
	Color   core.Color
	Life    int
	MaxLife int
}

// Burst describes one Spawn call.
type Burst struct {
	Origin core.Vec
	Count  int
	VelX   Range
	VelY   Range
	Size   Range
	Life   int

	// Color is used when ColorFn is nil.
	Color   core.Color
	ColorFn func(rng *rand.Rand) core.Color
}

// Pool owns the live particles of one game.
type Pool struct {
	rng       *rand.Rand
	particles []Particle
}

// NewPool creates an empty pool drawing randomness from rng.
func NewPool(rng *rand.Rand) *Pool {
	return &Pool{rng: rng}
}

// Spawn appends b.Count particles at b.Origin.
func (p *Pool) Spawn(b Burst) {
	if b.Count <= 0 || b.Life <= 0 {
		return
	}
	for range b.Count {
		c := b.Color
		if b.ColorFn != nil {
			c = b.ColorFn(p.rng)
		}
		p.particles = append(p.particles, Particle{
			Pos:     b.Origin,
			Vel:     core.Vec{X: b.VelX.Sample(p.rng), Y: b.VelY.Sample(p.rng)},
			Size:    b.Size.Sample(p.rng),
			Color:   c,
			Life:    b.Life,
			MaxLife: b.Life,
		})
	}
}

// Advance moves every particle by its velocity, ages it by one frame and
// drops the expired ones.
func (p *Pool) Advance() {
	live := p.particles[:0]
	for _, pt := range p.particles {
		pt.Pos = pt.Pos.Add(pt.Vel)
		pt.Life--
		if pt.Life > 0 {
			live = append(live, pt)
		}
	}
	clear(p.particles[len(live):])
	p.particles = live
}

// Render draws each particle with opacity Life/MaxLife.
func (p *Pool) Render(s core.Surface) {
	for _, pt := range p.particles {
		s.SetAlpha(float64(pt.Life) / float64(pt.MaxLife))
		s.FillCircle(pt.Pos, pt.Size, pt.Color)
	}
	s.SetAlpha(1)
}

// Len returns the number of live particles.
func (p *Pool) Len() int {
	return len(p.particles)
}

// Particles returns the live particles. The slice is only valid until the
// next Spawn or Advance.
func (p *Pool) Particles() []Particle {
	return p.particles
}

// Clear removes every particle.
func (p *Pool) Clear() {
	p.particles = nil
}
