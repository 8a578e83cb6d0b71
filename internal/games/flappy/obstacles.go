package flappy

import (
	"math/rand"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Pipe represents a vertical obstacle pair with a gap for the bird to pass through.
type Pipe struct {
	X         float64 // Left edge
	TopHeight float64 // Bottom of the top pipe
	BottomY   float64 // Top of the bottom pipe
	Counted   bool    // Whether the bird has passed this pipe (for scoring)
}

// TopRect returns the collision rectangle for the top pipe.
func (p Pipe) TopRect(width float64) core.Rect {
	return core.NewRect(p.X, 0, width, p.TopHeight)
}

// BottomRect returns the collision rectangle for the bottom pipe.
func (p Pipe) BottomRect(width, screenH float64) core.Rect {
	return core.NewRect(p.X, p.BottomY, width, screenH-p.BottomY)
}

// PipeField handles spawning, movement, scoring and removal of pipes.
type PipeField struct {
	pipes []Pipe
	rng   *rand.Rand

	screenW, screenH float64
	width            float64
	gap              float64
	spacing          float64
	minHeight        float64
}

// NewPipeField creates an empty field drawing gap positions from rng.
func NewPipeField(rng *rand.Rand) *PipeField {
	return &PipeField{
		pipes: make([]Pipe, 0, 8),
		rng:   rng,
	}
}

// Layout sets the screen size and pipe geometry.
func (f *PipeField) Layout(screenW, screenH, width, gap, spacing, minHeight float64) {
	f.screenW, f.screenH = screenW, screenH
	f.width, f.gap, f.spacing, f.minHeight = width, gap, spacing, minHeight
}

// Reset clears all pipes.
func (f *PipeField) Reset() {
	f.pipes = f.pipes[:0]
}

// Spawn appends a pipe at the right edge with a random gap that keeps at
// least minHeight of pipe above and below.
func (f *PipeField) Spawn() {
	avail := max(0, f.screenH-f.minHeight*2-f.gap)
	top := f.rng.Float64()*avail + f.minHeight
	f.pipes = append(f.pipes, Pipe{
		X:         f.screenW,
		TopHeight: top,
		BottomY:   top + f.gap,
	})
}

// Update moves pipes left by speed, counts the ones whose trailing edge has
// passed birdX, drops off-screen pipes and spawns a new one when the last is
// far enough in. It returns how many pipes were counted this call.
func (f *PipeField) Update(speed, birdX float64) int {
	passed := 0
	live := f.pipes[:0]
	for _, p := range f.pipes {
		p.X -= speed
		if !p.Counted && p.X+f.width < birdX {
			p.Counted = true
			passed++
		}
		if p.X+f.width >= 0 {
			live = append(live, p)
		}
	}
	f.pipes = live

	if len(f.pipes) == 0 || f.pipes[len(f.pipes)-1].X < f.screenW-f.spacing {
		f.Spawn()
	}
	return passed
}

// Collides reports whether a bird centred at (x, y) with the given size
// overlaps a pipe horizontally while outside its gap.
func (f *PipeField) Collides(x, y, size float64) bool {
	half := size / 2
	for _, p := range f.pipes {
		if x+half > p.X && x-half < p.X+f.width {
			if y-half < p.TopHeight || y+half > p.BottomY {
				return true
			}
		}
	}
	return false
}

// Pipes returns the current list of pipes.
func (f *PipeField) Pipes() []Pipe {
	return f.pipes
}

// Width returns the pipe width.
func (f *PipeField) Width() float64 {
	return f.width
}
