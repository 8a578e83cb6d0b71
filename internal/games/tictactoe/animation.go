package tictactoe

import "github.com/vovakirdan/canvas-arcade/internal/core"

// AnimKind selects what an animation draws.
type AnimKind int

const (
	AnimX AnimKind = iota
	AnimO
	AnimLine
)

// Animation is a transient draw-in effect advanced once per frame.
type Animation struct {
	Kind     AnimKind
	Cell     int      // Board index for AnimX/AnimO
	From, To core.Vec // Endpoints for AnimLine
	Color    core.Color
	Ticks    int
	Duration int
}

// Progress returns how far the animation has run, in [0,1].
func (a Animation) Progress() float64 {
	if a.Duration <= 0 {
		return 1
	}
	return min(1, float64(a.Ticks)/float64(a.Duration))
}

// advanceAnimations ages every animation by one frame and drops the finished
// ones.
func advanceAnimations(anims []Animation) []Animation {
	live := anims[:0]
	for _, a := range anims {
		a.Ticks++
		if a.Ticks < a.Duration {
			live = append(live, a)
		}
	}
	return live
}

// animating reports whether cell still has a draw-in running.
func animating(anims []Animation, cell int) bool {
	for _, a := range anims {
		if a.Kind != AnimLine && a.Cell == cell {
			return true
		}
	}
	return false
}
