// Package lifecycle holds the start/dispose machinery shared by every game:
// the self-rearming frame continuation, the listeners a game owns and the
// single host affordance it may show.
package lifecycle

import (
	"errors"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// ErrDisposed is returned when starting a game that was already disposed.
var ErrDisposed = errors.New("lifecycle: game disposed")

// StepFunc runs one frame: update, then draw.
type StepFunc func(ts time.Duration)

// Runner owns a game's frame chain, listeners and affordance.
type Runner struct {
	frames core.FrameScheduler
	input  core.InputSource
	ui     core.HostUI

	step       StepFunc
	pending    core.FrameID
	bindings   []core.Binding
	affordance core.AffordanceID
	running    bool
	disposed   bool
}

// NewRunner creates a runner using the given host services.
func NewRunner(frames core.FrameScheduler, input core.InputSource, ui core.HostUI) *Runner {
	return &Runner{frames: frames, input: input, ui: ui}
}

// Start calls setup once and schedules the first frame. A second call while
// running does nothing.
func (r *Runner) Start(step StepFunc, setup func()) error {
	if r.disposed {
		return ErrDisposed
	}
	if r.running {
		return nil
	}
	r.running = true
	r.step = step
	if setup != nil {
		setup()
	}
	if r.disposed {
		return ErrDisposed // setup disposed us
	}
	r.pending = r.frames.Request(r.frame)
	return nil
}

func (r *Runner) frame(ts time.Duration) {
	r.pending = 0
	if r.disposed {
		return
	}
	r.step(ts)
	if r.disposed {
		return
	}
	r.pending = r.frames.Request(r.frame)
}

// BindKey registers a key listener released on Dispose.
func (r *Runner) BindKey(h core.KeyHandler) {
	if r.disposed {
		return
	}
	r.bindings = append(r.bindings, r.input.OnKey(h))
}

// BindClick registers a click listener released on Dispose.
func (r *Runner) BindClick(h core.ClickHandler) {
	if r.disposed {
		return
	}
	r.bindings = append(r.bindings, r.input.OnClick(h))
}

// Offer shows the game's single affordance, replacing any earlier one.
func (r *Runner) Offer(label string, onActivate func()) {
	if r.disposed || r.ui == nil {
		return
	}
	r.withdraw()
	r.affordance = r.ui.AddAffordance(label, onActivate)
}

func (r *Runner) withdraw() {
	if r.affordance != 0 {
		r.ui.RemoveAffordance(r.affordance)
		r.affordance = 0
	}
}

// Dispose releases listeners, the pending frame and the affordance.
// It reports whether this call did the work; later calls return false.
func (r *Runner) Dispose() bool {
	if r.disposed {
		return false
	}
	r.disposed = true
	r.running = false

	for _, b := range r.bindings {
		r.input.Unbind(b)
	}
	r.bindings = nil

	if r.pending != 0 {
		r.frames.Cancel(r.pending)
		r.pending = 0
	}
	if r.ui != nil {
		r.withdraw()
	}
	return true
}

// Disposed reports whether Dispose has run.
func (r *Runner) Disposed() bool {
	return r.disposed
}

// Running reports whether the frame chain is active.
func (r *Runner) Running() bool {
	return r.running
}

// Bindings returns the number of listeners currently held.
func (r *Runner) Bindings() int {
	return len(r.bindings)
}
