// Package frame implements the per-frame scheduling primitive hosts hand to
// games. A Loop collects one-shot callbacks and runs them on the next Tick.
package frame

import (
	"time"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Loop is a one-shot frame callback queue driven by the host.
// Callbacks requested during a Tick run on the following Tick, never the
// current one. Loop is not safe for concurrent use; it lives on the host's
// frame goroutine.
type Loop struct {
	pending *intmap.Map[core.FrameID, core.FrameCallback]
	order   []core.FrameID
	next    core.FrameID
	last    time.Duration
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{
		pending: intmap.New[core.FrameID, core.FrameCallback](16),
	}
}

// Request schedules cb for the next Tick and returns its ID.
func (l *Loop) Request(cb core.FrameCallback) core.FrameID {
	l.next++
	id := l.next
	l.pending.Put(id, cb)
	l.order = append(l.order, id)
	return id
}

// Cancel removes a pending request. Unknown or already-run IDs are ignored.
func (l *Loop) Cancel(id core.FrameID) {
	l.pending.Del(id)
}

// Pending returns the number of callbacks waiting for the next Tick.
func (l *Loop) Pending() int {
	return l.pending.Len()
}

// Tick runs every callback that was pending when it was called, in request
// order. Timestamps lower than the previous tick are raised to it.
func (l *Loop) Tick(ts time.Duration) {
	if ts < l.last {
		ts = l.last
	}
	l.last = ts

	batch := l.order
	l.order = nil
	for _, id := range batch {
		cb, ok := l.pending.Get(id)
		if !ok {
			continue // cancelled
		}
		l.pending.Del(id)
		cb(ts)
	}
}

// Reset drops every pending callback.
func (l *Loop) Reset() {
	l.pending.Clear()
	l.order = nil
}
