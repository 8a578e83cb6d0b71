package frame

import (
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Scope is a FrameScheduler view of a Loop that remembers what it requested.
// Closing the scope cancels everything still pending and turns later
// requests into no-ops, so a disposed game cannot leave a frame behind.
type Scope struct {
	loop   *Loop
	ids    map[core.FrameID]struct{}
	closed bool
}

// Scope creates a new tracking view of the loop.
func (l *Loop) Scope() *Scope {
	return &Scope{loop: l, ids: make(map[core.FrameID]struct{})}
}

// Request implements core.FrameScheduler. After Close it returns zero and
// drops cb.
func (s *Scope) Request(cb core.FrameCallback) core.FrameID {
	if s.closed {
		return 0
	}
	var id core.FrameID
	id = s.loop.Request(func(ts time.Duration) {
		delete(s.ids, id)
		cb(ts)
	})
	s.ids[id] = struct{}{}
	return id
}

// Cancel implements core.FrameScheduler.
func (s *Scope) Cancel(id core.FrameID) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	s.loop.Cancel(id)
}

// Pending returns how many of this scope's requests are still queued.
func (s *Scope) Pending() int {
	return len(s.ids)
}

// Close cancels all pending requests made through the scope. Safe to call
// more than once.
func (s *Scope) Close() {
	for id := range s.ids {
		s.loop.Cancel(id)
	}
	clear(s.ids)
	s.closed = true
}
