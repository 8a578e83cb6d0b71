package input

import "github.com/vovakirdan/canvas-arcade/internal/core"

// Scope is an InputSource view of a Router that tracks its own bindings.
type Scope struct {
	router   *Router
	bindings []core.Binding
	closed   bool
}

// Scope creates a tracking view of the router.
func (r *Router) Scope() *Scope {
	return &Scope{router: r}
}

// OnKey implements core.InputSource. Returns zero once closed.
func (s *Scope) OnKey(h core.KeyHandler) core.Binding {
	if s.closed {
		return 0
	}
	b := s.router.OnKey(h)
	s.bindings = append(s.bindings, b)
	return b
}

// OnClick implements core.InputSource. Returns zero once closed.
func (s *Scope) OnClick(h core.ClickHandler) core.Binding {
	if s.closed {
		return 0
	}
	b := s.router.OnClick(h)
	s.bindings = append(s.bindings, b)
	return b
}

// Unbind implements core.InputSource.
func (s *Scope) Unbind(b core.Binding) {
	for i, own := range s.bindings {
		if own == b {
			s.bindings = append(s.bindings[:i], s.bindings[i+1:]...)
			s.router.Unbind(b)
			return
		}
	}
}

// Len returns the number of live bindings made through the scope.
func (s *Scope) Len() int {
	return len(s.bindings)
}

// Close removes every binding made through the scope. Safe to call twice.
func (s *Scope) Close() {
	for _, b := range s.bindings {
		s.router.Unbind(b)
	}
	s.bindings = nil
	s.closed = true
}
