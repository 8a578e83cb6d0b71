// Package input routes host key and click events to the listeners games
// register. Games bind on start and unbind on dispose; a Scope makes the
// unbinding automatic.
package input

import "github.com/vovakirdan/canvas-arcade/internal/core"

type listener struct {
	id    core.Binding
	key   core.KeyHandler
	click core.ClickHandler
}

// Router keeps listeners in registration order.
// Not safe for concurrent use.
type Router struct {
	listeners []listener
	next      core.Binding
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{}
}

// OnKey registers a key-down listener.
func (r *Router) OnKey(h core.KeyHandler) core.Binding {
	r.next++
	r.listeners = append(r.listeners, listener{id: r.next, key: h})
	return r.next
}

// OnClick registers a click listener.
func (r *Router) OnClick(h core.ClickHandler) core.Binding {
	r.next++
	r.listeners = append(r.listeners, listener{id: r.next, click: h})
	return r.next
}

// Unbind removes a listener. Unknown bindings are ignored.
func (r *Router) Unbind(b core.Binding) {
	for i, l := range r.listeners {
		if l.id == b {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (r *Router) Len() int {
	return len(r.listeners)
}

// DispatchKey delivers ev to every key listener. Listeners added or removed
// during dispatch take effect on the next event.
func (r *Router) DispatchKey(ev core.KeyEvent) {
	for _, l := range r.snapshot() {
		if l.key != nil && r.bound(l.id) {
			l.key(ev)
		}
	}
}

// DispatchClick delivers ev to every click listener.
func (r *Router) DispatchClick(ev core.ClickEvent) {
	for _, l := range r.snapshot() {
		if l.click != nil && r.bound(l.id) {
			l.click(ev)
		}
	}
}

func (r *Router) snapshot() []listener {
	return append([]listener(nil), r.listeners...)
}

func (r *Router) bound(id core.Binding) bool {
	for _, l := range r.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}
