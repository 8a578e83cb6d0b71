// Package hostui keeps the host-side state behind core.HostUI: the prompt,
// the scroll lock, control visibility and the affordance list. Each host
// renders that state its own way.
package hostui

import "github.com/vovakirdan/canvas-arcade/internal/core"

// Affordance is one activatable host control.
type Affordance struct {
	ID    core.AffordanceID
	Label string
	fn    func()
}

// State implements core.HostUI. It is confined to the host's frame goroutine.
type State struct {
	prompt      string
	promptShown bool
	scrollLock  bool
	controls    bool
	items       []Affordance
	next        core.AffordanceID
}

// New returns a state with the controls visible and nothing else shown.
func New() *State {
	return &State{controls: true}
}

func (s *State) ShowPrompt(text string) { s.prompt, s.promptShown = text, true }
func (s *State) HidePrompt()            { s.promptShown = false }

func (s *State) SetScrollLock(locked bool)       { s.scrollLock = locked }
func (s *State) SetControlsVisible(visible bool) { s.controls = visible }

func (s *State) AddAffordance(label string, onActivate func()) core.AffordanceID {
	s.next++
	s.items = append(s.items, Affordance{ID: s.next, Label: label, fn: onActivate})
	return s.next
}

// RemoveAffordance ignores ids that are not shown.
func (s *State) RemoveAffordance(id core.AffordanceID) {
	for i, a := range s.items {
		if a.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Prompt returns the prompt text and whether it is shown.
func (s *State) Prompt() (string, bool) { return s.prompt, s.promptShown }

// ScrollLocked reports whether the page should not scroll under the game.
func (s *State) ScrollLocked() bool { return s.scrollLock }

// ControlsVisible reports whether the host's control help should be shown.
func (s *State) ControlsVisible() bool { return s.controls }

// Affordances returns the shown affordances, oldest first.
func (s *State) Affordances() []Affordance {
	return append([]Affordance(nil), s.items...)
}

// Activate runs the oldest affordance. It reports false when none is shown.
func (s *State) Activate() bool {
	if len(s.items) == 0 {
		return false
	}
	return s.ActivateID(s.items[0].ID)
}

// ActivateID runs the affordance with the given id. The callback may add or
// remove affordances.
func (s *State) ActivateID(id core.AffordanceID) bool {
	for _, a := range s.items {
		if a.ID == id {
			if a.fn != nil {
				a.fn()
			}
			return true
		}
	}
	return false
}
