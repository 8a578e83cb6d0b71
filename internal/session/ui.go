package session

import "github.com/vovakirdan/canvas-arcade/internal/core"

// uiScope is the HostUI a game sees. It tracks the affordances the game
// added so they can be removed with the game, and ignores everything once
// closed.
type uiScope struct {
	ui       core.HostUI
	ids      []core.AffordanceID
	closed   bool
	onRemove func()
}

func newUIScope(ui core.HostUI, onRemove func()) *uiScope {
	return &uiScope{ui: ui, onRemove: onRemove}
}

func (s *uiScope) ShowPrompt(text string) {
	if !s.closed {
		s.ui.ShowPrompt(text)
	}
}

func (s *uiScope) HidePrompt() {
	if !s.closed {
		s.ui.HidePrompt()
	}
}

func (s *uiScope) SetScrollLock(locked bool) {
	if !s.closed {
		s.ui.SetScrollLock(locked)
	}
}

func (s *uiScope) SetControlsVisible(visible bool) {
	if !s.closed {
		s.ui.SetControlsVisible(visible)
	}
}

func (s *uiScope) AddAffordance(label string, onActivate func()) core.AffordanceID {
	if s.closed {
		return 0
	}
	id := s.ui.AddAffordance(label, onActivate)
	s.ids = append(s.ids, id)
	return id
}

func (s *uiScope) RemoveAffordance(id core.AffordanceID) {
	for i, own := range s.ids {
		if own == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			s.ui.RemoveAffordance(id)
			if !s.closed && s.onRemove != nil {
				s.onRemove()
			}
			return
		}
	}
}

// Len returns the number of affordances the game currently shows.
func (s *uiScope) Len() int {
	return len(s.ids)
}

// Close removes the game's remaining affordances.
func (s *uiScope) Close() {
	s.closed = true
	for _, id := range s.ids {
		s.ui.RemoveAffordance(id)
	}
	s.ids = nil
}
