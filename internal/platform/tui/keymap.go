package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// KeyMap holds the host-level bindings. Everything it does not claim is
// forwarded to the session as a core.Key.
type KeyMap struct {
	Move   key.Binding
	Action key.Binding
	Cells  key.Binding
	Back   key.Binding
	Menu   key.Binding
	Scores key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Action, k.Menu, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Action, k.Cells},
		{k.Back, k.Menu, k.Scores},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default host bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"),
			key.WithHelp("arrows/wasd", "move"),
		),
		Action: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/flap/drop"),
		),
		Cells: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick game/cell"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "back to menu"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "high scores"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ToCoreKey translates a Bubble Tea key into the engine's key names. WASD
// doubles as the arrow keys.
func ToCoreKey(msg tea.KeyMsg) (core.Key, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return core.KeyUp, true
	case tea.KeyDown:
		return core.KeyDown, true
	case tea.KeyLeft:
		return core.KeyLeft, true
	case tea.KeyRight:
		return core.KeyRight, true
	case tea.KeySpace:
		return core.KeySpace, true
	case tea.KeyEnter:
		return core.KeyEnter, true
	case tea.KeyEsc:
		return core.KeyEscape, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return core.KeyNone, false
		}
		switch r := msg.Runes[0]; r {
		case ' ':
			return core.KeySpace, true
		case 'w':
			return core.KeyUp, true
		case 'a':
			return core.KeyLeft, true
		case 's':
			return core.KeyDown, true
		case 'd':
			return core.KeyRight, true
		default:
			return core.Key(string(r)), true
		}
	}
	return core.KeyNone, false
}
