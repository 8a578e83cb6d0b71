package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/games/tictactoe"
	"github.com/vovakirdan/canvas-arcade/internal/session"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

func newTestModel(t *testing.T, game string, store *storage.Store) Model {
	t.Helper()
	m, err := NewModel(Options{
		Game:   game,
		Config: config.Default(),
		Store:  store,
		Player: "ana",
		Seed:   7,
		Width:  80,
		Height: 26,
	})
	require.NoError(t, err)
	t.Cleanup(m.mgr.Close)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestNewModelSizesRaster(t *testing.T) {
	m := newTestModel(t, "", nil)

	b := m.raster.Image().Bounds()
	assert.Equal(t, 80, b.Dx())
	assert.Equal(t, 48, b.Dy())
	assert.Equal(t, session.PhaseIdle, m.Session().Phase())
	prompt, shown := m.ui.Prompt()
	assert.True(t, shown)
	assert.Equal(t, session.PromptSelect, prompt)
}

func TestNewModelUnknownGame(t *testing.T) {
	_, err := NewModel(Options{Game: "nope", Config: config.Default()})
	assert.Error(t, err)
}

func TestModelKeysReachGame(t *testing.T) {
	m := newTestModel(t, "tictactoe", nil)
	require.Equal(t, session.PhaseActive, m.Session().Phase())
	assert.True(t, m.ui.ScrollLocked())
	assert.False(t, m.ui.ControlsVisible())

	m, _ = send(t, m, runes("5"))

	g, ok := m.Session().Active().(*tictactoe.Game)
	require.True(t, ok)
	assert.Equal(t, tictactoe.X, g.Board()[4])
}

func TestModelWinIsRecorded(t *testing.T) {
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	m := newTestModel(t, "tictactoe", store)
	for _, k := range []string{"1", "4", "2", "5", "3"} {
		m, _ = send(t, m, runes(k))
	}
	require.Equal(t, session.PhaseEnded, m.Session().Phase())

	scores, err := store.TopScores("tictactoe", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 1, scores[0].Score)
	assert.Equal(t, "ana", scores[0].Player)
	assert.Equal(t, m.Session().RunID(), scores[0].RunID)
}

func TestModelBackAffordance(t *testing.T) {
	m := newTestModel(t, "tictactoe", nil)
	require.Len(t, m.ui.Affordances(), 1)

	m, _ = send(t, m, runes("b"))

	assert.Equal(t, session.PhaseIdle, m.Session().Phase())
	assert.Empty(t, m.ui.Affordances())
	assert.False(t, m.ui.ScrollLocked())
}

func TestModelStatusLineClick(t *testing.T) {
	m := newTestModel(t, "tictactoe", nil)

	m, _ = send(t, m, tea.MouseMsg{X: 40, Y: 24, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, session.PhaseIdle, m.Session().Phase())
}

func TestModelQuitOnlyWhenIdle(t *testing.T) {
	m := newTestModel(t, "tictactoe", nil)

	m, cmd := send(t, m, runes("q"))
	assert.Nil(t, cmd)
	assert.False(t, m.quitting)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, session.PhaseIdle, m.Session().Phase())

	m, cmd = send(t, m, runes("q"))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestModelSelectsFromMenu(t *testing.T) {
	m := newTestModel(t, "", nil)

	// Only tictactoe is registered in this package, so it is item 1.
	m, _ = send(t, m, runes("1"))

	assert.Equal(t, session.PhaseActive, m.Session().Phase())
	assert.Equal(t, "tictactoe", m.Session().Kind())
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, "tictactoe", nil)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})

	b := m.raster.Image().Bounds()
	assert.Equal(t, 40, b.Dx())
	assert.Equal(t, 20, b.Dy())
}

func TestModelTickDraws(t *testing.T) {
	m := newTestModel(t, "tictactoe", nil)

	m, cmd := send(t, m, TickMsg{})
	assert.NotNil(t, cmd)
	assert.NotEmpty(t, m.raster.Texts())
	assert.Contains(t, m.View(), "Back to Menu")
}

func TestModelScoreboardToggle(t *testing.T) {
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	m := newTestModel(t, "", store)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, m.scores)
	assert.Contains(t, m.View(), "HIGH SCORES")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	assert.Nil(t, m.scores)
}

func TestToCoreKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Key
		ok   bool
	}{
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.KeyLeft, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.KeySpace, true},
		{"space rune", runes(" "), core.KeySpace, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.KeyEnter, true},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.KeyEscape, true},
		{"wasd", runes("w"), core.KeyUp, true},
		{"digit", runes("7"), core.Key("7"), true},
		{"paste", runes("abc"), core.KeyNone, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.KeyNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToCoreKey(tt.msg)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
