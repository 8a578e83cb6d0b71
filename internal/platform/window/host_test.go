package window

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/canvas"
	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/games/tictactoe"
	"github.com/vovakirdan/canvas-arcade/internal/session"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

// recView adapts the recording surface to the host's integer resize.
type recView struct {
	*canvas.Recorder
}

func (v recView) Resize(w, h int) {
	v.Recorder.Resize(float64(w), float64(h))
}

func newTestHost(t *testing.T, game string, store *storage.Store) (*Host, recView) {
	t.Helper()
	view := recView{canvas.NewRecorder(800, 600)}
	h, err := newHost(Options{
		Game:   game,
		Config: config.Default(),
		Store:  store,
		Player: "ana",
		Seed:   3,
		Width:  800,
		Height: 600 + footerHeight,
	}, view)
	require.NoError(t, err)
	t.Cleanup(h.mgr.Close)
	return h, view
}

func TestHostStartsGame(t *testing.T) {
	h, _ := newTestHost(t, "tictactoe", nil)

	assert.Equal(t, session.PhaseActive, h.Session().Phase())
	assert.True(t, h.ui.ScrollLocked())

	h.pressKey(ebiten.KeyDigit5)
	g, ok := h.Session().Active().(*tictactoe.Game)
	require.True(t, ok)
	assert.Equal(t, tictactoe.X, g.Board()[4])
}

func TestHostSelectionAndQuit(t *testing.T) {
	h, _ := newTestHost(t, "", nil)
	require.Equal(t, session.PhaseIdle, h.Session().Phase())

	h.pressKey(ebiten.KeyDigit1)
	require.Equal(t, "tictactoe", h.Session().Kind())

	h.pressKey(ebiten.KeyQ)
	assert.False(t, h.quit, "q is game input while a game runs")

	h.pressKey(ebiten.KeyEscape)
	require.Equal(t, session.PhaseIdle, h.Session().Phase())
	h.pressKey(ebiten.KeyQ)
	assert.True(t, h.quit)
}

func TestHostFooterButton(t *testing.T) {
	h, _ := newTestHost(t, "tictactoe", nil)

	buttons := h.buttons()
	require.Len(t, buttons, 1)
	assert.Equal(t, "Back to Menu", buttons[0].label)
	assert.Equal(t, core.NewRect(642, 606, buttonWidth, buttonHeight), buttons[0].rect)

	h.click(10, 620)
	assert.Equal(t, session.PhaseActive, h.Session().Phase(), "footer outside a button does nothing")

	h.click(700, 620)
	assert.Equal(t, session.PhaseIdle, h.Session().Phase())
	assert.Empty(t, h.buttons())
}

func TestHostKeyBActivatesAffordance(t *testing.T) {
	h, _ := newTestHost(t, "tictactoe", nil)

	h.pressKey(ebiten.KeyB)

	assert.Equal(t, session.PhaseIdle, h.Session().Phase())
}

func TestHostClickReachesGame(t *testing.T) {
	h, _ := newTestHost(t, "tictactoe", nil)

	// Center cell of a 360px board centered on 800x600.
	h.click(400, 300)

	g := h.Session().Active().(*tictactoe.Game)
	assert.Equal(t, tictactoe.X, g.Board()[4])
}

func TestHostRecordsWin(t *testing.T) {
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	h, _ := newTestHost(t, "tictactoe", store)
	for _, k := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit4, ebiten.KeyDigit2, ebiten.KeyDigit5, ebiten.KeyDigit3} {
		h.pressKey(k)
	}

	scores, err := store.TopScores("tictactoe", 0)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "ana", scores[0].Player)
}

func TestHostLayoutResizes(t *testing.T) {
	h, view := newTestHost(t, "tictactoe", nil)

	w, hh := h.Layout(1024, 768)

	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, hh)
	sw, sh := view.Size()
	assert.Equal(t, 1024.0, sw)
	assert.Equal(t, float64(768-footerHeight), sh)
}

func TestKeyToCore(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want core.Key
		ok   bool
	}{
		{ebiten.KeyArrowUp, core.KeyUp, true},
		{ebiten.KeyW, core.KeyUp, true},
		{ebiten.KeyD, core.KeyRight, true},
		{ebiten.KeySpace, core.KeySpace, true},
		{ebiten.KeyEscape, core.KeyEscape, true},
		{ebiten.KeyDigit0, core.Key("0"), true},
		{ebiten.KeyDigit9, core.Key("9"), true},
		{ebiten.KeyNumpad7, core.Key("7"), true},
		{ebiten.KeyP, core.Key("p"), true},
		{ebiten.KeyShiftLeft, core.KeyNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := KeyToCore(tt.key)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestGradientMesh(t *testing.T) {
	g := core.Gradient{
		Kind: core.GradientLinear,
		From: core.Vec{X: 0, Y: 0},
		To:   core.Vec{X: 0, Y: 100},
		Stops: []core.GradientStop{
			{Offset: 0, Color: color.RGBA{255, 0, 0, 255}},
			{Offset: 1, Color: color.RGBA{0, 0, 255, 255}},
		},
	}
	vs, is := gradientMesh(core.NewRect(0, 0, 100, 100), g, 4)

	require.Len(t, vs, 25)
	assert.Len(t, is, 4*4*6)

	top, bottom := vs[0], vs[24]
	assert.InDelta(t, 1, top.ColorR, 1e-6)
	assert.InDelta(t, 0, top.ColorB, 1e-6)
	assert.InDelta(t, 0, bottom.ColorR, 1e-6)
	assert.InDelta(t, 1, bottom.ColorB, 1e-6)
	assert.Equal(t, float32(100), bottom.DstX)
	assert.Equal(t, float32(100), bottom.DstY)
	for _, i := range is {
		assert.Less(t, int(i), len(vs))
	}
}

func TestPremultiplied(t *testing.T) {
	r, g, b, a := premultiplied(color.NRGBA{R: 255, G: 0, B: 0, A: 255}, 0.5)

	assert.InDelta(t, 0.5, r, 1e-3)
	assert.InDelta(t, 0, g, 1e-6)
	assert.InDelta(t, 0, b, 1e-6)
	assert.InDelta(t, 0.5, a, 1e-3)
}
