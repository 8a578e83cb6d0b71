package session

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/canvas"
	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/frame"
	"github.com/vovakirdan/canvas-arcade/internal/games/gametest"
	"github.com/vovakirdan/canvas-arcade/internal/games/tictactoe"
	"github.com/vovakirdan/canvas-arcade/internal/input"
	"github.com/vovakirdan/canvas-arcade/internal/registry"

	_ "github.com/vovakirdan/canvas-arcade/internal/games/snake"
)

const frameDur = 16 * time.Millisecond

// stubGame is a minimal game with no Dispose or Resize.
type stubGame struct {
	env     registry.Env
	updates int
	draws   int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Start() error {
	var step core.FrameCallback
	step = func(ts time.Duration) {
		g.Update(ts)
		g.Draw()
		g.env.Frames.Request(step)
	}
	g.env.Input.OnKey(func(ev core.KeyEvent) {
		switch ev.Key {
		case "e":
			g.env.Reporter.ReportEnded(7)
		case "r":
			g.env.Reporter.ReportRestarted()
		case "s":
			g.env.Reporter.ReportScore(3)
		case "z":
			g.env.Reporter.ReportScore(0)
		}
	})
	g.env.UI.AddAffordance("Back to Menu", g.env.Exit)
	g.env.Frames.Request(step)
	return nil
}

func (g *stubGame) Update(time.Duration) { g.updates++ }
func (g *stubGame) Draw()                { g.draws++ }

// disposingGame counts Dispose calls and can panic in them.
type disposingGame struct {
	stubGame
	disposed int
	panics   bool
}

func (g *disposingGame) Dispose() {
	g.disposed++
	if g.panics {
		panic("dispose failed")
	}
}

type fixture struct {
	m       *Manager
	surface *canvas.Recorder
	loop    *frame.Loop
	router  *input.Router
	ui      *gametest.UI
	results []Result
	now     time.Duration
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		surface: canvas.NewRecorder(800, 600),
		loop:    frame.NewLoop(),
		router:  input.NewRouter(),
		ui:      gametest.NewUI(),
	}
	m, err := New(Options{
		Surface: f.surface,
		Loop:    f.loop,
		Router:  f.router,
		UI:      f.ui,
		Config:  config.Default(),
		Seed:    1,
		OnEnded: func(r Result) { f.results = append(f.results, r) },
	})
	require.NoError(t, err)
	f.m = m
	return f
}

func (f *fixture) frames(n int) {
	for range n {
		f.now += frameDur
		f.m.Tick(f.now)
	}
}

func register(t *testing.T, id string, fn registry.Factory) {
	t.Helper()
	registry.Register(registry.GameInfo{ID: id, Title: id}, fn)
	t.Cleanup(func() { registry.Unregister(id) })
}

func TestNewRequiresHost(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestSelectGameStartsAndLocks(t *testing.T) {
	var g *stubGame
	register(t, "t-stub", func(env registry.Env) (registry.Game, error) {
		g = &stubGame{env: env}
		return g, nil
	})
	f := newFixture(t)
	f.ui.ShowPrompt("old")

	require.NoError(t, f.m.SelectGame("t-stub"))
	assert.Equal(t, PhaseActive, f.m.Phase())
	assert.Equal(t, "t-stub", f.m.Kind())
	assert.Same(t, g, f.m.Active())
	assert.True(t, f.ui.ScrollLock)
	assert.False(t, f.ui.Controls)
	assert.False(t, f.ui.PromptShown)

	f.frames(3)
	assert.Equal(t, 3, g.updates)
	assert.Equal(t, 3, g.draws)
}

func TestScoreAndEnd(t *testing.T) {
	register(t, "t-stub", func(env registry.Env) (registry.Game, error) {
		return &stubGame{env: env}, nil
	})
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("t-stub"))
	run := f.m.RunID()

	f.router.DispatchKey(core.KeyEvent{Key: "s"})
	assert.Equal(t, 3, f.m.Score())
	assert.False(t, f.ui.PromptShown, "score stays hidden during play")

	f.frames(10)
	f.router.DispatchKey(core.KeyEvent{Key: "e"})
	assert.Equal(t, PhaseEnded, f.m.Phase())
	assert.Equal(t, 7, f.m.Score())
	assert.True(t, f.ui.PromptShown)
	assert.Equal(t, "Game Over! Final Score: 7", f.ui.Prompt)
	require.Len(t, f.results, 1)
	assert.Equal(t, Result{RunID: run, Kind: "t-stub", Score: 7, Duration: 10 * frameDur}, f.results[0])

	f.router.DispatchKey(core.KeyEvent{Key: "s"})
	assert.Equal(t, "Game Over! Final Score: 3", f.ui.Prompt)

	f.router.DispatchKey(core.KeyEvent{Key: "r"})
	assert.Equal(t, PhaseActive, f.m.Phase())
	assert.False(t, f.ui.PromptShown)
	assert.NotEqual(t, run, f.m.RunID())
}

func TestScoreResetClosesRun(t *testing.T) {
	register(t, "t-stub", func(env registry.Env) (registry.Game, error) {
		return &stubGame{env: env}, nil
	})
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("t-stub"))
	run := f.m.RunID()

	f.router.DispatchKey(core.KeyEvent{Key: "z"})
	assert.Empty(t, f.results, "a zero score with nothing scored is not a run")

	f.router.DispatchKey(core.KeyEvent{Key: "s"})
	f.frames(4)
	f.router.DispatchKey(core.KeyEvent{Key: "z"})

	assert.Equal(t, PhaseActive, f.m.Phase())
	assert.Zero(t, f.m.Score())
	require.Len(t, f.results, 1)
	assert.Equal(t, Result{RunID: run, Kind: "t-stub", Score: 3, Duration: 4 * frameDur}, f.results[0])
	assert.NotEqual(t, run, f.m.RunID())
}

func TestRestartAfterEndDoesNotRecordAgain(t *testing.T) {
	register(t, "t-stub", func(env registry.Env) (registry.Game, error) {
		return &stubGame{env: env}, nil
	})
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("t-stub"))

	f.router.DispatchKey(core.KeyEvent{Key: "e"})
	f.router.DispatchKey(core.KeyEvent{Key: "r"})
	f.router.DispatchKey(core.KeyEvent{Key: "z"})

	assert.Len(t, f.results, 1)
	assert.Zero(t, f.m.Score())
}

func TestSwitchDisposesPrevious(t *testing.T) {
	var first *disposingGame
	register(t, "t-disp", func(env registry.Env) (registry.Game, error) {
		first = &disposingGame{stubGame: stubGame{env: env}}
		return first, nil
	})
	register(t, "t-stub", func(env registry.Env) (registry.Game, error) {
		return &stubGame{env: env}, nil
	})
	f := newFixture(t)

	require.NoError(t, f.m.SelectGame("t-disp"))
	old := first
	f.frames(2)
	require.NoError(t, f.m.SelectGame("t-stub"))

	assert.Equal(t, 1, old.disposed)
	assert.Equal(t, 1, f.loop.Pending(), "only the new game's frame is pending")
	assert.Equal(t, 1, f.router.Len())
	assert.Len(t, f.ui.Affordances, 1)

	f.frames(2)
	assert.Equal(t, 2, old.updates, "the old chain stopped")
}

func TestGameWithoutDisposeIsReleased(t *testing.T) {
	var g *stubGame
	register(t, "t-stub", func(env registry.Env) (registry.Game, error) {
		g = &stubGame{env: env}
		return g, nil
	})
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("t-stub"))
	f.frames(1)

	f.m.ReturnToSelection()

	assert.Equal(t, PhaseIdle, f.m.Phase())
	assert.Nil(t, f.m.Active())
	assert.Zero(t, f.loop.Pending())
	assert.Zero(t, f.router.Len())
	assert.Empty(t, f.ui.Affordances)
	assert.False(t, f.ui.ScrollLock)
	assert.True(t, f.ui.Controls)
	assert.Equal(t, PromptSelect, f.ui.Prompt)
	assert.Contains(t, f.surface.Texts(), "Select a Game")

	f.frames(3)
	assert.Equal(t, 1, g.updates)
}

func TestReturnToSelectionIdempotent(t *testing.T) {
	f := newFixture(t)
	f.m.ReturnToSelection()
	f.m.ReturnToSelection()
	assert.Equal(t, PhaseIdle, f.m.Phase())
	assert.Equal(t, PromptSelect, f.ui.Prompt)
}

func TestStaleReporterIgnored(t *testing.T) {
	var g *stubGame
	register(t, "t-stub", func(env registry.Env) (registry.Game, error) {
		g = &stubGame{env: env}
		return g, nil
	})
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("t-stub"))
	stale := g.env
	f.m.ReturnToSelection()

	stale.Reporter.ReportEnded(99)
	stale.Exit()
	assert.Equal(t, PhaseIdle, f.m.Phase())
	assert.Zero(t, f.m.Score())
	assert.Empty(t, f.results)
}

func TestStartFailures(t *testing.T) {
	boom := errors.New("boom")
	var disposed *disposingGame

	register(t, "t-ctor-err", func(registry.Env) (registry.Game, error) { return nil, boom })
	register(t, "t-ctor-panic", func(registry.Env) (registry.Game, error) { panic("bad ctor") })
	register(t, "t-start-panic", func(env registry.Env) (registry.Game, error) {
		disposed = &disposingGame{stubGame: stubGame{env: env}}
		return &panicStart{disposed}, nil
	})

	tests := []struct {
		kind string
		is   error
	}{
		{"t-ctor-err", boom},
		{"t-ctor-panic", nil},
		{"t-start-panic", nil},
		{"missing", registry.ErrUnknownGame},
	}
	for _, tc := range tests {
		f := newFixture(t)
		err := f.m.SelectGame(tc.kind)
		if err == nil {
			t.Errorf("%s: expected an error", tc.kind)
			continue
		}
		if tc.is != nil && !errors.Is(err, tc.is) {
			t.Errorf("%s: error %v does not wrap %v", tc.kind, err, tc.is)
		}
		if f.m.Phase() != PhaseIdle || f.m.Active() != nil {
			t.Errorf("%s: left phase %s with active %v", tc.kind, f.m.Phase(), f.m.Active())
		}
		if f.loop.Pending() != 0 || f.router.Len() != 0 || len(f.ui.Affordances) != 0 {
			t.Errorf("%s: leaked frames=%d bindings=%d affordances=%d", tc.kind, f.loop.Pending(), f.router.Len(), len(f.ui.Affordances))
		}
		if f.ui.Prompt != PromptSelect {
			t.Errorf("%s: prompt %q", tc.kind, f.ui.Prompt)
		}
	}
	assert.Equal(t, 1, disposed.disposed, "a game that failed to start is disposed")
}

// panicStart binds input and requests a frame, then panics.
type panicStart struct{ *disposingGame }

func (g *panicStart) Start() error {
	g.env.Input.OnKey(func(core.KeyEvent) {})
	g.env.Frames.Request(func(time.Duration) {})
	g.env.UI.AddAffordance("Back to Menu", g.env.Exit)
	panic("bad start")
}

func TestDisposePanicRecovered(t *testing.T) {
	register(t, "t-disp", func(env registry.Env) (registry.Game, error) {
		return &disposingGame{stubGame: stubGame{env: env}, panics: true}, nil
	})
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("t-disp"))

	assert.NotPanics(t, f.m.ReturnToSelection)
	assert.Zero(t, f.loop.Pending())
	assert.Zero(t, f.router.Len())
}

func TestHandleKey(t *testing.T) {
	register(t, "t-stub", func(env registry.Env) (registry.Game, error) {
		return &stubGame{env: env}, nil
	})
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("t-stub"))

	tests := []struct {
		key  core.Key
		want bool
	}{
		{core.KeyUp, true},
		{core.KeyLeft, true},
		{core.KeySpace, true},
		{"q", false},
		{core.KeyEnter, false},
	}
	for _, tc := range tests {
		if got := f.m.HandleKey(core.KeyEvent{Key: tc.key}); got != tc.want {
			t.Errorf("HandleKey(%q) = %v, expected %v", tc.key, got, tc.want)
		}
	}

	assert.True(t, f.m.HandleKey(core.KeyEvent{Key: core.KeyEscape}))
	assert.Equal(t, PhaseIdle, f.m.Phase())
	assert.False(t, f.m.HandleKey(core.KeyEvent{Key: core.KeyUp}), "arrows are free on the selection screen")
}

func TestSelectionScreen(t *testing.T) {
	f := newFixture(t)
	f.m.ReturnToSelection()

	games := registry.List()
	require.NotEmpty(t, games)
	require.Len(t, f.m.items, len(games))

	idx := -1
	for i, info := range games {
		if info.ID == "tictactoe" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	r := f.m.items[idx].rect
	f.m.HandleClick(core.ClickEvent{X: r.X + 1, Y: r.Y + 1})
	assert.Equal(t, "tictactoe", f.m.Kind())
	assert.Equal(t, PhaseActive, f.m.Phase())

	f.m.ReturnToSelection()
	assert.False(t, f.m.HandleKey(core.KeyEvent{Key: "0"}))
	assert.True(t, f.m.HandleKey(core.KeyEvent{Key: core.Key(strconv.Itoa(idx + 1))}))
	assert.Equal(t, "tictactoe", f.m.Kind())
}

func TestSnakeSelfDisposeOffersBack(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("snake"))
	require.Len(t, f.ui.Affordances, 1)

	f.m.HandleKey(core.KeyEvent{Key: core.KeySpace})
	f.frames(1)
	// Head starts at x=10 heading right on a 20-wide grid: the tenth step hits the wall.
	for range 10 {
		f.now += 150 * time.Millisecond
		f.m.Tick(f.now)
	}

	require.Equal(t, PhaseEnded, f.m.Phase())
	assert.Zero(t, f.loop.Pending(), "snake disposed itself")
	assert.Zero(t, f.router.Len())
	require.Len(t, f.ui.Affordances, 1, "the session offers its own way back")
	require.Len(t, f.results, 1)
	assert.Equal(t, "snake", f.results[0].Kind)

	assert.True(t, f.ui.Activate("Back to Menu"))
	assert.Equal(t, PhaseIdle, f.m.Phase())
	assert.Empty(t, f.ui.Affordances)
}

func TestTicTacToeEndsWithoutDispose(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("tictactoe"))

	for _, k := range []core.Key{"1", "4", "2", "5", "3"} {
		f.m.HandleKey(core.KeyEvent{Key: k})
	}
	assert.Equal(t, PhaseEnded, f.m.Phase())
	assert.Equal(t, 1, f.m.Score())
	assert.Len(t, f.ui.Affordances, 1, "the game keeps its own affordance")

	f.m.HandleKey(core.KeyEvent{Key: "9"})
	assert.Equal(t, PhaseActive, f.m.Phase())
	assert.False(t, f.ui.PromptShown)
}

func TestTicTacToeScoreSurvivesRounds(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.SelectGame("tictactoe"))
	g, ok := f.m.Active().(*tictactoe.Game)
	require.True(t, ok)

	win := []core.Key{"1", "4", "2", "5", "3"}
	for _, k := range win {
		f.m.HandleKey(core.KeyEvent{Key: k})
	}
	first := f.m.RunID()

	f.m.HandleKey(core.KeyEvent{Key: "9"})
	require.Equal(t, PhaseActive, f.m.Phase())
	assert.Equal(t, g.Score(), f.m.Score(), "a new round keeps the score")
	assert.Equal(t, 1, f.m.Score())

	for _, k := range win {
		f.m.HandleKey(core.KeyEvent{Key: k})
	}
	assert.Equal(t, 2, g.Score())
	assert.Equal(t, g.Score(), f.m.Score())

	require.Len(t, f.results, 2)
	assert.Equal(t, 1, f.results[0].Score)
	assert.Equal(t, 1, f.results[1].Score, "each round records only its own gain")
	assert.Equal(t, first, f.results[0].RunID)
	assert.NotEqual(t, first, f.results[1].RunID)
}

func TestSelectionDrawnAfterResizeFromZero(t *testing.T) {
	f := newFixture(t)
	f.m.onResize = func(w, h int) { f.surface.Resize(float64(w), float64(h)) }
	f.m.Resize(0, 0)

	f.m.ReturnToSelection()
	assert.Empty(t, f.surface.Texts())

	f.m.Resize(800, 600)
	assert.Contains(t, f.surface.Texts(), "Select a Game")
}

func TestSelectByKeyOnUndrawnScreen(t *testing.T) {
	f := newFixture(t)
	f.surface.Resize(0, 0)
	f.m.ReturnToSelection()

	assert.True(t, f.m.HandleKey(core.KeyEvent{Key: "1"}))
	assert.Equal(t, PhaseActive, f.m.Phase())
}

func TestCloseStopsSelectionRedraw(t *testing.T) {
	f := newFixture(t)
	f.m.ReturnToSelection()
	f.m.Close()
	f.surface.Reset()

	f.m.Resize(800, 600)
	assert.Empty(t, f.surface.Texts())
}

func TestResize(t *testing.T) {
	var sizes [][2]int
	f := newFixture(t)
	f.m.onResize = func(w, h int) {
		sizes = append(sizes, [2]int{w, h})
		f.surface.Resize(float64(w), float64(h))
	}
	f.m.Resize(400, 300)
	assert.Equal(t, [][2]int{{400, 300}}, sizes)

	require.NoError(t, f.m.SelectGame("tictactoe"))
	f.m.Resize(1000, 500)
	g, ok := f.m.Active().(interface{ CellAt(x, y float64) int })
	require.True(t, ok)
	assert.Equal(t, 4, g.CellAt(500, 250), "the game re-laid out for the new size")
}
