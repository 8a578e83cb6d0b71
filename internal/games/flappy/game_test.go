package flappy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/games/gametest"
)

const frameDur = 16 * time.Millisecond

func newGame(t *testing.T, h *gametest.Harness, seed int64) *Game {
	t.Helper()
	g, err := New(h.Env(seed))
	require.NoError(t, err)
	require.NoError(t, g.Start())
	return g
}

// safeHarness pins every gap to [225, 375] and turns gravity off so the
// bird hovers at mid-screen through every pipe.
func safeHarness() *gametest.Harness {
	h := gametest.New()
	h.Config.Flappy.Gravity = 0
	h.Config.Flappy.MinPipeHeight = 225
	return h
}

func TestPipeFieldCountsOnce(t *testing.T) {
	f := NewPipeField(rand.New(rand.NewSource(1)))
	f.Layout(800, 600, 80, 150, 300, 50)
	f.pipes = append(f.pipes, Pipe{X: 300, TopHeight: 100, BottomY: 250})

	birdX := 800.0 / 3
	counted := map[int]int{}
	for i := 1; i <= 60; i++ {
		if n := f.Update(5, birdX); n > 0 {
			counted[i] += n
		}
	}
	assert.Equal(t, map[int]int{23: 1}, counted, "trailing edge passes the bird on update 23 only")
}

func TestPipeFieldSpawnAndCull(t *testing.T) {
	f := NewPipeField(rand.New(rand.NewSource(1)))
	f.Layout(800, 600, 80, 150, 300, 50)

	f.Update(5, 100)
	require.Len(t, f.Pipes(), 1, "empty field spawns")
	assert.Equal(t, 800.0, f.Pipes()[0].X)

	for range 100 {
		f.Update(5, 100)
		for _, p := range f.Pipes() {
			assert.GreaterOrEqual(t, p.TopHeight, 50.0)
			assert.LessOrEqual(t, p.BottomY, 550.0)
			assert.InDelta(t, 150, p.BottomY-p.TopHeight, 1e-9)
			assert.GreaterOrEqual(t, p.X+80, 0.0, "off-screen pipes are removed")
		}
	}
	assert.Len(t, f.Pipes(), 2)
}

func TestPipeFieldCollides(t *testing.T) {
	f := NewPipeField(rand.New(rand.NewSource(1)))
	f.Layout(800, 600, 80, 150, 300, 50)
	f.pipes = []Pipe{{X: 100, TopHeight: 200, BottomY: 350}}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"in gap", 140, 275, false},
		{"hits top", 140, 205, true},
		{"hits bottom", 140, 345, true},
		{"left of pipe", 80, 100, false},
		{"grazes left edge", 90, 100, true},
		{"right of pipe", 200, 100, false},
	}
	for _, tc := range tests {
		if got := f.Collides(tc.x, tc.y, 30); got != tc.want {
			t.Errorf("%s: Collides(%v, %v) = %v, expected %v", tc.name, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestWaitsForStart(t *testing.T) {
	h := gametest.New()
	g := newGame(t, h, 1)

	h.Frames(30, frameDur)
	_, y, _ := g.Bird()
	assert.Equal(t, 300.0, y)
	assert.Equal(t, StateWaiting, g.Snapshot().State)
	assert.Contains(t, h.Surface.Texts(), "Press SPACE to Start")
}

func TestGravityAndFlap(t *testing.T) {
	h := gametest.New()
	g := newGame(t, h, 1)

	h.Key(core.KeySpace)
	h.Advance(frameDur)
	_, y, v := g.Bird()
	assert.Equal(t, 0.5, v)
	assert.Equal(t, 300.5, y)

	h.Key(core.KeySpace)
	_, _, v = g.Bird()
	assert.Equal(t, -10.0, v)
	assert.Equal(t, flapTilt, g.Rotation())
	assert.Equal(t, 10, g.Particles())
	assert.Contains(t, h.Cues.Played, core.CueFlap)
}

func TestClickStarts(t *testing.T) {
	h := gametest.New()
	g := newGame(t, h, 1)

	h.Click(10, 10)
	assert.True(t, g.Started())
	h.Click(10, 10)
	_, _, v := g.Bird()
	assert.Equal(t, -10.0, v)
}

func TestScoresEachPipeOnce(t *testing.T) {
	h := safeHarness()
	g := newGame(t, h, 4)
	h.Key(core.KeySpace)

	h.Frames(122, frameDur)
	assert.Zero(t, g.Score())
	h.Advance(frameDur)
	assert.Equal(t, 1, g.Score())

	for range 2000 {
		if g.Score() == 5 {
			break
		}
		h.Advance(frameDur)
	}
	require.Equal(t, 5, g.Score())
	assert.False(t, g.GameOver())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, h.Reporter.Scores)
	assert.Equal(t, 5.5, g.Speed(), "speed steps up every 5 points")
}

func TestCrashFreezesAndRestarts(t *testing.T) {
	h := gametest.New()
	g := newGame(t, h, 1)
	h.Key(core.KeySpace)

	h.Frames(60, frameDur)
	require.True(t, g.GameOver())
	assert.Equal(t, []int{0}, h.Reporter.Ended)
	assert.False(t, g.Disposed(), "a crash does not dispose")
	assert.Equal(t, 1, h.Loop.Pending())
	assert.Contains(t, h.Surface.Texts(), "Game Over!")

	_, frozen, _ := g.Bird()
	h.Frames(10, frameDur)
	_, y, _ := g.Bird()
	assert.Equal(t, frozen, y)

	h.Key(core.KeySpace)
	assert.False(t, g.GameOver())
	assert.Zero(t, g.Score())
	assert.Equal(t, 1, h.Reporter.Restarts)
	_, y, v := g.Bird()
	assert.Equal(t, 300.0, y)
	assert.Zero(t, v)
	assert.Len(t, g.Pipes(), 1)
	assert.Equal(t, 5.0, g.Speed())
}

func TestResizeScales(t *testing.T) {
	h := gametest.New()
	h.Surface.Resize(400, 300)
	g := newGame(t, h, 1)

	assert.Equal(t, 15.0, g.birdSize)
	assert.Equal(t, 40.0, g.pipes.Width())

	h.Key(core.KeySpace)
	h.Advance(frameDur)
	_, _, v := g.Bird()
	assert.Equal(t, 0.25, v)
}

func TestZeroSizeSurface(t *testing.T) {
	h := gametest.New()
	h.Surface.Resize(0, 0)
	g := newGame(t, h, 1)
	g.Resize()

	h.Key(core.KeySpace)
	h.Frames(3, frameDur)
	assert.Empty(t, h.Surface.Ops)
}

func TestDisposeIdempotent(t *testing.T) {
	h := gametest.New()
	g := newGame(t, h, 1)
	g.Dispose()
	g.Dispose()

	assert.Zero(t, h.Loop.Pending())
	assert.Zero(t, h.Router.Len())
	assert.Empty(t, h.UI.Affordances)
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		h := gametest.New()
		g := newGame(t, h, 12345)
		h.Key(core.KeySpace)
		for i := range 300 {
			if i%18 == 0 {
				h.Key(core.KeySpace)
			}
			h.Advance(frameDur)
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1 != s2 {
		t.Errorf("snapshots differ: %+v vs %+v", s1, s2)
	}
}
