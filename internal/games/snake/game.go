// Package snake implements Grid-Chase: a snake on a fixed grid that grows by
// eating food and dies on walls or itself.
package snake

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/games/hud"
	"github.com/vovakirdan/canvas-arcade/internal/lifecycle"
	"github.com/vovakirdan/canvas-arcade/internal/particle"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "snake"

// Point represents a grid cell or a unit direction.
type Point struct {
	X, Y int
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Directions.
var (
	DirUp    = Point{0, -1}
	DirDown  = Point{0, 1}
	DirLeft  = Point{-1, 0}
	DirRight = Point{1, 0}
)

var keyDirs = map[core.Key]Point{
	core.KeyUp:    DirUp,
	core.KeyDown:  DirDown,
	core.KeyLeft:  DirLeft,
	core.KeyRight: DirRight,
}

var (
	bgInner   = core.MustHex("#1b2a1f")
	bgOuter   = core.MustHex("#0b120d")
	gridColor = core.MustHex("#22352a")
	foodColor = core.MustHex("#ff3b5c")
	stemColor = core.MustHex("#4caf50")
	eyeColor  = core.MustHex("#ffffff")
	textColor = core.MustHex("#e8f5e9")
)

// Game implements Grid-Chase.
type Game struct {
	env       registry.Env
	cfg       config.SnakeConfig
	rng       *rand.Rand
	run       *lifecycle.Runner
	particles *particle.Pool

	// Snake state
	body  []Point // Head at index 0
	dir   Point   // Direction of the next step
	moved Point   // Direction of the last step taken
	food  Point
	score int
	speed time.Duration

	// Timing
	lastStep  time.Duration
	clockSet  bool
	started   bool
	ended     bool
	stepCount int

	// Layout
	tile       float64
	offX, offY float64
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Snake"}, func(env registry.Env) (registry.Game, error) {
		return New(env)
	})
}

// New creates a Grid-Chase game bound to env.
func New(env registry.Env) (*Game, error) {
	cfg := env.Config.Snake
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		return nil, fmt.Errorf("snake: invalid grid %dx%d", cfg.Cols, cfg.Rows)
	}
	if env.Surface == nil || env.Frames == nil || env.Input == nil || env.Rand == nil {
		return nil, errors.New("snake: incomplete environment")
	}

	g := &Game{
		env:       env,
		cfg:       cfg,
		rng:       env.Rand,
		run:       lifecycle.NewRunner(env.Frames, env.Input, env.UI),
		particles: particle.NewPool(env.Rand),
		body:      []Point{{cfg.Start.X, cfg.Start.Y}},
		dir:       DirRight,
		moved:     DirRight,
		food:      Point{cfg.Food.X, cfg.Food.Y},
		speed:     cfg.Step(),
	}
	g.Resize()
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Start binds input and begins the frame loop.
func (g *Game) Start() error {
	return g.run.Start(g.frame, func() {
		g.run.BindKey(g.handleKey)
		if g.env.Exit != nil {
			g.run.Offer("Back to Menu", g.env.Exit)
		}
	})
}

func (g *Game) frame(ts time.Duration) {
	g.Update(ts)
	g.Draw()
}

// Dispose releases listeners, the pending frame and the back affordance.
func (g *Game) Dispose() {
	g.run.Dispose()
}

// Resize recomputes tile size and grid offsets from the surface.
func (g *Game) Resize() {
	w, h := g.env.Surface.Size()
	g.tile = math.Max(0, math.Min(w/float64(g.cfg.Cols), h/float64(g.cfg.Rows)))
	g.offX = (w - g.tile*float64(g.cfg.Cols)) / 2
	g.offY = (h - g.tile*float64(g.cfg.Rows)) / 2
}

func (g *Game) handleKey(ev core.KeyEvent) {
	if g.ended {
		return
	}
	if !g.started {
		if ev.Key == core.KeySpace {
			g.started = true
		}
		return
	}
	d, ok := keyDirs[ev.Key]
	if !ok {
		return
	}
	// Reversal is judged against the last step taken, so two quick turns
	// cannot fold the snake back onto its neck.
	if d.X == -g.moved.X && d.Y == -g.moved.Y {
		return
	}
	g.dir = d
}

// Update advances the particles every frame and the snake once per step
// interval after the game has been started.
func (g *Game) Update(ts time.Duration) {
	g.particles.Advance()
	if !g.started || g.ended {
		return
	}
	if !g.clockSet {
		g.lastStep = ts
		g.clockSet = true
		return
	}
	if ts-g.lastStep < g.speed {
		return
	}
	g.lastStep = ts
	g.step()
}

func (g *Game) step() {
	g.stepCount++
	head := g.body[0].Add(g.dir)
	g.moved = g.dir

	if !g.inBounds(head) || g.occupied(head) {
		g.gameOver()
		return
	}

	g.body = append([]Point{head}, g.body...)
	if head == g.food {
		g.eat()
		return
	}
	g.body = g.body[:len(g.body)-1]
}

func (g *Game) eat() {
	g.score += g.cfg.PointsPerFood
	g.particles.Spawn(particle.Burst{
		Origin: g.cellCenter(g.food),
		Count:  g.cfg.Burst.Count,
		VelX:   particle.Range{Min: -g.cfg.Burst.Speed / 2, Max: g.cfg.Burst.Speed / 2},
		VelY:   particle.Range{Min: -g.cfg.Burst.Speed / 2, Max: g.cfg.Burst.Speed / 2},
		Size:   particle.Range{Min: 2, Max: 5},
		Life:   g.cfg.Burst.Life,
		ColorFn: func(rng *rand.Rand) core.Color {
			return core.HSL(330+rng.Float64()*60, 1, 0.5)
		},
	})
	g.speed = max(g.speed-g.cfg.StepDecrement(), g.cfg.MinStep())
	g.food = g.randomCell()
	g.env.Reporter.ReportScore(g.score)
	g.play(core.CueEat)
}

// randomCell re-rolls uniformly over the whole grid. It does not avoid the
// body, so food can spawn under the snake.
func (g *Game) randomCell() Point {
	return Point{X: g.rng.Intn(g.cfg.Cols), Y: g.rng.Intn(g.cfg.Rows)}
}

func (g *Game) gameOver() {
	g.ended = true
	g.env.Reporter.ReportEnded(g.score)
	g.play(core.CueGameOver)
	g.Dispose()
}

func (g *Game) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.cfg.Cols && p.Y >= 0 && p.Y < g.cfg.Rows
}

func (g *Game) occupied(p Point) bool {
	for _, b := range g.body {
		if b == p {
			return true
		}
	}
	return false
}

func (g *Game) play(c core.Cue) {
	if g.env.Cues != nil {
		g.env.Cues.Play(c)
	}
}

func (g *Game) cellRect(p Point) core.Rect {
	return core.NewRect(g.offX+float64(p.X)*g.tile, g.offY+float64(p.Y)*g.tile, g.tile, g.tile)
}

func (g *Game) cellCenter(p Point) core.Vec {
	return g.cellRect(p).Center()
}

// Draw renders the board, snake, food, particles and HUD.
func (g *Game) Draw() {
	s := g.env.Surface
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	s.Clear(bgOuter)
	s.FillGradient(core.NewRect(0, 0, w, h), core.Gradient{
		Kind:   core.GradientRadial,
		From:   core.Vec{X: w / 2, Y: h / 2},
		Radius: math.Hypot(w, h) / 2,
		Stops:  []core.GradientStop{{Offset: 0, Color: bgInner}, {Offset: 1, Color: bgOuter}},
	})
	g.drawGrid(s)
	g.drawFood(s)
	g.drawSnake(s)
	g.particles.Render(s)

	hud.Label(s, fmt.Sprintf("Score: %d", g.score), g.offX+4, g.offY+g.tile/2+4, textColor)
	if !g.started {
		hud.Overlay(s, "Snake", "Press SPACE to Start")
	} else if g.ended {
		hud.Overlay(s, "Game Over", fmt.Sprintf("Final Score: %d", g.score))
	}
}

func (g *Game) drawGrid(s core.Surface) {
	if g.tile < 4 {
		return
	}
	top, bottom := g.offY, g.offY+g.tile*float64(g.cfg.Rows)
	left, right := g.offX, g.offX+g.tile*float64(g.cfg.Cols)
	for c := 0; c <= g.cfg.Cols; c++ {
		x := left + float64(c)*g.tile
		s.StrokeLine(core.Vec{X: x, Y: top}, core.Vec{X: x, Y: bottom}, 1, gridColor)
	}
	for r := 0; r <= g.cfg.Rows; r++ {
		y := top + float64(r)*g.tile
		s.StrokeLine(core.Vec{X: left, Y: y}, core.Vec{X: right, Y: y}, 1, gridColor)
	}
}

func (g *Game) drawFood(s core.Surface) {
	c := g.cellCenter(g.food)
	s.FillCircle(c, g.tile*0.4, foodColor)
	s.StrokeLine(core.Vec{X: c.X, Y: c.Y - g.tile*0.35}, core.Vec{X: c.X + g.tile*0.15, Y: c.Y - g.tile*0.55}, math.Max(1, g.tile/10), stemColor)
}

func (g *Game) drawSnake(s core.Surface) {
	n := len(g.body)
	for i := n - 1; i >= 0; i-- {
		// Fade from bright head to darker tail.
		light := 0.55 - 0.25*float64(i)/float64(max(n, 2)-1)
		r := g.cellRect(g.body[i]).Inset(g.tile * 0.05)
		s.FillRoundRect(r, g.tile*0.25, core.HSL(130, 0.7, light))
	}
	g.drawEyes(s)
}

func (g *Game) drawEyes(s core.Surface) {
	c := g.cellCenter(g.body[0])
	fwd := core.Vec{X: float64(g.moved.X), Y: float64(g.moved.Y)}.Scale(g.tile * 0.2)
	side := core.Vec{X: float64(-g.moved.Y), Y: float64(g.moved.X)}.Scale(g.tile * 0.2)
	for _, sign := range []float64{-1, 1} {
		eye := c.Add(fwd).Add(side.Scale(sign))
		s.FillCircle(eye, g.tile*0.1, eyeColor)
	}
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Ended reports whether the snake has crashed.
func (g *Game) Ended() bool { return g.ended }

// Started reports whether space has been pressed.
func (g *Game) Started() bool { return g.started }

// Disposed reports whether the game has released its host resources.
func (g *Game) Disposed() bool { return g.run.Disposed() }

// Body returns a copy of the occupied cells, head first.
func (g *Game) Body() []Point { return append([]Point(nil), g.body...) }

// Food returns the food cell.
func (g *Game) Food() Point { return g.food }

// Speed returns the current step interval.
func (g *Game) Speed() time.Duration { return g.speed }

// Particles returns the number of live particles.
func (g *Game) Particles() int { return g.particles.Len() }
