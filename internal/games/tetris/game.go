// Package tetris implements Block-Stack: falling pieces on a 10x20 board,
// full rows clear and score by the classic table.
package tetris

import (
	"errors"
	"fmt"
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
const ID = "tetris"

var (
	bgTop     = core.MustHex("#000033")
	bgBottom  = core.MustHex("#000066")
	wellColor = core.MustHex("#000000")
	gridColor = core.MustHex("#ffffff")
	textColor = core.MustHex("#ffffff")
)

// Game implements Block-Stack.
type Game struct {
	env       registry.Env
	cfg       config.TetrisConfig
	rng       *rand.Rand
	run       *lifecycle.Runner
	particles *particle.Pool

	board   *Board
	current Piece
	next    Piece
	hasNext bool

	score    int
	level    int
	lines    int
	interval time.Duration

	lastDrop time.Duration
	clockSet bool
	started  bool
	resets   int

	// Layout
	cell           float64
	boardX, boardY float64
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Tetris"}, func(env registry.Env) (registry.Game, error) {
		return New(env)
	})
}

// New creates a Block-Stack game bound to env.
func New(env registry.Env) (*Game, error) {
	cfg := env.Config.Tetris
	if cfg.Cols < 6 || cfg.Rows < 4 || len(cfg.LinePoints) < 2 || cfg.LinesPerLevel <= 0 {
		return nil, fmt.Errorf("tetris: invalid board %dx%d", cfg.Cols, cfg.Rows)
	}
	if env.Surface == nil || env.Frames == nil || env.Input == nil || env.Rand == nil || env.Logger == nil {
		return nil, errors.New("tetris: incomplete environment")
	}

	g := &Game{
		env:       env,
		cfg:       cfg,
		rng:       env.Rand,
		run:       lifecycle.NewRunner(env.Frames, env.Input, env.UI),
		particles: particle.NewPool(env.Rand),
		board:     NewBoard(cfg.Cols, cfg.Rows),
		level:     1,
		interval:  cfg.DropInterval(1),
	}
	g.Resize()
	g.spawn()
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

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

// Resize fits the board into 60% of the width and 90% of the height.
func (g *Game) Resize() {
	w, h := g.env.Surface.Size()
	g.cell = max(0, min(w*0.6/float64(g.cfg.Cols), h*0.9/float64(g.cfg.Rows)))
	g.boardX = (w - g.cell*float64(g.cfg.Cols)) / 2
	g.boardY = (h - g.cell*float64(g.cfg.Rows)) / 2
}

func (g *Game) handleKey(ev core.KeyEvent) {
	if !g.started {
		if ev.Key == core.KeySpace {
			g.started = true
		}
		return
	}
	switch ev.Key {
	case core.KeyLeft:
		g.move(-1, 0)
	case core.KeyRight:
		g.move(1, 0)
	case core.KeyDown:
		g.move(0, -1)
	case core.KeyUp:
		g.rotate()
	case core.KeySpace:
		g.hardDrop()
	}
}

// Update drops the piece one row per interval once the game has started.
func (g *Game) Update(ts time.Duration) {
	g.particles.Advance()
	if !g.started {
		return
	}
	if !g.clockSet {
		g.lastDrop = ts
		g.clockSet = true
		return
	}
	if ts-g.lastDrop >= g.interval {
		g.move(0, -1)
		g.lastDrop = ts
	}
}

// move translates the current piece. A blocked downward move locks it.
func (g *Game) move(dx, dy int) {
	p := g.current
	p.X += dx
	p.Y += dy
	if !g.board.Collides(p) {
		g.current = p
		return
	}
	if dy < 0 {
		g.settle()
	}
}

func (g *Game) rotate() {
	p := g.current
	p.Shape = p.Shape.Rotate()
	if !g.board.Collides(p) {
		g.current = p
	}
}

func (g *Game) hardDrop() {
	for {
		p := g.current
		p.Y--
		if g.board.Collides(p) {
			break
		}
		g.current = p
	}
	g.settle()
}

// settle locks the current piece, clears lines and spawns the next piece.
func (g *Game) settle() {
	g.board.Lock(g.current)
	g.clearLines()
	g.spawn()
}

func (g *Game) clearLines() {
	rows := g.board.ClearLines()
	if len(rows) == 0 {
		return
	}
	for _, row := range rows {
		g.burstRow(row)
	}

	n := min(len(rows), len(g.cfg.LinePoints)-1)
	g.score += g.cfg.LinePoints[n] * (g.level + 1)
	g.lines += len(rows)
	g.level = g.lines/g.cfg.LinesPerLevel + 1
	g.interval = g.cfg.DropInterval(g.level)

	g.env.Reporter.ReportScore(g.score)
	g.play(core.CueLine)
}

func (g *Game) burstRow(row ClearedRow) {
	spread := g.cfg.Burst.Speed / 2
	for x, v := range row.Cells {
		g.particles.Spawn(particle.Burst{
			Origin: g.cellRect(x, row.Y).Center(),
			Count:  g.cfg.Burst.Count,
			VelX:   particle.Range{Min: -spread, Max: spread},
			VelY:   particle.Range{Min: -spread, Max: spread},
			Size:   particle.Range{Min: 2, Max: 5},
			Life:   g.cfg.Burst.Life,
			Color:  cellColor(v),
		})
	}
}

func (g *Game) randomPiece() Piece {
	return NewPiece(Kind(g.rng.Intn(int(kindCount))), g.cfg.Cols/2-1, g.cfg.Rows-1)
}

// spawn promotes the queued piece. A piece that collides on arrival resets
// the whole board; play continues.
func (g *Game) spawn() {
	if !g.hasNext {
		g.next = g.randomPiece()
		g.hasNext = true
	}
	g.current = g.next
	g.next = g.randomPiece()

	if g.board.Collides(g.current) {
		g.reset()
	}
}

func (g *Game) reset() {
	g.env.Logger.Debug("board topped out", "score", g.score, "lines", g.lines)
	g.board.Reset()
	g.score = 0
	g.level = 1
	g.lines = 0
	g.interval = g.cfg.DropInterval(1)
	g.resets++
	g.env.Reporter.ReportScore(0)
	g.play(core.CueGameOver)

	g.current = g.next
	g.next = g.randomPiece()
}

func (g *Game) play(c core.Cue) {
	if g.env.Cues != nil {
		g.env.Cues.Play(c)
	}
}

// cellRect returns the screen rectangle of board cell (x, y).
func (g *Game) cellRect(x, y int) core.Rect {
	return core.NewRect(
		g.boardX+float64(x)*g.cell,
		g.boardY+float64(g.cfg.Rows-1-y)*g.cell,
		g.cell, g.cell,
	)
}

// Draw renders the well, pieces, preview, particles and HUD.
func (g *Game) Draw() {
	s := g.env.Surface
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	s.Clear(bgTop)
	s.FillGradient(core.NewRect(0, 0, w, h), core.Gradient{
		Kind:  core.GradientLinear,
		From:  core.Vec{},
		To:    core.Vec{Y: h},
		Stops: []core.GradientStop{{Offset: 0, Color: bgTop}, {Offset: 1, Color: bgBottom}},
	})

	well := core.NewRect(g.boardX, g.boardY, g.cell*float64(g.cfg.Cols), g.cell*float64(g.cfg.Rows))
	s.SetAlpha(0.5)
	s.FillRect(well, wellColor)
	s.SetAlpha(0.1)
	for x := 0; x <= g.cfg.Cols; x++ {
		lx := well.X + float64(x)*g.cell
		s.StrokeLine(core.Vec{X: lx, Y: well.Y}, core.Vec{X: lx, Y: well.Bottom()}, 1, gridColor)
	}
	for y := 0; y <= g.cfg.Rows; y++ {
		ly := well.Y + float64(y)*g.cell
		s.StrokeLine(core.Vec{X: well.X, Y: ly}, core.Vec{X: well.Right(), Y: ly}, 1, gridColor)
	}
	s.SetAlpha(1)

	for y := range g.cfg.Rows {
		for x := range g.cfg.Cols {
			if v := g.board.At(x, y); v != 0 {
				g.drawBlock(s, g.cellRect(x, y), cellColor(v))
			}
		}
	}
	p := g.current
	p.Shape.Cells(func(c, r int) {
		g.drawBlock(s, g.cellRect(p.X+c, p.Y-r), p.Kind.Color())
	})

	g.drawPreview(s, well)
	g.particles.Render(s)

	hud.Label(s, fmt.Sprintf("Score: %d", g.score), 10, 30, textColor)
	hud.Label(s, fmt.Sprintf("Level: %d  Lines: %d", g.level, g.lines), 10, 30+max(h/30, 10)*1.4, textColor)
	if !g.started {
		hud.Overlay(s, "Tetris", "Press SPACE to Start")
	}
}

func (g *Game) drawBlock(s core.Surface, r core.Rect, c core.Color) {
	if g.cell < 3 {
		s.FillRect(r, c)
		return
	}
	s.FillRect(r.Inset(1), c)
	s.SetAlpha(0.3)
	s.FillRect(core.NewRect(r.X+1, r.Y+1, r.W-2, (r.H-2)/4), core.ColorWhite)
	s.SetAlpha(1)
}

func (g *Game) drawPreview(s core.Surface, well core.Rect) {
	x := well.Right() + g.cell
	y := well.Y + g.cell
	hud.Label(s, "Next", x, y, textColor)
	g.next.Shape.Cells(func(c, r int) {
		rect := core.NewRect(x+float64(c)*g.cell, y+g.cell*(0.5+float64(r)), g.cell, g.cell)
		g.drawBlock(s, rect, g.next.Kind.Color())
	})
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Level returns the current level.
func (g *Game) Level() int { return g.level }

// Lines returns the total lines cleared since the last reset.
func (g *Game) Lines() int { return g.lines }

// Interval returns the gravity interval.
func (g *Game) Interval() time.Duration { return g.interval }

// Started reports whether space has been pressed.
func (g *Game) Started() bool { return g.started }

// Disposed reports whether the game has released its host resources.
func (g *Game) Disposed() bool { return g.run.Disposed() }

// Current returns the falling piece.
func (g *Game) Current() Piece { return g.current }

// Next returns the queued piece.
func (g *Game) Next() Piece { return g.next }

// Board returns the locked-cell matrix.
func (g *Game) Board() *Board { return g.board }

// Particles returns the number of live particles.
func (g *Game) Particles() int { return g.particles.Len() }
