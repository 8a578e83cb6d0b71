// Package tictactoe implements Board-Duel: two players alternate marks on a
// 3x3 board by clicking cells (or pressing 1-9) until a line or a draw.
package tictactoe

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/games/hud"
	"github.com/vovakirdan/canvas-arcade/internal/lifecycle"
	"github.com/vovakirdan/canvas-arcade/internal/particle"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "tictactoe"

var (
	bgInner    = core.MustHex("#303f9f")
	bgOuter    = core.MustHex("#1a237e")
	boardColor = core.MustHex("#ffffff")
	xColor     = core.MustHex("#ff5252")
	oColor     = core.MustHex("#2196f3")
	textColor  = core.MustHex("#ffffff")
)

func markColor(m Mark) core.Color {
	if m == O {
		return oColor
	}
	return xColor
}

// Game implements Board-Duel.
type Game struct {
	env       registry.Env
	cfg       config.TicTacToeConfig
	run       *lifecycle.Runner
	particles *particle.Pool

	board      Board
	current    Mark
	winLine    []int
	animations []Animation
	score      int
	ended      bool
	rounds     int

	// Layout
	cell           float64
	size           float64
	boardX, boardY float64
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Tic-Tac-Toe"}, func(env registry.Env) (registry.Game, error) {
		return New(env)
	})
}

// New creates a Board-Duel game bound to env.
func New(env registry.Env) (*Game, error) {
	if env.Surface == nil || env.Frames == nil || env.Input == nil || env.Rand == nil {
		return nil, errors.New("tictactoe: incomplete environment")
	}
	g := &Game{
		env:       env,
		cfg:       env.Config.TicTacToe,
		run:       lifecycle.NewRunner(env.Frames, env.Input, env.UI),
		particles: particle.NewPool(env.Rand),
		current:   X,
	}
	g.Resize()
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Tic-Tac-Toe" }

// Start binds input and begins the frame loop. The board is live at once.
func (g *Game) Start() error {
	return g.run.Start(g.frame, func() {
		g.run.BindClick(g.handleClick)
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

// Resize makes each cell a fifth of the smaller surface side and centers
// the board.
func (g *Game) Resize() {
	w, h := g.env.Surface.Size()
	g.cell = max(0, min(w/5, h/5))
	g.size = g.cell * 3
	g.boardX = (w - g.size) / 2
	g.boardY = (h - g.size) / 2
}

// CellAt maps a surface point to a board index, or -1 when it lies outside
// the board.
func (g *Game) CellAt(x, y float64) int {
	if g.cell <= 0 || x < g.boardX || x > g.boardX+g.size || y < g.boardY || y > g.boardY+g.size {
		return -1
	}
	cx := min(int((x-g.boardX)/g.cell), 2)
	cy := min(int((y-g.boardY)/g.cell), 2)
	return cy*3 + cx
}

func (g *Game) handleClick(ev core.ClickEvent) {
	if g.ended {
		g.newRound()
		return
	}
	if i := g.CellAt(ev.X, ev.Y); i >= 0 {
		g.Place(i)
	}
}

// handleKey places a mark with 1-9. After the end any key starts a new
// round, like a click does.
func (g *Game) handleKey(ev core.KeyEvent) {
	if g.ended {
		if ev.Key != core.KeyNone {
			g.newRound()
		}
		return
	}
	n, err := strconv.Atoi(string(ev.Key))
	if err != nil || n < 1 || n > 9 {
		return
	}
	g.Place(n - 1)
}

// Place puts the current player's mark in cell i. It reports whether the
// move was accepted; occupied cells and moves after the end are ignored.
func (g *Game) Place(i int) bool {
	if g.ended || i < 0 || i >= len(g.board) || g.board[i] != Empty {
		return false
	}
	g.board[i] = g.current
	g.animate(i, g.current)
	g.play(core.CuePlace)

	if line, m, ok := g.board.Winner(); ok {
		g.ended = true
		g.winLine = line[:]
		g.addWinLine(line, m)
		g.score++
		g.env.Reporter.ReportScore(g.score)
		g.env.Reporter.ReportEnded(g.score)
		g.play(core.CueWin)
		return true
	}
	if g.board.Full() {
		g.ended = true
		g.env.Reporter.ReportEnded(g.score)
		return true
	}
	g.current = g.current.Other()
	return true
}

func (g *Game) newRound() {
	g.board = Board{}
	g.current = X
	g.winLine = nil
	g.animations = nil
	g.ended = false
	g.rounds++
	g.env.Reporter.ReportRestarted()
}

func (g *Game) animate(i int, m Mark) {
	a := Animation{Kind: AnimX, Cell: i, Color: xColor, Duration: g.cfg.XAnimFrames}
	if m == O {
		a = Animation{Kind: AnimO, Cell: i, Color: oColor, Duration: g.cfg.OAnimFrames}
	}
	if a.Duration > 0 {
		g.animations = append(g.animations, a)
	}
}

func (g *Game) addWinLine(line [3]int, m Mark) {
	from, to := g.cellCenter(line[0]), g.cellCenter(line[2])
	g.animations = append(g.animations, Animation{
		Kind:     AnimLine,
		From:     from,
		To:       to,
		Color:    markColor(m),
		Duration: g.cfg.WinAnimFrames,
	})
	for _, i := range line {
		g.particles.Spawn(particle.Burst{
			Origin: g.cellCenter(i),
			Count:  8,
			VelX:   particle.Range{Min: -2.5, Max: 2.5},
			VelY:   particle.Range{Min: -2.5, Max: 2.5},
			Size:   particle.Range{Min: 2, Max: 5},
			Life:   30,
			Color:  markColor(m),
		})
	}
}

func (g *Game) play(c core.Cue) {
	if g.env.Cues != nil {
		g.env.Cues.Play(c)
	}
}

func (g *Game) cellCenter(i int) core.Vec {
	return core.Vec{
		X: g.boardX + float64(i%3)*g.cell + g.cell/2,
		Y: g.boardY + float64(i/3)*g.cell + g.cell/2,
	}
}

// Update advances the animations and particles. Board-Duel has no clock.
func (g *Game) Update(time.Duration) {
	g.animations = advanceAnimations(g.animations)
	g.particles.Advance()
}

// Draw renders the board, marks, animations and HUD.
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
		Radius: w / 2,
		Stops:  []core.GradientStop{{Offset: 0, Color: bgInner}, {Offset: 1, Color: bgOuter}},
	})

	s.SetAlpha(0.1)
	s.FillRect(core.NewRect(g.boardX, g.boardY, g.size, g.size), boardColor)
	s.SetAlpha(0.5)
	for i := 1; i < 3; i++ {
		x := g.boardX + float64(i)*g.cell
		y := g.boardY + float64(i)*g.cell
		s.StrokeLine(core.Vec{X: x, Y: g.boardY}, core.Vec{X: x, Y: g.boardY + g.size}, 2, boardColor)
		s.StrokeLine(core.Vec{X: g.boardX, Y: y}, core.Vec{X: g.boardX + g.size, Y: y}, 2, boardColor)
	}
	s.SetAlpha(1)

	for i, m := range g.board {
		if m == Empty || animating(g.animations, i) {
			continue
		}
		g.drawMark(s, i, m, 1)
	}
	for _, a := range g.animations {
		switch a.Kind {
		case AnimX:
			g.drawMark(s, a.Cell, X, a.Progress())
		case AnimO:
			g.drawMark(s, a.Cell, O, a.Progress())
		case AnimLine:
			end := core.Vec{
				X: core.Lerp(a.From.X, a.To.X, a.Progress()),
				Y: core.Lerp(a.From.Y, a.To.Y, a.Progress()),
			}
			s.StrokeLine(a.From, end, 5, a.Color)
		}
	}
	if g.ended && g.winLine != nil && !g.lineAnimating() {
		s.StrokeLine(g.cellCenter(g.winLine[0]), g.cellCenter(g.winLine[2]), 5, markColor(g.current))
	}
	g.particles.Render(s)

	s.FillText(fmt.Sprintf("Current Player: %s", g.current), w/2, g.boardY-20, core.TextStyle{Size: max(h/30, 10), Align: core.AlignCenter, Color: textColor})
	hud.Label(s, fmt.Sprintf("Score: %d", g.score), 10, 30, textColor)

	if g.ended {
		title := "It's a draw!"
		if g.winLine != nil {
			title = fmt.Sprintf("Player %s wins!", g.current)
		}
		hud.Overlay(s, title, "Click to play again")
	}
}

func (g *Game) lineAnimating() bool {
	for _, a := range g.animations {
		if a.Kind == AnimLine {
			return true
		}
	}
	return false
}

// drawMark draws an X as two strokes (the second after the first is
// halfway) or an O as a growing arc, at the given progress.
func (g *Game) drawMark(s core.Surface, i int, m Mark, progress float64) {
	c := g.cellCenter(i)
	size := g.cell * 0.4
	width := max(1, g.cell/15)

	if m == O {
		if progress >= 1 {
			s.StrokeCircle(c, size, width, oColor)
			return
		}
		s.StrokeArc(c, size, 0, progress*2*math.Pi, width, oColor)
		return
	}

	l1 := size * 2 * progress
	s.StrokeLine(
		core.Vec{X: c.X - size, Y: c.Y - size},
		core.Vec{X: min(c.X-size+l1, c.X+size), Y: min(c.Y-size+l1, c.Y+size)},
		width, xColor,
	)
	if progress > 0.5 {
		l2 := size * 2 * (progress - 0.5) * 2
		s.StrokeLine(
			core.Vec{X: c.X + size, Y: c.Y - size},
			core.Vec{X: max(c.X+size-l2, c.X-size), Y: min(c.Y-size+l2, c.Y+size)},
			width, xColor,
		)
	}
}

// Board returns a copy of the board.
func (g *Game) Board() Board { return g.board }

// Current returns the player to move (the winner once a line is made).
func (g *Game) Current() Mark { return g.current }

// WinLine returns the winning triple, or nil.
func (g *Game) WinLine() []int { return g.winLine }

// Ended reports whether the round is over.
func (g *Game) Ended() bool { return g.ended }

// Score returns the number of rounds won.
func (g *Game) Score() int { return g.score }

// Animations returns the number of running animations.
func (g *Game) Animations() int { return len(g.animations) }

// Disposed reports whether the game has released its host resources.
func (g *Game) Disposed() bool { return g.run.Disposed() }
