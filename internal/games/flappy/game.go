// Package flappy implements Obstacle-Flight, a Flappy Bird-style game.
// The player flaps a bird through gaps in pipes that scroll ever faster.
package flappy

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/games/hud"
	"github.com/vovakirdan/canvas-arcade/internal/lifecycle"
	"github.com/vovakirdan/canvas-arcade/internal/particle"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "flappy"

const (
	flapTilt   = -30 * math.Pi / 180
	maxTilt    = 90 * math.Pi / 180
	tiltEasing = 0.1
	wingSwing  = 30.0 // Degrees either side
	wingRate   = 0.2
)

var (
	skyTop    = core.MustHex("#1A237E")
	skyMid    = core.MustHex("#3949AB")
	skyBottom = core.MustHex("#5C6BC0")

	bodyColor  = core.MustHex("#FFC107")
	wingColor  = core.MustHex("#FF9800")
	eyeColor   = core.MustHex("#ffffff")
	pupilColor = core.MustHex("#000000")
	beakColor  = core.MustHex("#FF5722")

	pipeMain      = core.MustHex("#4CAF50")
	pipeHighlight = core.MustHex("#81C784")
	pipeShadow    = core.MustHex("#2E7D32")
	pipeCap       = core.MustHex("#388E3C")

	textColor = core.MustHex("#ffffff")
)

// Game implements Obstacle-Flight.
type Game struct {
	env       registry.Env
	cfg       config.FlappyConfig
	run       *lifecycle.Runner
	particles *particle.Pool
	pipes     *PipeField
	scenery   *scenery

	// Bird
	birdX, birdY float64
	velocity     float64
	rotation     float64
	wingAngle    float64
	wingDir      float64

	speed    float64 // Pipe speed in reference pixels per frame
	score    int
	started  bool
	gameOver bool
	frames   int
	rounds   int

	// Layout, recomputed on Resize
	w, h     float64
	scale    float64
	birdSize float64
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Flappy Bird"}, func(env registry.Env) (registry.Game, error) {
		return New(env)
	})
}

// New creates an Obstacle-Flight game bound to env.
func New(env registry.Env) (*Game, error) {
	cfg := env.Config.Flappy
	if cfg.ReferenceHeight <= 0 || cfg.SpeedEvery <= 0 {
		return nil, fmt.Errorf("flappy: invalid reference height %v", cfg.ReferenceHeight)
	}
	if env.Surface == nil || env.Frames == nil || env.Input == nil || env.Rand == nil {
		return nil, errors.New("flappy: incomplete environment")
	}

	g := &Game{
		env:       env,
		cfg:       cfg,
		run:       lifecycle.NewRunner(env.Frames, env.Input, env.UI),
		particles: particle.NewPool(env.Rand),
		pipes:     NewPipeField(env.Rand),
		scenery:   newScenery(env.Rand.Int63()),
		wingDir:   1,
		speed:     cfg.BaseSpeed,
	}
	g.Resize()
	g.birdY = g.h / 2
	g.pipes.Spawn()
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Flappy Bird" }

// Start binds input and begins the frame loop.
func (g *Game) Start() error {
	return g.run.Start(g.frame, func() {
		g.run.BindKey(g.handleKey)
		g.run.BindClick(g.handleClick)
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

// Resize scales the physics to the surface height and refits the pipes,
// the bird and the backdrop to the surface.
func (g *Game) Resize() {
	g.w, g.h = g.env.Surface.Size()
	g.scale = 1
	if g.h > 0 {
		g.scale = g.h / g.cfg.ReferenceHeight
	}

	g.birdX = g.w / 3
	g.birdSize = min(g.cfg.BirdSize*g.scale, g.w/20)
	g.pipes.Layout(g.w, g.h,
		min(g.cfg.PipeWidth*g.scale, g.w/8),
		min(g.cfg.PipeGap*g.scale, g.h/3),
		min(g.cfg.PipeSpacing*g.scale, g.w/2),
		g.cfg.MinPipeHeight*g.scale,
	)
	g.scenery.layout(g.w, g.h)
}

func (g *Game) handleKey(ev core.KeyEvent) {
	if ev.Key == core.KeySpace {
		g.press()
	}
}

func (g *Game) handleClick(core.ClickEvent) {
	g.press()
}

func (g *Game) press() {
	if !g.started {
		g.started = true
		return
	}
	g.flap()
}

func (g *Game) flap() {
	if g.gameOver {
		g.restart()
		return
	}

	g.velocity = g.cfg.FlapImpulse * g.scale
	g.rotation = flapTilt
	g.particles.Spawn(particle.Burst{
		Origin: core.Vec{X: g.birdX - g.birdSize/2, Y: g.birdY},
		Count:  g.cfg.Burst.Count,
		VelX:   particle.Range{Min: -g.cfg.Burst.Speed - 1, Max: -1},
		VelY:   particle.Range{Min: -1, Max: 1},
		Size:   particle.Range{Min: 2, Max: 5},
		Life:   g.cfg.Burst.Life,
		Color:  wingColor,
	})
	g.play(core.CueFlap)
}

func (g *Game) restart() {
	g.score = 0
	g.gameOver = false
	g.birdY = g.h / 2
	g.velocity = 0
	g.rotation = 0
	g.speed = g.cfg.BaseSpeed
	g.pipes.Reset()
	g.pipes.Spawn()
	g.rounds++
	g.env.Reporter.ReportRestarted()
	g.env.Reporter.ReportScore(0)
}

// Update advances physics, pipes and scoring once per frame while a round
// is running. A crashed bird stays frozen until the next flap.
func (g *Game) Update(time.Duration) {
	g.particles.Advance()
	if !g.started || g.gameOver {
		return
	}
	g.frames++

	g.velocity += g.cfg.Gravity * g.scale
	g.birdY += g.velocity

	target := flapTilt
	if g.velocity > 0 {
		target = min(maxTilt, g.velocity*0.05)
	}
	g.rotation += (target - g.rotation) * tiltEasing

	g.wingAngle += wingRate * g.wingDir
	if g.wingAngle > wingSwing || g.wingAngle < -wingSwing {
		g.wingDir = -g.wingDir
	}

	passed := g.pipes.Update(g.speed*g.scale, g.birdX)
	for range passed {
		g.score++
		g.env.Reporter.ReportScore(g.score)
		if g.score%g.cfg.SpeedEvery == 0 {
			g.speed += g.cfg.SpeedStep
		}
	}
	g.scenery.advance()

	if g.crashed() {
		g.gameOver = true
		g.env.Reporter.ReportEnded(g.score)
		g.play(core.CueGameOver)
	}
}

func (g *Game) crashed() bool {
	half := g.birdSize / 2
	if g.birdY+half > g.h || g.birdY-half < 0 {
		return true
	}
	return g.pipes.Collides(g.birdX, g.birdY, g.birdSize)
}

func (g *Game) play(c core.Cue) {
	if g.env.Cues != nil {
		g.env.Cues.Play(c)
	}
}

// Draw renders the sky, backdrop, pipes, bird, particles and HUD.
func (g *Game) Draw() {
	s := g.env.Surface
	if g.w <= 0 || g.h <= 0 {
		return
	}

	s.Clear(skyTop)
	s.FillGradient(core.NewRect(0, 0, g.w, g.h), core.Gradient{
		Kind: core.GradientLinear,
		To:   core.Vec{Y: g.h},
		Stops: []core.GradientStop{
			{Offset: 0, Color: skyTop},
			{Offset: 0.5, Color: skyMid},
			{Offset: 1, Color: skyBottom},
		},
	})
	g.scenery.draw(s)

	width := g.pipes.Width()
	for _, p := range g.pipes.Pipes() {
		drawPipe(s, p.TopRect(width), false)
		drawPipe(s, p.BottomRect(width, g.h), true)
	}

	g.drawBird(s)
	g.particles.Render(s)

	size := max(g.h/20, 12)
	s.FillText(fmt.Sprintf("Score: %d", g.score), g.w/2, size*1.6, core.TextStyle{Size: size, Align: core.AlignCenter, Bold: true, Color: textColor})

	switch {
	case !g.started:
		hud.Overlay(s, "Flappy Bird", "Press SPACE to Start")
	case g.gameOver:
		hud.Overlay(s, "Game Over!", fmt.Sprintf("Score: %d. Click or press Space to play again", g.score))
	}
}

// drawPipe draws one pipe body with its cap on the gap side.
func drawPipe(s core.Surface, r core.Rect, capOnTop bool) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	stops := func(mid core.Color) []core.GradientStop {
		return []core.GradientStop{
			{Offset: 0, Color: pipeShadow},
			{Offset: 0.3, Color: mid},
			{Offset: 0.7, Color: mid},
			{Offset: 1, Color: pipeHighlight},
		}
	}
	s.FillGradient(r, core.Gradient{
		Kind:  core.GradientLinear,
		From:  core.Vec{X: r.X},
		To:    core.Vec{X: r.Right()},
		Stops: stops(pipeMain),
	})

	capH := min(20, r.H*0.1)
	capW := r.W * 1.2
	capX := r.X - (capW-r.W)/2
	capY := r.Bottom() - capH
	if capOnTop {
		capY = r.Y
	}
	s.FillGradient(core.NewRect(capX, capY, capW, capH), core.Gradient{
		Kind:  core.GradientLinear,
		From:  core.Vec{X: capX},
		To:    core.Vec{X: capX + capW},
		Stops: stops(pipeCap),
	})

	spacing := min(30, r.H/5)
	y, end := r.Y+spacing, r.Bottom()-capH
	if capOnTop {
		y, end = r.Y+capH+spacing, r.Bottom()
	}
	for ; y < end; y += spacing {
		s.StrokeLine(core.Vec{X: r.X + 5, Y: y}, core.Vec{X: r.Right() - 5, Y: y}, 2, pipeShadow)
	}
}

// drawBird draws the bird rotated about its center.
func (g *Game) drawBird(s core.Surface) {
	c := core.Vec{X: g.birdX, Y: g.birdY}
	r := g.birdSize / 2
	at := func(v core.Vec) core.Vec { return c.Add(v.Rotate(g.rotation)) }

	s.FillCircle(c, r, bodyColor)

	wing := make([]core.Vec, 0, 12)
	tilt := g.wingAngle * math.Pi / 180
	for i := range 12 {
		a := float64(i) / 12 * 2 * math.Pi
		p := core.Vec{X: r/2*math.Cos(a) - r/4, Y: r / 4 * math.Sin(a)}
		wing = append(wing, at(p.Rotate(tilt)))
	}
	s.FillPolygon(wing, wingColor)

	s.FillCircle(at(core.Vec{X: r / 2, Y: -r / 4}), r/4, eyeColor)
	s.FillCircle(at(core.Vec{X: r/2 + r/8, Y: -r / 4}), r/8, pupilColor)
	s.FillPolygon([]core.Vec{
		at(core.Vec{X: r}),
		at(core.Vec{X: r * 1.5, Y: -r / 4}),
		at(core.Vec{X: r * 1.5, Y: r / 4}),
	}, beakColor)
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Started reports whether the first flap has been made.
func (g *Game) Started() bool { return g.started }

// GameOver reports whether the bird has crashed.
func (g *Game) GameOver() bool { return g.gameOver }

// Disposed reports whether the game has released its host resources.
func (g *Game) Disposed() bool { return g.run.Disposed() }

// Bird returns the bird's center and vertical velocity.
func (g *Game) Bird() (x, y, velocity float64) { return g.birdX, g.birdY, g.velocity }

// Speed returns the pipe speed in reference pixels per frame.
func (g *Game) Speed() float64 { return g.speed }

// Rotation returns the bird's tilt in radians.
func (g *Game) Rotation() float64 { return g.rotation }

// Pipes returns the live pipes.
func (g *Game) Pipes() []Pipe { return g.pipes.Pipes() }

// Particles returns the number of live particles.
func (g *Game) Particles() int { return g.particles.Len() }
