// Package session owns the shared surface and the one active game. It moves
// between the selection screen, an active game and a finished game, and
// mediates everything the game reports back to the host.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/frame"
	"github.com/vovakirdan/canvas-arcade/internal/input"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// Phase is the session state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "idle"
	}
}

// Prompt texts shown through the host UI.
const (
	PromptSelect = "Select a game to play"
	backLabel    = "Back to Menu"
)

// Result describes a finished run. It is handed to Options.OnEnded.
type Result struct {
	RunID    uuid.UUID
	Kind     string
	Score    int
	Duration time.Duration
}

// Options configures a Manager. Surface, Loop, Router and UI are required.
type Options struct {
	Surface core.Surface
	Loop    *frame.Loop
	Router  *input.Router
	UI      core.HostUI
	Cues    core.CuePlayer
	Config  config.Config
	Logger  *log.Logger

	// Seed feeds every game's random source. Zero picks a time-based seed.
	Seed int64

	// OnResize lets the surface owner reallocate before games re-layout.
	OnResize func(w, h int)
	// OnEnded is told about every finished run.
	OnEnded func(Result)
}

// Manager runs one game at a time on a shared surface.
// It is confined to the host's frame goroutine.
type Manager struct {
	surface core.Surface
	loop    *frame.Loop
	router  *input.Router
	ui      core.HostUI
	cues    core.CuePlayer
	cfg     config.Config
	logger  *log.Logger
	seeds   *rand.Rand

	onResize func(w, h int)
	onEnded  func(Result)

	phase   Phase
	score   int
	base    int // score when the current run began
	menu    bool
	kind    string
	runID   uuid.UUID
	started time.Duration
	now     time.Duration
	active  registry.Game
	gen     uint64

	frames *frame.Scope
	input  *input.Scope
	gameUI *uiScope
	back   core.AffordanceID

	items []menuItem
}

// New creates a Manager in the idle phase. Call ReturnToSelection to show
// the selection screen.
func New(opts Options) (*Manager, error) {
	if opts.Surface == nil || opts.Loop == nil || opts.Router == nil || opts.UI == nil {
		return nil, errors.New("session: surface, loop, router and ui are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cues := opts.Cues
	if cues == nil {
		cues = core.NopCues{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Manager{
		surface:  opts.Surface,
		loop:     opts.Loop,
		router:   opts.Router,
		ui:       opts.UI,
		cues:     cues,
		cfg:      opts.Config,
		logger:   logger.WithPrefix("session"),
		seeds:    rand.New(rand.NewSource(seed)),
		onResize: opts.OnResize,
		onEnded:  opts.OnEnded,
	}, nil
}

// SelectGame tears down the current game and starts kind. On any
// construction or start failure the session falls back to the selection
// screen and the error is returned.
func (m *Manager) SelectGame(kind string) error {
	m.teardown()

	m.score = 0
	m.base = 0
	m.kind = kind
	m.items = nil
	m.menu = false
	m.runID = uuid.New()
	m.started = m.now
	m.ui.HidePrompt()
	m.ui.SetScrollLock(true)
	m.ui.SetControlsVisible(false)

	m.frames = m.loop.Scope()
	m.input = m.router.Scope()
	m.gameUI = newUIScope(m.ui, m.gameWithdrew)
	gen := m.gen
	env := registry.Env{
		Surface:  m.surface,
		Frames:   m.frames,
		Input:    m.input,
		UI:       m.gameUI,
		Reporter: &reporter{m: m, gen: gen},
		Cues:     m.cues,
		Rand:     rand.New(rand.NewSource(m.seeds.Int63())),
		Config:   m.cfg,
		Logger:   m.logger.With("game", kind),
		Exit: func() {
			if m.gen == gen {
				m.ReturnToSelection()
			}
		},
	}

	m.phase = PhaseActive
	if err := m.launch(kind, env); err != nil {
		m.logger.Error("game failed to start", "kind", kind, "error", err)
		m.ReturnToSelection()
		return fmt.Errorf("session: start %s: %w", kind, err)
	}
	m.logger.Info("game started", "kind", kind, "run", m.runID)
	return nil
}

// launch constructs and starts the game, turning panics into errors. A
// game that was constructed stays referenced so teardown can dispose it.
func (m *Manager) launch(kind string, env registry.Env) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	g, err := registry.Create(kind, env)
	if err != nil {
		return err
	}
	if g == nil {
		return errors.New("factory returned no game")
	}
	m.active = g
	return g.Start()
}

// ReturnToSelection disposes the active game, if any, and shows the
// selection screen. Safe to call repeatedly.
func (m *Manager) ReturnToSelection() {
	if m.active != nil {
		m.logger.Info("leaving game", "kind", m.kind, "phase", m.phase, "score", m.score)
	}
	m.teardown()
	m.kind = ""
	m.menu = true
	m.ui.SetScrollLock(false)
	m.ui.SetControlsVisible(true)
	m.ui.ShowPrompt(PromptSelect)
	m.drawSelection()
}

// teardown releases everything the current game could still reach: the game
// itself, its frames, its listeners and its affordances. Afterwards no
// reporter or exit callback handed to it has any effect.
func (m *Manager) teardown() {
	m.phase = PhaseIdle
	m.gen++

	if g := m.active; g != nil {
		m.active = nil
		if d, ok := g.(registry.Disposer); ok {
			m.dispose(d)
		}
	}
	if m.frames != nil {
		m.frames.Close()
		m.frames = nil
	}
	if m.input != nil {
		m.input.Close()
		m.input = nil
	}
	if m.gameUI != nil {
		m.gameUI.Close()
		m.gameUI = nil
	}
	m.withdrawBack()
}

func (m *Manager) dispose(d registry.Disposer) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("dispose panicked", "kind", m.kind, "panic", r)
		}
	}()
	d.Dispose()
}

// offerBack adds the manager's own back affordance once a finished game no
// longer shows one.
func (m *Manager) offerBack() {
	if m.phase != PhaseEnded || m.back != 0 || m.gameUI == nil || m.gameUI.Len() > 0 {
		return
	}
	m.back = m.ui.AddAffordance(backLabel, m.ReturnToSelection)
}

func (m *Manager) withdrawBack() {
	if m.back != 0 {
		m.ui.RemoveAffordance(m.back)
		m.back = 0
	}
}

func (m *Manager) gameWithdrew() {
	m.offerBack()
}

func (m *Manager) reportScore(v int) {
	if m.phase == PhaseActive && v < m.score {
		// A game that resets in place without ending still closes the run.
		if m.score > m.base {
			m.logger.Info("run reset", "kind", m.kind, "score", m.score)
			m.finishRun(m.score)
			m.runID = uuid.New()
			m.started = m.now
		}
		m.base = v
	}
	m.score = v
	if m.phase == PhaseEnded {
		m.ui.ShowPrompt(finalPrompt(v))
		return
	}
	m.ui.HidePrompt()
}

func (m *Manager) reportEnded(final int) {
	m.phase = PhaseEnded
	m.score = final
	m.ui.ShowPrompt(finalPrompt(final))
	m.logger.Info("game ended", "kind", m.kind, "score", final)
	m.finishRun(final)
	m.offerBack()
}

// finishRun hands the current run to OnEnded. The run is credited with
// what it added to the game's score, so a game that keeps its score across
// rounds records each round's gain once.
func (m *Manager) finishRun(score int) {
	if m.onEnded == nil {
		return
	}
	m.onEnded(Result{
		RunID:    m.runID,
		Kind:     m.kind,
		Score:    score - m.base,
		Duration: m.now - m.started,
	})
}

func (m *Manager) reportRestarted() {
	m.phase = PhaseActive
	m.base = m.score
	m.runID = uuid.New()
	m.started = m.now
	m.withdrawBack()
	m.ui.HidePrompt()
	m.logger.Debug("round restarted", "kind", m.kind, "run", m.runID)
}

func finalPrompt(score int) string {
	return fmt.Sprintf("Game Over! Final Score: %d", score)
}

// HandleKey routes a key-down. It reports whether the key was consumed, in
// which case the host must not act on it (arrow keys and space while a game
// is on screen).
func (m *Manager) HandleKey(ev core.KeyEvent) bool {
	if m.phase == PhaseIdle {
		return m.selectByKey(ev.Key)
	}
	if ev.Key == core.KeyEscape {
		m.ReturnToSelection()
		return true
	}
	m.router.DispatchKey(ev)
	return ev.Key.IsDirectional() || ev.Key == core.KeySpace
}

// HandleClick routes a pointer click in surface coordinates.
func (m *Manager) HandleClick(ev core.ClickEvent) {
	if m.phase == PhaseIdle {
		m.selectByClick(ev.X, ev.Y)
		return
	}
	m.router.DispatchClick(ev)
}

// Resize tells the surface owner about the new size, then lets the active
// game recompute its layout.
func (m *Manager) Resize(w, h int) {
	if m.onResize != nil {
		m.onResize(w, h)
	}
	if m.active == nil {
		if m.menu {
			m.drawSelection()
		}
		return
	}
	if r, ok := m.active.(registry.Resizer); ok {
		r.Resize()
	}
}

// Tick runs one host frame.
func (m *Manager) Tick(ts time.Duration) {
	if ts > m.now {
		m.now = ts
	}
	m.loop.Tick(ts)
}

// Phase returns the session phase.
func (m *Manager) Phase() Phase { return m.phase }

// Score returns the last score the active game reported. It is the game's
// own running total and survives restarts.
func (m *Manager) Score() int { return m.score }

// Kind returns the ID of the active game, or "".
func (m *Manager) Kind() string { return m.kind }

// Active returns the active game, or nil.
func (m *Manager) Active() registry.Game { return m.active }

// RunID identifies the current run. It changes on every start and restart.
func (m *Manager) RunID() uuid.UUID { return m.runID }

// Close tears down the active game without drawing the selection screen.
func (m *Manager) Close() {
	m.teardown()
	m.kind = ""
	m.items = nil
	m.menu = false
}

// reporter is the Reporter handed to one game. It goes quiet once that game
// is torn down.
type reporter struct {
	m   *Manager
	gen uint64
}

func (r *reporter) live() bool { return r.m.gen == r.gen }

func (r *reporter) ReportScore(v int) {
	if r.live() {
		r.m.reportScore(v)
	}
}

func (r *reporter) ReportEnded(final int) {
	if r.live() {
		r.m.reportEnded(final)
	}
}

func (r *reporter) ReportRestarted() {
	if r.live() {
		r.m.reportRestarted()
	}
}
