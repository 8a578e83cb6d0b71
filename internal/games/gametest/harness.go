// Package gametest wires games to an in-memory host for tests.
package gametest

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/canvas"
	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/frame"
	"github.com/vovakirdan/canvas-arcade/internal/input"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// UI records host UI calls.
type UI struct {
	Prompt      string
	PromptShown bool
	ScrollLock  bool
	Controls    bool
	Affordances map[core.AffordanceID]string
	actions     map[core.AffordanceID]func()
	next        core.AffordanceID
}

// NewUI creates an empty UI recorder.
func NewUI() *UI {
	return &UI{
		Affordances: make(map[core.AffordanceID]string),
		actions:     make(map[core.AffordanceID]func()),
	}
}

// ShowPrompt implements core.HostUI.
func (u *UI) ShowPrompt(text string)          { u.Prompt, u.PromptShown = text, true }
func (u *UI) HidePrompt()                     { u.PromptShown = false }
func (u *UI) SetScrollLock(locked bool)       { u.ScrollLock = locked }
func (u *UI) SetControlsVisible(visible bool) { u.Controls = visible }

func (u *UI) AddAffordance(label string, onActivate func()) core.AffordanceID {
	u.next++
	u.Affordances[u.next] = label
	u.actions[u.next] = onActivate
	return u.next
}

func (u *UI) RemoveAffordance(id core.AffordanceID) {
	delete(u.Affordances, id)
	delete(u.actions, id)
}

// Activate runs the first affordance with the given label.
func (u *UI) Activate(label string) bool {
	for id, l := range u.Affordances {
		if l == label {
			if fn := u.actions[id]; fn != nil {
				fn()
			}
			return true
		}
	}
	return false
}

// Reporter records score reports.
type Reporter struct {
	Scores   []int
	Ended    []int
	Restarts int
}

func (r *Reporter) ReportScore(v int) { r.Scores = append(r.Scores, v) }
func (r *Reporter) ReportEnded(v int) { r.Ended = append(r.Ended, v) }
func (r *Reporter) ReportRestarted()  { r.Restarts++ }

// LastScore returns the most recent ReportScore value, or -1.
func (r *Reporter) LastScore() int {
	if len(r.Scores) == 0 {
		return -1
	}
	return r.Scores[len(r.Scores)-1]
}

// Cues records played sound cues.
type Cues struct {
	Played []core.Cue
}

func (c *Cues) Play(cue core.Cue) { c.Played = append(c.Played, cue) }

// Harness is a fake host.
type Harness struct {
	Surface  *canvas.Recorder
	Loop     *frame.Loop
	Router   *input.Router
	UI       *UI
	Reporter *Reporter
	Cues     *Cues
	Config   config.Config
	Exits    int

	now time.Duration
}

// New creates a harness with an 800x600 surface and default config.
func New() *Harness {
	return &Harness{
		Surface:  canvas.NewRecorder(800, 600),
		Loop:     frame.NewLoop(),
		Router:   input.NewRouter(),
		UI:       NewUI(),
		Reporter: &Reporter{},
		Cues:     &Cues{},
		Config:   config.Default(),
	}
}

// Env builds an Env for a game seeded with seed.
func (h *Harness) Env(seed int64) registry.Env {
	return registry.Env{
		Surface:  h.Surface,
		Frames:   h.Loop,
		Input:    h.Router,
		UI:       h.UI,
		Reporter: h.Reporter,
		Cues:     h.Cues,
		Rand:     rand.New(rand.NewSource(seed)),
		Config:   h.Config,
		Logger:   log.New(io.Discard),
		Exit:     func() { h.Exits++ },
	}
}

// Advance moves the clock by d and runs one frame.
func (h *Harness) Advance(d time.Duration) {
	h.now += d
	h.Loop.Tick(h.now)
}

// Frames runs n frames of d each.
func (h *Harness) Frames(n int, d time.Duration) {
	for range n {
		h.Advance(d)
	}
}

// Now returns the harness clock.
func (h *Harness) Now() time.Duration {
	return h.now
}

// Key dispatches a key-down.
func (h *Harness) Key(k core.Key) {
	h.Router.DispatchKey(core.KeyEvent{Key: k})
}

// Click dispatches a click.
func (h *Harness) Click(x, y float64) {
	h.Router.DispatchClick(core.ClickEvent{X: x, Y: y})
}
