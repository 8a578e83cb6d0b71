// Package window hosts the arcade in a desktop window with Ebiten. Games draw
// through a vector-backed surface; a footer strip below it shows the prompt
// and clickable affordance buttons.
package window

import (
	"errors"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/frame"
	"github.com/vovakirdan/canvas-arcade/internal/input"
	"github.com/vovakirdan/canvas-arcade/internal/platform/hostui"
	"github.com/vovakirdan/canvas-arcade/internal/session"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

// Footer geometry in pixels.
const (
	footerHeight = 40
	buttonWidth  = 150
	buttonHeight = 28
	buttonGap    = 8
)

var (
	footerColor = core.MustHex("#12122a")
	buttonColor = core.MustHex("#3f51b5")
	promptColor = core.MustHex("#fff59d")
)

// Options configures a window host.
type Options struct {
	// Game starts this game right away. Empty shows the selection screen.
	Game   string
	Title  string
	Config config.Config
	Store  *storage.Store
	Cues   core.CuePlayer
	Logger *log.Logger
	Player string
	Seed   int64
	// Width and Height are the initial window size.
	Width, Height int
}

// viewport is the drawing target the host sizes. *Surface in production.
type viewport interface {
	core.Surface
	Resize(w, h int)
}

// Host implements ebiten.Game around a session.
type Host struct {
	mgr    *session.Manager
	view   viewport
	ui     *hostui.State
	store  *storage.Store
	player string
	logger *log.Logger

	start  time.Time
	width  int
	height int
	keys   []ebiten.Key
	quit   bool
}

// New creates a host with an Ebiten surface.
func New(opts Options) (*Host, error) {
	w, h := gameArea(opts.Width, opts.Height)
	return newHost(opts, NewSurface(w, h))
}

func newHost(opts Options, view viewport) (*Host, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Host{
		view:   view,
		ui:     hostui.New(),
		store:  opts.Store,
		player: opts.Player,
		logger: logger,
		start:  time.Now(),
		width:  opts.Width,
		height: opts.Height,
	}

	mgr, err := session.New(session.Options{
		Surface:  view,
		Loop:     frame.NewLoop(),
		Router:   input.NewRouter(),
		UI:       h.ui,
		Cues:     opts.Cues,
		Config:   opts.Config,
		Logger:   logger,
		Seed:     opts.Seed,
		OnResize: view.Resize,
		OnEnded:  h.record,
	})
	if err != nil {
		return nil, err
	}
	h.mgr = mgr

	if opts.Game != "" {
		if err := mgr.SelectGame(opts.Game); err != nil {
			mgr.Close()
			return nil, err
		}
	} else {
		mgr.ReturnToSelection()
	}
	return h, nil
}

func (h *Host) record(r session.Result) {
	if h.store == nil || r.Score <= 0 {
		return
	}
	run := storage.Run{ID: r.RunID, GameID: r.Kind, Player: h.player, Score: r.Score, Duration: r.Duration}
	if _, err := h.store.SaveScore(run); err != nil {
		h.logger.Warn("saving score failed", "game", r.Kind, "err", err)
	}
}

// Session exposes the hosted session.
func (h *Host) Session() *session.Manager {
	return h.mgr
}

// Update implements ebiten.Game: input first, then one frame of the session.
func (h *Host) Update() error {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.pressKey(k)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		h.click(float64(x)+0.5, float64(y)+0.5)
	}

	h.mgr.Tick(time.Since(h.start))

	if h.quit {
		h.mgr.Close()
		return ebiten.Termination
	}
	return nil
}

// pressKey routes one key. Q quits from the selection screen and B
// activates the oldest affordance; everything else goes to the session.
func (h *Host) pressKey(k ebiten.Key) {
	switch {
	case k == ebiten.KeyQ && h.mgr.Phase() == session.PhaseIdle:
		h.quit = true
		return
	case k == ebiten.KeyB && h.ui.Activate():
		return
	}
	// Ebiten has no default key actions, so the consumed result is unused.
	if ck, ok := KeyToCore(k); ok {
		h.mgr.HandleKey(core.KeyEvent{Key: ck})
	}
}

// click routes a left click to the surface or to a footer button.
func (h *Host) click(x, y float64) {
	_, gh := gameArea(h.width, h.height)
	if y < float64(gh) {
		h.mgr.HandleClick(core.ClickEvent{X: x, Y: y})
		return
	}
	for _, b := range h.buttons() {
		if b.rect.Contains(x, y) {
			h.ui.ActivateID(b.id)
			return
		}
	}
}

type button struct {
	id    core.AffordanceID
	label string
	rect  core.Rect
}

// buttons lays the affordances out right-aligned in the footer.
func (h *Host) buttons() []button {
	_, gh := gameArea(h.width, h.height)
	items := h.ui.Affordances()
	out := make([]button, 0, len(items))
	x := float64(h.width) - buttonGap
	y := float64(gh) + (footerHeight-buttonHeight)/2
	for i := len(items) - 1; i >= 0; i-- {
		x -= buttonWidth
		out = append(out, button{
			id:    items[i].ID,
			label: items[i].Label,
			rect:  core.NewRect(x, y, buttonWidth, buttonHeight),
		})
		x -= buttonGap
	}
	return out
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	if s, ok := h.view.(*Surface); ok {
		screen.DrawImage(s.Image(), nil)
	}

	_, gh := gameArea(h.width, h.height)
	vector.DrawFilledRect(screen, 0, float32(gh), float32(h.width), footerHeight, footerColor, false)

	footer := NewSurfaceOn(screen)
	if text, shown := h.ui.Prompt(); shown {
		footer.FillText(text, buttonGap*2, float64(gh)+footerHeight/2, core.TextStyle{Size: 16, Bold: true, Color: promptColor})
	}
	for _, b := range h.buttons() {
		footer.FillRoundRect(b.rect, 6, buttonColor)
		c := b.rect.Center()
		footer.FillText(b.label, c.X, c.Y, core.TextStyle{Size: 14, Align: core.AlignCenter, Color: color.White})
	}
}

// Layout implements ebiten.Game. The window size is the logical size; a
// change resizes the surface and lets the session re-layout.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		h.mgr.Resize(gameArea(h.width, h.height))
	}
	return outsideWidth, outsideHeight
}

// gameArea returns the surface size for a window, leaving room for the footer.
func gameArea(w, hgt int) (int, int) {
	return max(w, 0), max(hgt-footerHeight, 0)
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 800, 600+footerHeight
	}
	if opts.Title == "" {
		opts.Title = "Canvas Arcade"
	}
	h, err := New(opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.Config.Host.FPS > 0 {
		ebiten.SetTPS(opts.Config.Host.FPS)
	}

	err = ebiten.RunGame(h)
	h.mgr.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
