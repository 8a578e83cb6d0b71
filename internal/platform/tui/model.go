package tui

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/canvas"
	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/frame"
	"github.com/vovakirdan/canvas-arcade/internal/input"
	"github.com/vovakirdan/canvas-arcade/internal/platform/hostui"
	"github.com/vovakirdan/canvas-arcade/internal/session"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

// chromeRows is the number of terminal rows below the game: status and help.
const chromeRows = 2

// Options configures a terminal host.
type Options struct {
	// Game starts this game right away. Empty shows the selection screen.
	Game   string
	Config config.Config
	Store  *storage.Store
	Cues   core.CuePlayer
	Logger *log.Logger
	// Player is recorded with every saved score.
	Player string
	Seed   int64
	// Width and Height are the initial terminal size in cells.
	Width, Height int
}

// Model is the Bubble Tea model hosting a session.
type Model struct {
	mgr    *session.Manager
	raster *canvas.Raster
	ui     *hostui.State
	store  *storage.Store
	logger *log.Logger
	scores *ScoreboardModel

	keys     KeyMap
	help     help.Model
	fps      int
	start    time.Time
	width    int
	height   int
	quitting bool
}

// NewModel builds the host and enters the first screen.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}

	w, h := PixelSize(opts.Width, opts.Height-chromeRows)
	raster := canvas.NewRaster(w, h)
	ui := hostui.New()

	mgr, err := session.New(session.Options{
		Surface:  raster,
		Loop:     frame.NewLoop(),
		Router:   input.NewRouter(),
		UI:       ui,
		Cues:     opts.Cues,
		Config:   opts.Config,
		Logger:   logger,
		Seed:     opts.Seed,
		OnResize: raster.Resize,
		OnEnded:  recorder(opts.Store, opts.Player, logger),
	})
	if err != nil {
		return Model{}, err
	}

	if opts.Game != "" {
		if err := mgr.SelectGame(opts.Game); err != nil {
			mgr.Close()
			return Model{}, err
		}
	} else {
		mgr.ReturnToSelection()
	}

	hm := help.New()
	hm.Width = opts.Width

	return Model{
		mgr:    mgr,
		raster: raster,
		ui:     ui,
		store:  opts.Store,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   hm,
		fps:    opts.Config.Host.FPS,
		start:  time.Now(),
		width:  opts.Width,
		height: opts.Height,
	}, nil
}

// recorder saves every scoring run to the ledger.
func recorder(store *storage.Store, player string, logger *log.Logger) func(session.Result) {
	return func(r session.Result) {
		if store == nil || r.Score <= 0 {
			return
		}
		run := storage.Run{ID: r.RunID, GameID: r.Kind, Player: player, Score: r.Score, Duration: r.Duration}
		if _, err := store.SaveScore(run); err != nil {
			logger.Warn("saving score failed", "game", r.Kind, "err", err)
			return
		}
		logger.Debug("score saved", "game", r.Kind, "score", r.Score, "player", player)
	}
}

// Session exposes the hosted session.
func (m Model) Session() *session.Manager {
	return m.mgr
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case scoreboardClosedMsg:
		m.scores = nil
		return m, nil

	case TickMsg:
		m.mgr.Tick(time.Since(m.start))
		return m, tickCmd(m.fps)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.scores != nil {
		next, cmd := m.scores.Update(msg)
		sb := next.(ScoreboardModel)
		m.scores = &sb
		if sb.IsQuitting() {
			m.mgr.Close()
			m.quitting = true
		}
		return m, cmd
	}

	idle := m.mgr.Phase() == session.PhaseIdle
	switch {
	case idle && key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case idle && m.store != nil && key.Matches(msg, m.keys.Scores):
		sb := NewScoreboardModel(m.store, m.width, m.height)
		m.scores = &sb
		return m, nil
	case key.Matches(msg, m.keys.Back) && m.ui.Activate():
		return m, nil
	}

	// The alt screen has no scrolling to suppress, so whether the session
	// consumed the key does not matter here.
	if k, ok := ToCoreKey(msg); ok {
		m.mgr.HandleKey(core.KeyEvent{Key: k})
	}
	return m, nil
}

// handleMouse turns a left click into a surface click. A click on the
// status line activates the affordance shown there.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.scores != nil || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	rows := m.gameRows()
	switch {
	case msg.Y < rows:
		m.mgr.HandleClick(core.ClickEvent{X: float64(msg.X) + 0.5, Y: float64(msg.Y)*2 + 1})
	case msg.Y == rows:
		m.ui.Activate()
	}
	return m, nil
}

// handleResize reallocates the raster and lets the session re-layout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width
	m.mgr.Resize(PixelSize(m.width, m.gameRows()))

	if m.scores != nil {
		next, cmd := m.scores.Update(msg)
		sb := next.(ScoreboardModel)
		m.scores = &sb
		return m, cmd
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.mgr.Close()
	m.quitting = true
	return m, tea.Quit
}

func (m Model) gameRows() int {
	return max(m.height-chromeRows, 0)
}

// saveScreenshot writes the current raster as a PNG under ~/.arcade/screenshots.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	name := m.mgr.Kind()
	if name == "" {
		name = "menu"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, time.Now().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, m.raster.Image()); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}

	footer := ""
	if m.ui.ControlsVisible() {
		footer = helpStyle.Render(m.help.View(m.keys))
	}
	return RenderRaster(m.raster) + "\n" + statusLine(m.ui, m.width) + "\n" + footer
}

// Run starts the Bubble Tea program in the current terminal.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks drive Tic-Tac-Toe and the selection screen
	)

	_, err = p.Run()
	model.mgr.Close()
	return err
}
