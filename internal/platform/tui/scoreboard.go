package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/canvas-arcade/internal/registry"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

const (
	maxScores  = 50 // rows loaded per page
	recentPage = "Recent"
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next page")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev page")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the ledger over the selection screen. The first
// page lists the latest runs of every game; each following page holds one
// game's top scores.
type ScoreboardModel struct {
	store    *storage.Store
	pages    []registry.GameInfo
	page     int
	entries  []storage.ScoreEntry
	stats    storage.GameStats
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// scoreboardClosedMsg tells the host model the scoreboard was closed.
type scoreboardClosedMsg struct{}

// NewScoreboardModel opens the board on the recent-runs page.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	pages := append([]registry.GameInfo{{ID: "", Title: recentPage}}, registry.List()...)
	m := ScoreboardModel{
		store:  store,
		pages:  pages,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.load()
	return m
}

// recent reports whether the current page is the cross-game page.
func (m ScoreboardModel) recent() bool {
	return m.pages[m.page].ID == ""
}

// load fetches the current page from the store and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.entries, m.stats, m.err = nil, storage.GameStats{}, nil
	if m.store != nil {
		if m.recent() {
			m.entries, m.err = m.store.Recent(maxScores)
		} else {
			id := m.pages[m.page].ID
			m.entries, m.err = m.store.TopScores(id, maxScores)
			if m.err == nil {
				m.stats, m.err = m.store.Stats(id)
			}
		}
	}
	m.table = m.buildTable()
}

func (m ScoreboardModel) buildTable() table.Model {
	first := table.Column{Title: "Rank", Width: 6}
	if m.recent() {
		first = table.Column{Title: "Game", Width: 16}
	}
	columns := []table.Column{
		first,
		{Title: "Score", Width: 8},
		{Title: "Player", Width: 12},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 12},
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		lead := fmt.Sprintf("#%d", i+1)
		if m.recent() {
			lead = registry.Title(e.GameID)
		}
		player := e.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{lead, fmt.Sprintf("%d", e.Score), player, formatDuration(e.Duration), e.CreatedAt.Format("Jan 02 15:04")}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles paging, scrolling and closing.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return scoreboardClosedMsg{} }
		case key.Matches(msg, m.keys.Next):
			m.page = (m.page + 1) % len(m.pages)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.page = (m.page + len(m.pages) - 1) % len(m.pages)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the page tabs, the table and a stats line.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.pages))
	for i, p := range m.pages {
		if i == m.page {
			tabs[i] = boardActiveTab.Render(p.Title)
		} else {
			tabs[i] = boardTabStyle.Render(p.Title)
		}
	}
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(tabLine) > m.width {
		tabLine = fmt.Sprintf("< %s >", m.pages[m.page].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.err != nil:
		body = boardEmptyStyle.Render("Could not read scores: " + m.err.Error())
	case len(m.entries) == 0:
		body = boardEmptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	default:
		body = m.table.View()
	}
	b.WriteString(boardFrameStyle.Render(body))

	if m.stats.Runs > 0 {
		line := fmt.Sprintf("%d runs  best %d  avg %.1f  played %s",
			m.stats.Runs, m.stats.HighScore, m.stats.AvgScore, formatDuration(m.stats.TotalTime))
		b.WriteString("\n")
		b.WriteString(boardStatsStyle.Render(line))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsQuitting reports whether the user asked to leave the program.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
