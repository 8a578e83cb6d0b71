package session

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

var (
	menuBg     = core.MustHex("#1a1a2e")
	menuPanel  = core.MustHex("#16213e")
	menuAccent = core.MustHex("#e94560")
	menuText   = core.MustHex("#ffffff")
	menuHint   = core.MustHex("#a0a0c0")
)

// menuItem is one clickable game entry on the selection screen.
type menuItem struct {
	id   string
	rect core.Rect
}

// drawSelection paints the selection screen and remembers where each entry
// landed for click hit-testing.
func (m *Manager) drawSelection() {
	games := registry.List()
	m.items = m.items[:0]

	w, h := m.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	m.surface.Clear(menuBg)

	titleSize := max(h/12, 14)
	m.surface.FillText("Select a Game", w/2, h*0.18, core.TextStyle{Size: titleSize, Align: core.AlignCenter, Bold: true, Color: menuAccent})

	rowH := max(h/10, 24)
	rowW := min(w*0.6, 420)
	x := (w - rowW) / 2
	y := h * 0.3
	for i, info := range games {
		r := core.NewRect(x, y, rowW, rowH*0.8)
		m.surface.FillRoundRect(r, rowH*0.15, menuPanel)
		m.surface.FillText(fmt.Sprintf("%d. %s", i+1, info.Title), w/2, r.Center().Y, core.TextStyle{Size: rowH * 0.35, Align: core.AlignCenter, Color: menuText})
		m.items = append(m.items, menuItem{id: info.ID, rect: r})
		y += rowH
	}

	m.surface.FillText("Click a game or press its number", w/2, min(y+rowH/2, h-rowH/2), core.TextStyle{Size: rowH * 0.25, Align: core.AlignCenter, Color: menuHint})
}

// selectByKey starts the n-th registered game. It does not depend on the
// screen having been drawn.
func (m *Manager) selectByKey(k core.Key) bool {
	games := registry.List()
	n, err := strconv.Atoi(string(k))
	if err != nil || n < 1 || n > len(games) {
		return false
	}
	m.startItem(menuItem{id: games[n-1].ID})
	return true
}

func (m *Manager) selectByClick(x, y float64) {
	for _, it := range m.items {
		if it.rect.Contains(x, y) {
			m.startItem(it)
			return
		}
	}
}

func (m *Manager) startItem(it menuItem) {
	if err := m.SelectGame(it.id); err != nil {
		m.logger.Warn("selection failed", "kind", it.id, "error", err)
	}
}
