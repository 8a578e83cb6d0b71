// Package tui hosts the arcade in a terminal with Bubble Tea: the raster is
// shown as half-block pixels, keys and mouse clicks feed the session, and a
// footer carries the prompt, the back affordance and key help.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// TickMsg is sent once per host frame.
type TickMsg time.Time

// tickCmd schedules the next frame at the given rate.
func tickCmd(fps int) tea.Cmd {
	return tea.Tick(core.FrameForFPS(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
