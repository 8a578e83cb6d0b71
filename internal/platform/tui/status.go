package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/canvas-arcade/internal/platform/hostui"
)

var (
	promptStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	affordanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// statusLine renders the prompt and the affordances on one centered line.
// Affordances are activated with b or by clicking the line.
func statusLine(ui *hostui.State, width int) string {
	var parts []string
	if text, shown := ui.Prompt(); shown && text != "" {
		parts = append(parts, promptStyle.Render(text))
	}
	for _, a := range ui.Affordances() {
		parts = append(parts, affordanceStyle.Render("[b] "+a.Label))
	}
	return centerText(strings.Join(parts, "  "), width)
}
