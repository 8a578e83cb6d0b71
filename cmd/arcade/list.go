package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// controls is the one-line how-to shown next to each game.
var controls = map[string]string{
	"snake":     "arrows steer, space starts",
	"tetris":    "arrows move/rotate, space drops",
	"flappy":    "space flaps",
	"tictactoe": "click or 1-9 places a mark",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game registered in the arcade with its controls and,
when the scores database is available, the best recorded score.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	best := bestScores()

	idWidth := len("ID")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %-12s  %-6s  %s\n", idWidth, "ID", "Title", "Best", "Controls")
	fmt.Printf("  %-*s  %-12s  %-6s  %s\n", idWidth, "--", "-----", "----", "--------")
	for _, g := range games {
		score := "-"
		if v, ok := best[g.ID]; ok {
			score = fmt.Sprint(v)
		}
		fmt.Printf("  %-*s  %-12s  %-6s  %s\n", idWidth, g.ID, g.Title, score, controls[g.ID])
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game, or 'arcade menu' to pick one.")
}

// bestScores reads high scores from the ledger. A missing or unreadable
// database yields an empty map.
func bestScores() map[string]int {
	best := make(map[string]int)
	cfg, err := loadConfig()
	if err != nil {
		return best
	}
	store := openStore(cfg, log.New(io.Discard))
	if store == nil {
		return best
	}
	defer store.Close()

	all, err := store.AllStats()
	if err != nil {
		return best
	}
	for id, st := range all {
		best[id] = st.HighScore
	}
	return best
}
