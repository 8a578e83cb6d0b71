package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/canvas-arcade/internal/platform/tui"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game in the terminal",
	Long: `Start playing the specified game right away.

Controls:
  Arrows/WASD  - Move / rotate (Snake, Tetris)
  Space        - Start, flap, hard drop
  1-9 / mouse  - Place a mark (Tic-Tac-Toe)
  B            - Back to Menu (when offered)
  Esc          - Return to the selection screen
  Ctrl+S       - Save a screenshot
  Ctrl+C       - Quit

Difficulty options:
  easy   - Slower start
  normal - Config values as written
  hard   - Faster start
  fixed  - No speed-ups while playing

Examples:
  arcade play snake
  arcade play tetris --difficulty hard
  arcade play flappy --config ./my-arcade.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	runTerminal(gameID)
}

// runTerminal hosts a session in the current terminal. An empty gameID
// starts at the selection screen.
func runTerminal(gameID string) {
	env, err := newHostEnv(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runErr := tui.Run(tui.Options{
		Game:   gameID,
		Config: env.cfg,
		Store:  env.store,
		Cues:   env.cues,
		Logger: env.logger,
		Player: flagPlayer,
		Seed:   flagSeed,
		Width:  width,
		Height: height,
	})

	// Close store and speaker before potential exit
	env.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
