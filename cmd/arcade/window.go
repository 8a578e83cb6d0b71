package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/canvas-arcade/internal/platform/window"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

var (
	flagWidth  int
	flagHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play in a desktop window",
	Long: `Open the arcade in a resizable desktop window.

Without a game argument the window opens at the selection screen.
The footer below the canvas shows prompts and clickable buttons.

Examples:
  arcade window
  arcade window tictactoe
  arcade window snake --width 1024 --height 768`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWidth, "width", 800, "Window width in pixels")
	windowCmd.Flags().IntVar(&flagHeight, "height", 640, "Window height in pixels")
}

func runWindow(_ *cobra.Command, args []string) {
	var gameID string
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
			os.Exit(1)
		}
	}

	env, err := newHostEnv(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := window.Run(window.Options{
		Game:   gameID,
		Config: env.cfg,
		Store:  env.store,
		Cues:   env.cues,
		Logger: env.logger,
		Player: flagPlayer,
		Seed:   flagSeed,
		Width:  flagWidth,
		Height: flagHeight,
	})
	env.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running window: %v\n", runErr)
		os.Exit(1)
	}
}
