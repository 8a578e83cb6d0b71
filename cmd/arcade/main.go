// arcade runs the canvas arcade: four small games behind one session
// manager, hosted in a terminal, a desktop window or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game in the terminal
//	arcade menu              - Start at the game selection screen
//	arcade window [game]     - Play in a desktop window
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores and stats
//
// Global flags:
//
//	--config <path>       - Game tunables YAML (default: search path)
//	--difficulty <name>   - easy, normal, hard or fixed
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: from config)
//	--log <path>          - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/canvas-arcade/internal/games/flappy"
	_ "github.com/vovakirdan/canvas-arcade/internal/games/snake"
	_ "github.com/vovakirdan/canvas-arcade/internal/games/tetris"
	_ "github.com/vovakirdan/canvas-arcade/internal/games/tictactoe"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogPath    string
	flagDebug      bool
	flagNoSound    bool
	flagPlayer     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Canvas Arcade - Snake, Tetris, Flappy and Tic-Tac-Toe on one canvas",
	Long: `Canvas Arcade runs four small games on a shared drawing surface.
One game is active at a time; the session returns to the selection
screen when you press Esc or the game offers "Back to Menu".

Available commands:
  list     - Show all available games
  play     - Play a specific game in the terminal
  menu     - Start at the selection screen
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play snake
  arcade menu --difficulty hard
  arcade window tetris
  arcade serve --ssh :2222
  arcade scores flappy`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arcade config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound cues")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name recorded with scores")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
