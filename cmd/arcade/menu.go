package main

import (
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade at the game selection screen",
	Long: `Start the arcade in the terminal at the selection screen.

Press a game's number or click its row to start it. Esc or the
"Back to Menu" affordance returns here.

Controls:
  1-4          - Select game
  Tab          - High scores
  ?            - Toggle help
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runTerminal("")
	},
}
